package stocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the stock catalog.
type Repository interface {
	Create(ctx context.Context, stock Stock) error
	FindBySymbol(ctx context.Context, symbol string) (Stock, error)
	List(ctx context.Context, filter Filter) ([]Stock, error)
	Update(ctx context.Context, stock Stock) error
	Delete(ctx context.Context, symbol string) error
	UpdatePrice(ctx context.Context, symbol string, price, change, volume float64) (bool, error)
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed stock repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const stockColumns = `id, symbol, name, exchange, sector, price, change, volume, created_at, updated_at`

// Create inserts a new listing.
func (r *PostgresRepository) Create(ctx context.Context, stock Stock) error {
	stockID, err := uuid.Parse(stock.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO stocks (`+stockColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		stockID, stock.Symbol, stock.Name, stock.Exchange, stock.Sector,
		stock.Price, stock.Change, stock.Volume,
		stock.CreatedAt.UTC(), stock.UpdatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateSymbol
	}
	return err
}

// FindBySymbol fetches a listing by its canonical symbol.
func (r *PostgresRepository) FindBySymbol(ctx context.Context, symbol string) (Stock, error) {
	row := r.db.QueryRow(ctx, `SELECT `+stockColumns+` FROM stocks WHERE symbol = $1`, symbol)
	return scanStock(row)
}

// List returns listings matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Stock, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Symbol != "" {
		args = append(args, "%"+filter.Symbol+"%")
		conditions = append(conditions, fmt.Sprintf("symbol ILIKE $%d", len(args)))
	}
	if filter.Exchange != "" {
		args = append(args, filter.Exchange)
		conditions = append(conditions, fmt.Sprintf("exchange = $%d", len(args)))
	}
	if filter.Sector != "" {
		args = append(args, filter.Sector)
		conditions = append(conditions, fmt.Sprintf("sector = $%d", len(args)))
	}

	query := `SELECT ` + stockColumns + ` FROM stocks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	switch filter.SortBy {
	case "price":
		query += " ORDER BY price DESC"
	case "volume":
		query += " ORDER BY volume DESC"
	case "change":
		query += " ORDER BY change DESC"
	default:
		query += " ORDER BY symbol"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stock)
	}
	return out, rows.Err()
}

// Update rewrites every mutable field of a listing.
func (r *PostgresRepository) Update(ctx context.Context, stock Stock) error {
	cmd, err := r.db.Exec(ctx, `UPDATE stocks SET
        name = $1, exchange = $2, sector = $3, price = $4, change = $5,
        volume = $6, updated_at = $7
        WHERE symbol = $8`,
		stock.Name, stock.Exchange, stock.Sector, stock.Price, stock.Change,
		stock.Volume, stock.UpdatedAt.UTC(), stock.Symbol)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a listing.
func (r *PostgresRepository) Delete(ctx context.Context, symbol string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM stocks WHERE symbol = $1`, symbol)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePrice refreshes the quote fields for a symbol and reports whether a
// row matched.
func (r *PostgresRepository) UpdatePrice(ctx context.Context, symbol string, price, change, volume float64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE stocks SET price = $1, change = $2, volume = $3, updated_at = $4
        WHERE symbol = $5`, price, change, volume, time.Now().UTC(), symbol)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanStock(row pgx.Row) (Stock, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		stock     Stock
	)
	if err := row.Scan(&id, &stock.Symbol, &stock.Name, &stock.Exchange,
		&stock.Sector, &stock.Price, &stock.Change, &stock.Volume,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stock{}, ErrNotFound
		}
		return Stock{}, err
	}
	stock.ID = id.String()
	stock.CreatedAt = createdAt.UTC()
	stock.UpdatedAt = updatedAt.UTC()
	return stock, nil
}
