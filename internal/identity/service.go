package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength applies to every credentialed account.
	MinPasswordLength = 8
	// DemoStartingBalance is granted to demo accounts at registration.
	DemoStartingBalance = 10_000
)

// Service owns the account credential lifecycle: creation, password
// verification, and password rotation. Raw passwords never leave this
// package; only bcrypt hashes are stored.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures all fields needed to create an account.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
	KYCStatus KYCStatus
	Balance   float64
	IsDemo    bool
}

// Create registers an account record. Non-demo accounts require a password
// of at least MinPasswordLength; demo accounts store no hash at all.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if !in.Role.Valid() {
		return User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if !in.KYCStatus.Valid() {
		return User{}, fmt.Errorf("%w: unknown kyc status %q", ErrValidation, in.KYCStatus)
	}
	if in.Balance < 0 {
		return User{}, fmt.Errorf("%w: balance cannot be negative", ErrValidation)
	}

	var hash []byte
	if !in.IsDemo {
		if in.Password == "" {
			return User{}, fmt.Errorf("%w: password is required", ErrValidation)
		}
		var err error
		hash, err = HashPassword(in.Password)
		if err != nil {
			return User{}, err
		}
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		KYCStatus:    in.KYCStatus,
		Balance:      in.Balance,
		IsDemo:       in.IsDemo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// RegisterInput captures the public self-registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsDemo    bool
}

// Register creates a plain user account through the public flow. Demo
// accounts start with DemoStartingBalance and no credential; regular
// accounts start at zero.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	balance := 0.0
	if in.IsDemo {
		balance = DemoStartingBalance
	}
	return s.Create(ctx, CreateInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      RoleUser,
		KYCStatus: KYCNotStarted,
		Balance:   balance,
		IsDemo:    in.IsDemo,
	})
}

// Authenticate verifies the credential for an email. Unknown email, wrong
// password, and a credential-less non-demo account all yield the same
// ErrInvalidCredentials so callers cannot probe which emails exist. Demo
// accounts accept any password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if user.IsDemo {
		return user, nil
	}

	if len(user.PasswordHash) == 0 {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ProfilePatch holds the optional fields of a profile update. Nil fields
// retain their previous values.
type ProfilePatch struct {
	Email     *string
	KYCStatus *KYCStatus
	Balance   *float64
	IsDemo    *bool
	Password  *string
}

// UpdateProfile applies a partial patch to the caller's own account. Every
// validation runs before the single repository write so a failure leaves the
// record untouched. Password changes are ignored for demo accounts;
// converting a demo account to a regular one requires a password in the
// same patch, since a non-demo account must hold a credential.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if email == "" || !strings.Contains(email, "@") {
			return User{}, fmt.Errorf("%w: a valid email is required", ErrValidation)
		}
		user.Email = email
	}
	if patch.KYCStatus != nil {
		if !patch.KYCStatus.Valid() {
			return User{}, fmt.Errorf("%w: unknown kyc status %q", ErrValidation, *patch.KYCStatus)
		}
		user.KYCStatus = *patch.KYCStatus
	}
	if patch.Balance != nil {
		if *patch.Balance < 0 {
			return User{}, fmt.Errorf("%w: balance cannot be negative", ErrValidation)
		}
		user.Balance = *patch.Balance
	}
	if patch.IsDemo != nil {
		user.IsDemo = *patch.IsDemo
	}
	if patch.Password != nil && *patch.Password != "" && !user.IsDemo {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}
	if !user.IsDemo && len(user.PasswordHash) == 0 {
		return User{}, fmt.Errorf("%w: a password is required to convert a demo account", ErrValidation)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// FindByID loads a user record.
func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// HashPassword enforces the minimum length and produces a salted bcrypt
// hash. Every call generates a fresh salt.
func HashPassword(raw string) ([]byte, error) {
	if len(raw) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	return bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
}

// NormalizeEmail lowercases and trims an email address so equality checks
// are case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
