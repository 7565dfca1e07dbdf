package identity

import "time"

// Role is the ordinal permission tier of a user account.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	default:
		return false
	}
}

// AtLeast reports whether the role ranks at or above other in the
// user < admin < superadmin order.
func (r Role) AtLeast(other Role) bool {
	return rank(r) >= rank(other)
}

func rank(r Role) int {
	switch r {
	case RoleSuperadmin:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// KYCStatus tracks the verification state of an account.
type KYCStatus string

const (
	KYCNotStarted KYCStatus = "not_started"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

// Valid reports whether the status is one of the known states.
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCNotStarted, KYCPending, KYCVerified, KYCRejected:
		return true
	default:
		return false
	}
}

// User is a registered account. PasswordHash is nil for demo accounts,
// which authenticate without a credential check.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	Role         Role
	KYCStatus    KYCStatus
	Balance      float64
	IsDemo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the outward projection of a user. It never carries the
// password hash.
type Public struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	KYCStatus KYCStatus `json:"kycStatus"`
	Balance   float64   `json:"balance"`
	IsDemo    bool      `json:"isDemo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the safe projection of the user.
func (u User) Public() Public {
	return Public{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		KYCStatus: u.KYCStatus,
		Balance:   u.Balance,
		IsDemo:    u.IsDemo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
