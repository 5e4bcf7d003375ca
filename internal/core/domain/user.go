package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an account holder. The password only ever exists here as a
// bcrypt hash; hashing happens at the service boundary, never in the store.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         string     `json:"role" gorm:"size:32;not null;default:user"`
	Active       bool       `json:"active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Can reports whether the user satisfies the required role. Admins satisfy
// every role requirement.
func (u *User) Can(role string) bool {
	return u.Role == RoleAdmin || u.Role == role
}

// TokenClaims is the identity carried inside a signed bearer token.
type TokenClaims struct {
	UserID    uint
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
