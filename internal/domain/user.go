// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole defines the authorization role of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// UserStatus gates what a user may do. Only ACTIVE users can donate,
// deposit funds, or create and update sparks.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User represents a registered member of the platform.
type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"` // Unique
	FirstName      *string    `db:"first_name" json:"first_name"`
	LastName       *string    `db:"last_name" json:"last_name"`
	Email          string     `db:"email" json:"email"`
	ProfilePicture *string    `db:"profile_picture" json:"profile_picture"`
	Role           UserRole   `db:"role" json:"role"`
	Status         UserStatus `db:"status" json:"status"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new active User with the USER role.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		Role:         UserRoleUser,
		Status:       UserStatusActive,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
