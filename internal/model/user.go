package model

import "time"

// Role values form the sole authorization dimension in the system.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an authenticated actor. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
