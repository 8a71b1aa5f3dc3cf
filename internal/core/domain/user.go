package domain

import "time"

// Permission is the role code stored on a user record.
type Permission string

const (
	PermissionAdmin   Permission = "A"
	PermissionManager Permission = "M"
	PermissionWorker  Permission = "W"
)

// Valid reports whether p is one of the known permission codes.
func (p Permission) Valid() bool {
	switch p {
	case PermissionAdmin, PermissionManager, PermissionWorker:
		return true
	}
	return false
}

// Grantable reports whether p may be assigned through the privilege-update
// operation. Admin can only be created by the startup bootstrap.
func (p Permission) Grantable() bool {
	return p == PermissionManager || p == PermissionWorker
}

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Permission   Permission `json:"permission"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
