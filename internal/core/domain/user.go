package domain

import "time"

// UserRole is the coarse permission level of a user.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleShareholder UserRole = "SHAREHOLDER"
	RoleStaff       UserRole = "STAFF"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	Role         UserRole   `json:"role"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}
