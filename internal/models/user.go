package models

import "database/sql"

// User is the row shape of the users table.
type User struct {
	UserID       string       `db:"user_id"`
	Email        string       `db:"email"`
	DisplayName  string       `db:"display_name"`
	Role         string       `db:"role"`
	PasswordHash string       `db:"password_hash"`
	IsActive     bool         `db:"is_active"`
	LastLoginAt  sql.NullTime `db:"last_login_at"`
	AuditFields
}
