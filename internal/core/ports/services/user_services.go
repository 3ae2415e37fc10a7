package services

import (
	"context"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// EnsureBootstrapAdmin creates an ADMIN with the given credentials unless the email already exists.
	EnsureBootstrapAdmin(ctx context.Context, email, password, displayName string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks email and password and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// IssueToken creates a signed access token for the user.
	IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
