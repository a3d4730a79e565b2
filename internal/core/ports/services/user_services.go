package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
)

// UserSvcFacade exposes user registration and credential checks.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// AuthenticateUser verifies the email/password pair and returns the user.
	// Failures are reported as ErrUnauthorized without distinguishing unknown
	// email from wrong password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}
