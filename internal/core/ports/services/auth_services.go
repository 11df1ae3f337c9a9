package ports

import (
	"context"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/dto"
)

// AuthSvcFacade handles operator registration and login.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
