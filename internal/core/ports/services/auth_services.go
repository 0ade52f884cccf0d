package services

import (
	"context"

	"github.com/SscSPs/vending_machine_app/internal/dto"
)

// AuthSvc authenticates the machine administrator
type AuthSvc interface {
	// Login checks the admin credentials and issues an access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
