package services

import (
	"context"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
)

// AuthSvc authenticates staff and issues access tokens.
type AuthSvc interface {
	// Login verifies the credentials and returns a signed JWT carrying the
	// user's company and branch claims.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
