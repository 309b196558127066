package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/apperrors"
	portsrepo "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/repositories"
	portssvc "github.com/Saymandev/Advanced-Poss-sub007/internal/core/ports/services"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/dto"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/middleware"
	"github.com/Saymandev/Advanced-Poss-sub007/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

type authService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates the authentication service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvc {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login verifies the credentials and returns a signed access token. A bad
// username and a bad password produce the same error so the response does not
// reveal which usernames exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "login rejected", "username", req.Username)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtExpiry)
	claims := middleware.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		CompanyID: user.CompanyID,
		BranchID:  user.BranchID,
		Role:      user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.LogError(ctx, "failed to sign access token", "error", err)
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.UserID,
		CompanyID: user.CompanyID,
		Name:      user.Name,
		Role:      user.Role,
	}, nil
}
