package services

import (
	"context"
	"log/slog"
	"strings"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/logger"
)

const bearerPrefix = "Bearer "

// Authenticator resolves the Authorization header into a principal
type Authenticator struct {
	codec *jwt.Codec
	users repositories.UserRepository
	log   *slog.Logger
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(codec *jwt.Codec, users repositories.UserRepository) *Authenticator {
	return &Authenticator{
		codec: codec,
		users: users,
		log:   logger.WithComponent("authentication"),
	}
}

// Resolve returns nil without error for anonymous requests
func (a *Authenticator) Resolve(ctx context.Context, header string) (*domain.Principal, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return nil, nil
	}

	claims, err := a.codec.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if _, ok := domain.ParseRole(claims.Role); !ok {
		return nil, domain.ErrInvalidToken
	}

	user, err := a.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	principal, err := PrincipalOf(user)
	if err != nil {
		return nil, err
	}
	if string(principal.Role) != claims.Role {
		a.log.Debug("token role differs from stored role", "user_id", user.ID, "token_role", claims.Role, "role", principal.Role)
	}
	return principal, nil
}

// PrincipalOf builds a principal from a user row
func PrincipalOf(user *models.User) (*domain.Principal, error) {
	role, ok := domain.ParseRole(user.Role)
	if !ok {
		return nil, domain.ErrAccessDenied
	}
	return &domain.Principal{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         role,
		UniversityID: user.UniversityID,
		StudentID:    user.StudentID,
		EmployeeID:   user.EmployeeID,
	}, nil
}
