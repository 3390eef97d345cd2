package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/securewatch/backend/pkg/auth"
	"github.com/securewatch/backend/pkg/auth/session"
	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/db"
	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/security"
)

// SessionGranter is the slice of the session manager the service needs.
type SessionGranter interface {
	Grant(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service signs panel users in and out.
type Service interface {
	Login(ctx context.Context, input LoginInput) (LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (UserDTO, error)
	Logout(ctx context.Context, accessID string) error
}

// ServiceParams carries the auth service dependencies.
type ServiceParams struct {
	Repo     Repository
	Sessions SessionGranter
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repository
	sessions SessionGranter
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.JWT.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt config is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		sessions: params.Sessions,
		jwtCfg:   params.JWT,
		pwCfg:    params.Password,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResult{}, invalidCredentials()
		}
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin user")
	}
	if !user.IsActive {
		return LoginResult{}, invalidCredentials()
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		s.logg.Error(ctx, "stored password hash is unreadable", err)
		return LoginResult{}, invalidCredentials()
	}
	if !match {
		return LoginResult{}, invalidCredentials()
	}

	accessID := session.NewAccessID()
	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   pkgauth.RoleAdmin,
		JTI:    accessID,
	})
	if err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Grant(ctx, accessID); err != nil {
		return LoginResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant access session")
	}

	return LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.jwtCfg.AccessTokenTTL()).Unix(),
		User:        toUserDTO(user),
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (UserDTO, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < 12 {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 12 characters")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "admin_users_email_key") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin user")
	}
	return toUserDTO(user), nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke access session")
	}
	return nil
}

func toUserDTO(user models.AdminUser) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}
