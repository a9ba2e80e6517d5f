// Package service implements authentication: credential verification, JWT
// issuance and refresh, and user account management.
package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"usinagem_backend/internal/auth/repository"
	"usinagem_backend/internal/auth/transport"
	"usinagem_backend/platform/apperr"
	"usinagem_backend/platform/config"
	"usinagem_backend/platform/httpkit"
	"usinagem_backend/platform/logger"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// Service provides authentication and user management.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.TokenPairResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid credentials")
	}
	if !user.Active {
		s.log.AuthEvent("login", req.Email, false, "account disabled")
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", req.Email, false, "wrong password")
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", user.Email, true, "")
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, req transport.RefreshRequest) (transport.TokenPairResponse, error) {
	claims, err := httpkit.ParseRefreshClaims(req.RefreshToken, s.cfg)
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil || !user.Active {
		return transport.TokenPairResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	return s.issueTokens(user)
}

// Me returns the account of the authenticated caller.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// CreateUser registers a new account. Admin only; enforced at the route level.
func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := &repository.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return transport.UserResponse{}, err
	}

	s.log.Info("user created", "userId", user.ID.String(), "role", user.Role)
	return toUserResponse(user), nil
}

// UpdateUser applies a partial update to an account.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req transport.UpdateUserRequest) (transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return transport.UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) (transport.UserListResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return transport.UserListResponse{}, err
	}
	items := make([]transport.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	return transport.UserListResponse{Items: items, Total: len(items)}, nil
}

func (s *Service) issueTokens(user *repository.User) (transport.TokenPairResponse, error) {
	access, err := s.signToken(user, accessTokenType, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return transport.TokenPairResponse{}, err
	}
	refresh, err := s.signToken(user, refreshTokenType, s.cfg.GetRefreshTokenTTL())
	if err != nil {
		return transport.TokenPairResponse{}, err
	}
	return transport.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signToken(user *repository.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTSecret()))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

func toUserResponse(u *repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
