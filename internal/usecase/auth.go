package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/auth"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// SessionStore tracks live auth sessions by token id so sign-out can revoke
// a token before its expiry.
type SessionStore interface {
	Create(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Delete(ctx context.Context, jti string) error
}

// AuthService implements the auth collaborator: sign-up, sign-in, sign-out
// and session lookup.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	jwt      *auth.JWTService
}

func NewAuthService(users UserStore, sessions SessionStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, sessions: sessions, jwt: jwt}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperror.NewInvalidInput("email and password are required", nil)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperror.NewInternal("hash password", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.issueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, "", apperror.NewUnauthorized("email or password is incorrect")
		}
		return nil, "", err
	}
	if !auth.CheckPasswordHash(password, u.PasswordHash) {
		return nil, "", apperror.NewUnauthorized("email or password is incorrect")
	}

	token, err := s.issueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return apperror.NewUnauthorized("invalid token")
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// GetSession resolves a bearer token to its user. Absence of a valid, live
// session reads as "not authenticated".
func (s *AuthService) GetSession(ctx context.Context, token string) (*domain.User, *auth.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid or expired token")
	}
	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if !live {
		return nil, nil, apperror.NewUnauthorized("session has been signed out")
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, claims, nil
}

// SessionLive reports whether the auth session behind a token id is still
// live; used by the auto-save loop to disarm ticks after sign-out.
func (s *AuthService) SessionLive(ctx context.Context, jti string) bool {
	live, err := s.sessions.Exists(ctx, jti)
	return err == nil && live
}

func (s *AuthService) issueSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, jti, err := s.jwt.GenerateToken(userID)
	if err != nil {
		return "", apperror.NewInternal("failed to generate token", err)
	}
	if err := s.sessions.Create(ctx, jti, userID, s.jwt.TokenLifespan()); err != nil {
		return "", err
	}
	return token, nil
}
