package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"journey-quiz-service/internal/domain"
)

// RegisterInput is the self-service registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session is an issued access token.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AuthService owns registration, login and bearer-token resolution.
// Plaintext passwords only ever reach the PasswordHasher.
type AuthService struct {
	users     UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	blocklist TokenBlocklist
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, blocklist TokenBlocklist) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, blocklist: blocklist}
}

// Register creates an active user after checking username and email are free.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := ensureUsernameFree(ctx, s.users, in.Username, ""); err != nil {
		return domain.User{}, err
	}
	if err := ensureEmailFree(ctx, s.users, in.Email, ""); err != nil {
		return domain.User{}, err
	}
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, domain.NewUser(in.Username, in.Email, digest, time.Now().UTC()))
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return Session{}, domain.ErrInactiveUser
	}
	token, claims, err := s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{AccessToken: token, TokenType: "bearer", ExpiresAt: claims.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, domain.Claims, error) {
	if token == "" {
		return domain.User{}, domain.Claims{}, domain.ErrUnauthenticated
	}
	claims, err := s.tokens.Verify(token)
	if err != nil || claims.Subject == "" {
		return domain.User{}, domain.Claims{}, domain.ErrUnauthenticated
	}
	if claims.TokenID != "" {
		revoked, err := s.blocklist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return domain.User{}, domain.Claims{}, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return domain.User{}, domain.Claims{}, domain.ErrUnauthenticated
		}
	}
	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.Claims{}, domain.ErrUnauthenticated
		}
		return domain.User{}, domain.Claims{}, err
	}
	// iat has second precision; compare against the account's creation second.
	if user.ID != claims.UserID || claims.IssuedAt.Before(user.CreatedAt.Truncate(time.Second)) {
		return domain.User{}, domain.Claims{}, domain.ErrUnauthenticated
	}
	if !user.IsActive {
		return domain.User{}, domain.Claims{}, domain.ErrInactiveUser
	}
	return user, claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims domain.Claims) error {
	if claims.TokenID == "" {
		return nil
	}
	if err := s.blocklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	log.Printf("revoked token %s for %s", claims.TokenID, claims.Subject)
	return nil
}

// ensureUsernameFree fails with ErrUsernameExists when another user (not selfID) holds username.
func ensureUsernameFree(ctx context.Context, users UserRepository, username, selfID string) error {
	existing, err := users.GetByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != selfID:
		return fmt.Errorf("%w: '%s'", domain.ErrUsernameExists, username)
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func ensureEmailFree(ctx context.Context, users UserRepository, email, selfID string) error {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return fmt.Errorf("%w: '%s'", domain.ErrEmailExists, email)
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}
