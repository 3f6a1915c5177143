package app

import (
	"context"
	"fmt"
	"time"

	"journey-quiz-service/internal/domain"
)

// UserPatch carries the optional fields of a self-service update.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
}

// Actor is the authenticated caller together with the token it presented.
type Actor struct {
	UserID string
	Token  domain.Claims
}

// UserService exposes user reads and self-service mutations.
type UserService struct {
	users     UserRepository
	hasher    PasswordHasher
	blocklist TokenBlocklist
}

func NewUserService(users UserRepository, hasher PasswordHasher, blocklist TokenBlocklist) *UserService {
	return &UserService{users: users, hasher: hasher, blocklist: blocklist}
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	return s.users.List(ctx, page.Normalize())
}

// Update applies patch to the acting user's own account. A rename revokes
// the presented token, whose subject no longer names this user.
func (s *UserService) Update(ctx context.Context, actor Actor, id string, patch UserPatch) (domain.User, error) {
	if actor.UserID != id {
		return domain.User{}, domain.Forbidden("update this user")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	renamed := false
	if patch.Username != nil && *patch.Username != user.Username {
		if err := ensureUsernameFree(ctx, s.users, *patch.Username, user.ID); err != nil {
			return domain.User{}, err
		}
		user.Username = *patch.Username
		renamed = true
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if err := ensureEmailFree(ctx, s.users, *patch.Email, user.ID); err != nil {
			return domain.User{}, err
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		digest, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = digest
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	user.UpdatedAt = domain.Touch(user.CreatedAt, time.Now().UTC())
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	if renamed {
		if err := s.revoke(ctx, actor.Token); err != nil {
			return domain.User{}, err
		}
	}
	return updated, nil
}

// Delete removes the acting user's own account and cascades to everything it owns.
func (s *UserService) Delete(ctx context.Context, actor Actor, id string) error {
	if actor.UserID != id {
		return domain.Forbidden("delete this user")
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	return s.revoke(ctx, actor.Token)
}

func (s *UserService) revoke(ctx context.Context, token domain.Claims) error {
	if token.TokenID == "" {
		return nil
	}
	if err := s.blocklist.Revoke(ctx, token.TokenID, token.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
