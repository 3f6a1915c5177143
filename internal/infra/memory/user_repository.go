package memory

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

// UserRepository is an in-memory implementation of app.UserRepository.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return domain.User{}, errDuplicate("username", user.Username)
		}
		if existing.Email == user.Email {
			return domain.User{}, errDuplicate("email", user.Email)
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return domain.User{}, domain.NewNotFound(domain.KindUser, id)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username }, username)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email }, email)
}

func (r *UserRepository) find(match func(domain.User) bool, key string) (domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if match(user) {
			return user, nil
		}
	}
	return domain.User{}, domain.NewNotFound(domain.KindUser, key)
}

func (r *UserRepository) List(_ context.Context, page domain.Page) ([]domain.User, error) {
	s := r.store
	s.mu.RLock()
	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	s.mu.RUnlock()

	sortByCreation(users, func(u domain.User) time.Time { return u.CreatedAt }, func(u domain.User) string { return u.ID })
	return paginate(users, page), nil
}

func (r *UserRepository) Update(_ context.Context, user domain.User) (domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.User{}, domain.NewNotFound(domain.KindUser, user.ID)
	}
	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return domain.User{}, errDuplicate("username", user.Username)
		}
		if existing.Email == user.Email {
			return domain.User{}, errDuplicate("email", user.Email)
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.NewNotFound(domain.KindUser, id)
	}
	s.deleteUserLocked(id)
	return nil
}
