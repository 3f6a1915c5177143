package app

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

// Repository methods report missing rows as *domain.NotFoundError; any other
// error is a persistence failure the use cases pass through untouched.

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context, page domain.Page) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	// Delete removes the user and everything it owns.
	Delete(ctx context.Context, id string) error
}

// JourneyRepository persists journeys.
type JourneyRepository interface {
	Create(ctx context.Context, journey domain.Journey) (domain.Journey, error)
	GetByID(ctx context.Context, id string) (domain.Journey, error)
	List(ctx context.Context, page domain.Page) ([]domain.Journey, error)
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Journey, error)
	Update(ctx context.Context, journey domain.Journey) (domain.Journey, error)
	// Delete removes the journey with its quizzes, questions and options in one transaction.
	Delete(ctx context.Context, id string) error
}

// QuizRepository persists quizzes.
type QuizRepository interface {
	Create(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	// CreateWithQuestions stores the quiz and its questions atomically.
	CreateWithQuestions(ctx context.Context, quiz domain.Quiz, questions []domain.Question) (domain.Quiz, []domain.Question, error)
	GetByID(ctx context.Context, id string) (domain.Quiz, error)
	List(ctx context.Context, page domain.Page) ([]domain.Quiz, error)
	ListByJourney(ctx context.Context, journeyID string, page domain.Page) ([]domain.Quiz, error)
	Update(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	Delete(ctx context.Context, id string) error
}

// QuestionRepository persists questions together with their options.
type QuestionRepository interface {
	Create(ctx context.Context, question domain.Question) (domain.Question, error)
	GetByID(ctx context.Context, id string) (domain.Question, error)
	List(ctx context.Context, page domain.Page) ([]domain.Question, error)
	ListByQuiz(ctx context.Context, quizID string, page domain.Page) ([]domain.Question, error)
	// Update replaces the stored options wholesale with question.Options.
	Update(ctx context.Context, question domain.Question) (domain.Question, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher is the credential hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs and verifies access tokens. The subject is the username;
// userID is carried alongside it.
type TokenIssuer interface {
	Issue(subject, userID string) (string, domain.Claims, error)
	Verify(token string) (domain.Claims, error)
}

// TokenBlocklist remembers revoked token ids until they would have expired anyway.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
