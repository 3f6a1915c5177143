package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh entity identity.
func NewID() string {
	return uuid.NewString()
}

// User is an account that owns journeys.
type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewUser(username, email, hashedPassword string, now time.Time) User {
	return User{
		ID:             NewID(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Equal compares identity only.
func (u User) Equal(other User) bool { return u.ID == other.ID }

// Journey groups quizzes and belongs to exactly one user.
type Journey struct {
	ID          string
	Title       string
	Description string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewJourney(title, description, userID string, now time.Time) Journey {
	return Journey{
		ID:          NewID(),
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (j Journey) Equal(other Journey) bool { return j.ID == other.ID }

// Quiz is a container of questions, optionally attached to a journey.
// OwnerID records the creating user and only decides access while JourneyID is nil.
type Quiz struct {
	ID          string
	Title       string
	Description string
	JourneyID   *string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewQuiz(title, description string, journeyID *string, ownerID string, now time.Time) Quiz {
	return Quiz{
		ID:          NewID(),
		Title:       title,
		Description: description,
		JourneyID:   cloneString(journeyID),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (q Quiz) Equal(other Quiz) bool { return q.ID == other.ID }

// Option is one selectable answer of a question.
type Option struct {
	ID        string
	Text      string
	Order     int
	IsCorrect bool
	ImageURL  *string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Option) Equal(other Option) bool { return o.ID == other.ID }

// Question is a prompt with ordered options and one correct answer.
type Question struct {
	ID            string
	Text          string
	QuizID        string
	Options       []Option
	CorrectAnswer string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuestion normalizes the option inputs; call ValidateQuestion on the result before persisting.
func NewQuestion(text, quizID string, options []OptionInput, correctAnswer string, now time.Time) Question {
	return Question{
		ID:            NewID(),
		Text:          text,
		QuizID:        quizID,
		Options:       NormalizeOptions(options, correctAnswer, now),
		CorrectAnswer: correctAnswer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (q Question) Equal(other Question) bool { return q.ID == other.ID }

// IsCorrect reports whether answer matches the correct answer exactly.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// OptionTexts returns the option texts in order.
func (q Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		texts[i] = opt.Text
	}
	return texts
}

// AnswerResult is the outcome of checking a submitted answer.
// CorrectAnswer is only populated when the submission was wrong.
type AnswerResult struct {
	QuestionID    string
	Correct       bool
	CorrectAnswer string
}

// Claims is the verified content of an access token.
// UserID pins the token to the account it was issued for, so a username
// freed by a rename or deletion cannot be picked up by someone else.
type Claims struct {
	Subject   string
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Page bounds a list query.
type Page struct {
	Offset int
	Limit  int
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Normalize applies the default limit and clamps out-of-range values.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Touch returns the timestamp to store as UpdatedAt, never earlier than createdAt.
func Touch(createdAt, now time.Time) time.Time {
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
