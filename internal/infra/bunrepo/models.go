package bunrepo

import (
	"time"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             string    `bun:"id,pk"`
	Username       string    `bun:"username,notnull,unique"`
	Email          string    `bun:"email,notnull,unique"`
	HashedPassword string    `bun:"hashed_password,notnull"`
	IsActive       bool      `bun:"is_active,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}

type journeyRow struct {
	bun.BaseModel `bun:"table:journeys,alias:j"`

	ID          string    `bun:"id,pk"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull"`
	UserID      string    `bun:"user_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:qz"`

	ID          string    `bun:"id,pk"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description,notnull"`
	JourneyID   *string   `bun:"journey_id"`
	OwnerID     string    `bun:"owner_id,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:qn"`

	ID            string       `bun:"id,pk"`
	Text          string       `bun:"text,notnull"`
	QuizID        string       `bun:"quiz_id,notnull"`
	CorrectAnswer string       `bun:"correct_answer,notnull"`
	CreatedAt     time.Time    `bun:"created_at,notnull"`
	UpdatedAt     time.Time    `bun:"updated_at,notnull"`
	Options       []*optionRow `bun:"rel:has-many,join:id=question_id"`
}

type optionRow struct {
	bun.BaseModel `bun:"table:question_options,alias:opt"`

	ID         string         `bun:"id,pk"`
	QuestionID string         `bun:"question_id,notnull"`
	Text       string         `bun:"text,notnull"`
	Position   int            `bun:"position,notnull"`
	IsCorrect  bool           `bun:"is_correct,notnull"`
	ImageURL   *string        `bun:"image_url"`
	Metadata   map[string]any `bun:"metadata"`
	CreatedAt  time.Time      `bun:"created_at,notnull"`
	UpdatedAt  time.Time      `bun:"updated_at,notnull"`
}

func userToRow(u domain.User) *userRow {
	return &userRow{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *userRow) toDomain() domain.User {
	return domain.User{
		ID:             r.ID,
		Username:       r.Username,
		Email:          r.Email,
		HashedPassword: r.HashedPassword,
		IsActive:       r.IsActive,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func journeyToRow(j domain.Journey) *journeyRow {
	return &journeyRow{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		UserID:      j.UserID,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func (r *journeyRow) toDomain() domain.Journey {
	return domain.Journey{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func quizToRow(q domain.Quiz) *quizRow {
	return &quizRow{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		JourneyID:   q.JourneyID,
		OwnerID:     q.OwnerID,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (r *quizRow) toDomain() domain.Quiz {
	return domain.Quiz{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		JourneyID:   r.JourneyID,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func questionToRow(q domain.Question) *questionRow {
	row := &questionRow{
		ID:            q.ID,
		Text:          q.Text,
		QuizID:        q.QuizID,
		CorrectAnswer: q.CorrectAnswer,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
		Options:       make([]*optionRow, len(q.Options)),
	}
	for i, opt := range q.Options {
		metadata := opt.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		row.Options[i] = &optionRow{
			ID:         opt.ID,
			QuestionID: q.ID,
			Text:       opt.Text,
			Position:   opt.Order,
			IsCorrect:  opt.IsCorrect,
			ImageURL:   opt.ImageURL,
			Metadata:   metadata,
			CreatedAt:  opt.CreatedAt,
			UpdatedAt:  opt.UpdatedAt,
		}
	}
	return row
}

func (r *questionRow) toDomain() domain.Question {
	q := domain.Question{
		ID:            r.ID,
		Text:          r.Text,
		QuizID:        r.QuizID,
		CorrectAnswer: r.CorrectAnswer,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Options:       make([]domain.Option, len(r.Options)),
	}
	for i, opt := range r.Options {
		metadata := opt.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		q.Options[i] = domain.Option{
			ID:        opt.ID,
			Text:      opt.Text,
			Order:     opt.Position,
			IsCorrect: opt.IsCorrect,
			ImageURL:  opt.ImageURL,
			Metadata:  metadata,
			CreatedAt: opt.CreatedAt,
			UpdatedAt: opt.UpdatedAt,
		}
	}
	return q
}
