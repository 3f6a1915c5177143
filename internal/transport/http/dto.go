package http

import (
	"time"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type userUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	IsActive *bool   `json:"is_active"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type journeyRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description"`
}

type journeyUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
}

type journeyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toJourneyResponse(j domain.Journey) journeyResponse {
	return journeyResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		UserID:      j.UserID,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

type questionBody struct {
	Text          string               `json:"text" validate:"required"`
	Options       []domain.OptionInput `json:"options" validate:"required,min=2,max=6,dive"`
	CorrectAnswer string               `json:"correct_answer" validate:"required"`
}

type questionRequest struct {
	QuizID        string               `json:"quiz_id" validate:"required"`
	Text          string               `json:"text" validate:"required"`
	Options       []domain.OptionInput `json:"options" validate:"required,min=2,max=6,dive"`
	CorrectAnswer string               `json:"correct_answer" validate:"required"`
}

type questionUpdateRequest struct {
	Text          *string              `json:"text" validate:"omitempty,min=1"`
	Options       []domain.OptionInput `json:"options" validate:"omitempty,min=2,max=6,dive"`
	CorrectAnswer *string              `json:"correct_answer" validate:"omitempty,min=1"`
	QuizID        *string              `json:"quiz_id" validate:"omitempty,min=1"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer *string `json:"correct_answer"`
}

func toAnswerResponse(res domain.AnswerResult) answerResponse {
	out := answerResponse{IsCorrect: res.Correct}
	if res.CorrectAnswer != "" {
		answer := res.CorrectAnswer
		out.CorrectAnswer = &answer
	}
	return out
}

type optionResponse struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Order     int            `json:"order"`
	IsCorrect *bool          `json:"is_correct,omitempty"`
	ImageURL  *string        `json:"image_url"`
	Metadata  map[string]any `json:"metadata"`
}

type questionResponse struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	QuizID        string           `json:"quiz_id"`
	Options       []optionResponse `json:"options"`
	CorrectAnswer *string          `json:"correct_answer,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// toQuestionResponse renders the learner view; withAnswer adds the author-only fields.
func toQuestionResponse(q domain.Question, withAnswer bool) questionResponse {
	out := questionResponse{
		ID:        q.ID,
		Text:      q.Text,
		QuizID:    q.QuizID,
		Options:   make([]optionResponse, len(q.Options)),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for i, opt := range q.Options {
		o := optionResponse{
			ID:       opt.ID,
			Text:     opt.Text,
			Order:    opt.Order,
			ImageURL: opt.ImageURL,
			Metadata: opt.Metadata,
		}
		if withAnswer {
			correct := opt.IsCorrect
			o.IsCorrect = &correct
		}
		out.Options[i] = o
	}
	if withAnswer {
		answer := q.CorrectAnswer
		out.CorrectAnswer = &answer
	}
	return out
}

func toQuestionResponses(questions []domain.Question, withAnswer bool) []questionResponse {
	out := make([]questionResponse, len(questions))
	for i, q := range questions {
		out[i] = toQuestionResponse(q, withAnswer)
	}
	return out
}

type quizRequest struct {
	Title       string         `json:"title" validate:"required,min=3,max=200"`
	Description string         `json:"description"`
	JourneyID   *string        `json:"journey_id"`
	Questions   []questionBody `json:"questions" validate:"dive"`
}

func (r quizRequest) toInput() app.QuizInput {
	in := app.QuizInput{
		Title:       r.Title,
		Description: r.Description,
		JourneyID:   r.JourneyID,
		Questions:   make([]app.QuestionDraft, len(r.Questions)),
	}
	for i, q := range r.Questions {
		in.Questions[i] = app.QuestionDraft{Text: q.Text, Options: q.Options, CorrectAnswer: q.CorrectAnswer}
	}
	return in
}

type quizUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
	JourneyID   *string `json:"journey_id" validate:"omitempty,min=1"`
}

type quizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	JourneyID   *string            `json:"journey_id"`
	OwnerID     string             `json:"owner_id"`
	Questions   []questionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toQuizResponse(q domain.Quiz, questions []questionResponse) quizResponse {
	if questions == nil {
		questions = []questionResponse{}
	}
	return quizResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		JourneyID:   q.JourneyID,
		OwnerID:     q.OwnerID,
		Questions:   questions,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
