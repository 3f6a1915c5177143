package app

import (
	"context"
	"fmt"
	"time"

	"journey-quiz-service/internal/domain"
)

// QuestionDraft is a question submitted inline with a new quiz.
type QuestionDraft struct {
	Text          string
	Options       []domain.OptionInput
	CorrectAnswer string
}

type QuizInput struct {
	Title       string
	Description string
	JourneyID   *string
	Questions   []QuestionDraft
}

type QuizPatch struct {
	Title       *string
	Description *string
	JourneyID   *string
}

// QuizDetail is a quiz with its questions.
type QuizDetail struct {
	Quiz      domain.Quiz
	Questions []domain.Question
}

// QuizService contains the quiz use cases.
type QuizService struct {
	quizzes   QuizRepository
	questions QuestionRepository
	owners    *OwnershipResolver
}

func NewQuizService(quizzes QuizRepository, questions QuestionRepository, owners *OwnershipResolver) *QuizService {
	return &QuizService{quizzes: quizzes, questions: questions, owners: owners}
}

// Create stores a quiz, optionally inside one of the user's journeys.
// Inline questions are all validated before anything is written; one invalid
// question rejects the whole request and nothing is persisted.
func (s *QuizService) Create(ctx context.Context, userID string, in QuizInput) (QuizDetail, error) {
	if in.JourneyID != nil {
		if _, err := s.owners.AuthorizeJourney(ctx, *in.JourneyID, userID, "create quiz in this journey"); err != nil {
			return QuizDetail{}, err
		}
	}

	now := time.Now().UTC()
	quiz := domain.NewQuiz(in.Title, in.Description, in.JourneyID, userID, now)

	questions := make([]domain.Question, 0, len(in.Questions))
	for i, draft := range in.Questions {
		question := domain.NewQuestion(draft.Text, quiz.ID, draft.Options, draft.CorrectAnswer, now)
		if err := domain.ValidateQuestion(question.Options, question.CorrectAnswer); err != nil {
			return QuizDetail{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		created, err := s.quizzes.Create(ctx, quiz)
		if err != nil {
			return QuizDetail{}, err
		}
		return QuizDetail{Quiz: created, Questions: []domain.Question{}}, nil
	}

	created, createdQuestions, err := s.quizzes.CreateWithQuestions(ctx, quiz, questions)
	if err != nil {
		return QuizDetail{}, err
	}
	return QuizDetail{Quiz: created, Questions: createdQuestions}, nil
}

// Get returns the quiz and all of its questions.
func (s *QuizService) Get(ctx context.Context, userID, id string) (QuizDetail, error) {
	chain, err := s.owners.AuthorizeQuiz(ctx, id, userID, "access this quiz")
	if err != nil {
		return QuizDetail{}, err
	}
	questions, err := s.allQuestions(ctx, id)
	if err != nil {
		return QuizDetail{}, err
	}
	return QuizDetail{Quiz: chain.Quiz, Questions: questions}, nil
}

// allQuestions reads every question of the quiz, one maximal page at a time.
func (s *QuizService) allQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0)
	page := domain.Page{Limit: domain.MaxPageLimit}
	for {
		batch, err := s.questions.ListByQuiz(ctx, quizID, page)
		if err != nil {
			return nil, err
		}
		questions = append(questions, batch...)
		if len(batch) < page.Limit {
			return questions, nil
		}
		page.Offset += len(batch)
	}
}

func (s *QuizService) ListByJourney(ctx context.Context, userID, journeyID string, page domain.Page) ([]domain.Quiz, error) {
	if _, err := s.owners.AuthorizeJourney(ctx, journeyID, userID, "access this journey"); err != nil {
		return nil, err
	}
	return s.quizzes.ListByJourney(ctx, journeyID, page.Normalize())
}

// Update applies patch. Moving the quiz re-checks ownership against the new journey.
func (s *QuizService) Update(ctx context.Context, userID, id string, patch QuizPatch) (domain.Quiz, error) {
	chain, err := s.owners.AuthorizeQuiz(ctx, id, userID, "update this quiz")
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz := chain.Quiz

	if patch.Title != nil {
		quiz.Title = *patch.Title
	}
	if patch.Description != nil {
		quiz.Description = *patch.Description
	}
	if patch.JourneyID != nil {
		target, err := s.owners.AuthorizeJourney(ctx, *patch.JourneyID, userID, "move quiz to this journey")
		if err != nil {
			return domain.Quiz{}, err
		}
		quiz.JourneyID = &target.ID
	}
	quiz.UpdatedAt = domain.Touch(quiz.CreatedAt, time.Now().UTC())
	return s.quizzes.Update(ctx, quiz)
}

// Delete removes the quiz with its questions and options.
func (s *QuizService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owners.AuthorizeQuiz(ctx, id, userID, "delete this quiz"); err != nil {
		return err
	}
	return s.quizzes.Delete(ctx, id)
}
