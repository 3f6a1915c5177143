package app

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

type QuestionInput struct {
	QuizID        string
	Text          string
	Options       []domain.OptionInput
	CorrectAnswer string
}

// QuestionPatch carries optional changes. A nil Options slice leaves the options untouched.
type QuestionPatch struct {
	Text          *string
	Options       []domain.OptionInput
	CorrectAnswer *string
	QuizID        *string
}

// QuestionService contains the question use cases.
type QuestionService struct {
	questions QuestionRepository
	owners    *OwnershipResolver
}

func NewQuestionService(questions QuestionRepository, owners *OwnershipResolver) *QuestionService {
	return &QuestionService{questions: questions, owners: owners}
}

func (s *QuestionService) Create(ctx context.Context, userID string, in QuestionInput) (domain.Question, error) {
	if _, err := s.owners.AuthorizeQuiz(ctx, in.QuizID, userID, "create question in this quiz"); err != nil {
		return domain.Question{}, err
	}
	question := domain.NewQuestion(in.Text, in.QuizID, in.Options, in.CorrectAnswer, time.Now().UTC())
	if err := domain.ValidateQuestion(question.Options, question.CorrectAnswer); err != nil {
		return domain.Question{}, err
	}
	return s.questions.Create(ctx, question)
}

func (s *QuestionService) Get(ctx context.Context, userID, id string) (domain.Question, error) {
	chain, err := s.owners.AuthorizeQuestion(ctx, id, userID, "access this question")
	if err != nil {
		return domain.Question{}, err
	}
	return chain.Question, nil
}

func (s *QuestionService) ListByQuiz(ctx context.Context, userID, quizID string, page domain.Page) ([]domain.Question, error) {
	if _, err := s.owners.AuthorizeQuiz(ctx, quizID, userID, "access this quiz"); err != nil {
		return nil, err
	}
	return s.questions.ListByQuiz(ctx, quizID, page.Normalize())
}

// Update applies patch and re-validates the answer against whichever option
// set the question ends up with.
func (s *QuestionService) Update(ctx context.Context, userID, id string, patch QuestionPatch) (domain.Question, error) {
	chain, err := s.owners.AuthorizeQuestion(ctx, id, userID, "update this question")
	if err != nil {
		return domain.Question{}, err
	}
	question := chain.Question
	now := time.Now().UTC()

	if patch.Text != nil {
		question.Text = *patch.Text
	}
	if patch.CorrectAnswer != nil {
		question.CorrectAnswer = *patch.CorrectAnswer
	}
	switch {
	case patch.Options != nil:
		question.Options = domain.NormalizeOptions(patch.Options, question.CorrectAnswer, now)
	case patch.CorrectAnswer != nil:
		question.Options = domain.WithCorrectAnswer(question.Options, question.CorrectAnswer, now)
	}
	if err := domain.ValidateQuestion(question.Options, question.CorrectAnswer); err != nil {
		return domain.Question{}, err
	}

	if patch.QuizID != nil && *patch.QuizID != question.QuizID {
		target, err := s.owners.AuthorizeQuiz(ctx, *patch.QuizID, userID, "move question to this quiz")
		if err != nil {
			return domain.Question{}, err
		}
		question.QuizID = target.Quiz.ID
	}

	question.UpdatedAt = domain.Touch(question.CreatedAt, now)
	return s.questions.Update(ctx, question)
}

func (s *QuestionService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owners.AuthorizeQuestion(ctx, id, userID, "delete this question"); err != nil {
		return err
	}
	return s.questions.Delete(ctx, id)
}

// CheckAnswer grades answer; the correct answer is only revealed on a miss.
func (s *QuestionService) CheckAnswer(ctx context.Context, userID, id, answer string) (domain.AnswerResult, error) {
	chain, err := s.owners.AuthorizeQuestion(ctx, id, userID, "access this question")
	if err != nil {
		return domain.AnswerResult{}, err
	}
	return grade(chain.Question, answer), nil
}

// CheckQuizAnswer grades an answer to a question that must belong to quizID.
func (s *QuestionService) CheckQuizAnswer(ctx context.Context, userID, quizID, questionID, answer string) (domain.AnswerResult, error) {
	chain, err := s.owners.AuthorizeQuestion(ctx, questionID, userID, "access this question")
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if chain.Quiz.ID != quizID {
		return domain.AnswerResult{}, domain.NewNotFound(domain.KindQuestion, questionID)
	}
	return grade(chain.Question, answer), nil
}

func grade(question domain.Question, answer string) domain.AnswerResult {
	result := domain.AnswerResult{QuestionID: question.ID, Correct: question.IsCorrect(answer)}
	if !result.Correct {
		result.CorrectAnswer = question.CorrectAnswer
	}
	return result
}
