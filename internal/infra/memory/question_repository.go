package memory

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

// QuestionRepository is an in-memory implementation of app.QuestionRepository.
type QuestionRepository struct {
	store *Store
}

func (r *QuestionRepository) Create(_ context.Context, question domain.Question) (domain.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = copyQuestion(question)
	return copyQuestion(question), nil
}

func (r *QuestionRepository) GetByID(_ context.Context, id string) (domain.Question, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if question, ok := s.questions[id]; ok {
		return copyQuestion(question), nil
	}
	return domain.Question{}, domain.NewNotFound(domain.KindQuestion, id)
}

func (r *QuestionRepository) List(_ context.Context, page domain.Page) ([]domain.Question, error) {
	return r.collect(func(domain.Question) bool { return true }, page), nil
}

func (r *QuestionRepository) ListByQuiz(_ context.Context, quizID string, page domain.Page) ([]domain.Question, error) {
	return r.collect(func(q domain.Question) bool { return q.QuizID == quizID }, page), nil
}

func (r *QuestionRepository) collect(match func(domain.Question) bool, page domain.Page) []domain.Question {
	s := r.store
	s.mu.RLock()
	questions := make([]domain.Question, 0)
	for _, question := range s.questions {
		if match(question) {
			questions = append(questions, copyQuestion(question))
		}
	}
	s.mu.RUnlock()

	sortByCreation(questions, func(q domain.Question) time.Time { return q.CreatedAt }, func(q domain.Question) string { return q.ID })
	return paginate(questions, page)
}

func (r *QuestionRepository) Update(_ context.Context, question domain.Question) (domain.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return domain.Question{}, domain.NewNotFound(domain.KindQuestion, question.ID)
	}
	s.questions[question.ID] = copyQuestion(question)
	return copyQuestion(question), nil
}

func (r *QuestionRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return domain.NewNotFound(domain.KindQuestion, id)
	}
	delete(s.questions, id)
	return nil
}
