package memory

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

// QuizRepository is an in-memory implementation of app.QuizRepository.
type QuizRepository struct {
	store *Store
}

func (r *QuizRepository) Create(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = copyQuiz(quiz)
	return copyQuiz(quiz), nil
}

func (r *QuizRepository) CreateWithQuestions(_ context.Context, quiz domain.Quiz, questions []domain.Question) (domain.Quiz, []domain.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = copyQuiz(quiz)
	created := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.QuizID = quiz.ID
		s.questions[q.ID] = copyQuestion(q)
		created[i] = copyQuestion(q)
	}
	return copyQuiz(quiz), created, nil
}

func (r *QuizRepository) GetByID(_ context.Context, id string) (domain.Quiz, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if quiz, ok := s.quizzes[id]; ok {
		return copyQuiz(quiz), nil
	}
	return domain.Quiz{}, domain.NewNotFound(domain.KindQuiz, id)
}

func (r *QuizRepository) List(_ context.Context, page domain.Page) ([]domain.Quiz, error) {
	return r.collect(func(domain.Quiz) bool { return true }, page), nil
}

func (r *QuizRepository) ListByJourney(_ context.Context, journeyID string, page domain.Page) ([]domain.Quiz, error) {
	return r.collect(func(q domain.Quiz) bool { return q.JourneyID != nil && *q.JourneyID == journeyID }, page), nil
}

func (r *QuizRepository) collect(match func(domain.Quiz) bool, page domain.Page) []domain.Quiz {
	s := r.store
	s.mu.RLock()
	quizzes := make([]domain.Quiz, 0)
	for _, quiz := range s.quizzes {
		if match(quiz) {
			quizzes = append(quizzes, copyQuiz(quiz))
		}
	}
	s.mu.RUnlock()

	sortByCreation(quizzes, func(q domain.Quiz) time.Time { return q.CreatedAt }, func(q domain.Quiz) string { return q.ID })
	return paginate(quizzes, page)
}

func (r *QuizRepository) Update(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return domain.Quiz{}, domain.NewNotFound(domain.KindQuiz, quiz.ID)
	}
	s.quizzes[quiz.ID] = copyQuiz(quiz)
	return copyQuiz(quiz), nil
}

func (r *QuizRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return domain.NewNotFound(domain.KindQuiz, id)
	}
	s.deleteQuizLocked(id)
	return nil
}
