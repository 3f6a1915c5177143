package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"journey-quiz-service/internal/domain"
)

// Store holds every entity behind one lock so cascading deletes are atomic.
// Values are deep-copied on the way in and out; callers never share memory with the store.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	journeys  map[string]domain.Journey
	quizzes   map[string]domain.Quiz
	questions map[string]domain.Question
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		journeys:  make(map[string]domain.Journey),
		quizzes:   make(map[string]domain.Quiz),
		questions: make(map[string]domain.Question),
	}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{store: s} }
func (s *Store) Journeys() *JourneyRepository   { return &JourneyRepository{store: s} }
func (s *Store) Quizzes() *QuizRepository       { return &QuizRepository{store: s} }
func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{store: s} }

// deleteUserLocked cascades to journeys and to the user's journey-less quizzes.
func (s *Store) deleteUserLocked(id string) {
	for jid, j := range s.journeys {
		if j.UserID == id {
			s.deleteJourneyLocked(jid)
		}
	}
	for qid, q := range s.quizzes {
		if q.JourneyID == nil && q.OwnerID == id {
			s.deleteQuizLocked(qid)
		}
	}
	delete(s.users, id)
}

func (s *Store) deleteJourneyLocked(id string) {
	for qid, q := range s.quizzes {
		if q.JourneyID != nil && *q.JourneyID == id {
			s.deleteQuizLocked(qid)
		}
	}
	delete(s.journeys, id)
}

func (s *Store) deleteQuizLocked(id string) {
	for qid, q := range s.questions {
		if q.QuizID == id {
			delete(s.questions, qid)
		}
	}
	delete(s.quizzes, id)
}

func paginate[T any](items []T, page domain.Page) []T {
	page = page.Normalize()
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

// sortByCreation orders by creation time, then id, matching the SQL adapters.
func sortByCreation[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return id(items[i]) < id(items[j])
	})
}

func copyQuiz(q domain.Quiz) domain.Quiz {
	if q.JourneyID != nil {
		id := *q.JourneyID
		q.JourneyID = &id
	}
	return q
}

func copyQuestion(q domain.Question) domain.Question {
	options := make([]domain.Option, len(q.Options))
	for i, opt := range q.Options {
		if opt.ImageURL != nil {
			url := *opt.ImageURL
			opt.ImageURL = &url
		}
		meta := make(map[string]any, len(opt.Metadata))
		for k, v := range opt.Metadata {
			meta[k] = v
		}
		opt.Metadata = meta
		options[i] = opt
	}
	q.Options = options
	return q
}

func errDuplicate(field, value string) error {
	return fmt.Errorf("memory: duplicate %s %q", field, value)
}
