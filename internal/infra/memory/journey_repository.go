package memory

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

// JourneyRepository is an in-memory implementation of app.JourneyRepository.
type JourneyRepository struct {
	store *Store
}

func (r *JourneyRepository) Create(_ context.Context, journey domain.Journey) (domain.Journey, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journeys[journey.ID] = journey
	return journey, nil
}

func (r *JourneyRepository) GetByID(_ context.Context, id string) (domain.Journey, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if journey, ok := s.journeys[id]; ok {
		return journey, nil
	}
	return domain.Journey{}, domain.NewNotFound(domain.KindJourney, id)
}

func (r *JourneyRepository) List(_ context.Context, page domain.Page) ([]domain.Journey, error) {
	return r.collect(func(domain.Journey) bool { return true }, page), nil
}

func (r *JourneyRepository) ListByUser(_ context.Context, userID string, page domain.Page) ([]domain.Journey, error) {
	return r.collect(func(j domain.Journey) bool { return j.UserID == userID }, page), nil
}

func (r *JourneyRepository) collect(match func(domain.Journey) bool, page domain.Page) []domain.Journey {
	s := r.store
	s.mu.RLock()
	journeys := make([]domain.Journey, 0)
	for _, journey := range s.journeys {
		if match(journey) {
			journeys = append(journeys, journey)
		}
	}
	s.mu.RUnlock()

	sortByCreation(journeys, func(j domain.Journey) time.Time { return j.CreatedAt }, func(j domain.Journey) string { return j.ID })
	return paginate(journeys, page)
}

func (r *JourneyRepository) Update(_ context.Context, journey domain.Journey) (domain.Journey, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.journeys[journey.ID]; !ok {
		return domain.Journey{}, domain.NewNotFound(domain.KindJourney, journey.ID)
	}
	s.journeys[journey.ID] = journey
	return journey, nil
}

func (r *JourneyRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.journeys[id]; !ok {
		return domain.NewNotFound(domain.KindJourney, id)
	}
	s.deleteJourneyLocked(id)
	return nil
}
