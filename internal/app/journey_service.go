package app

import (
	"context"
	"time"

	"journey-quiz-service/internal/domain"
)

type JourneyInput struct {
	Title       string
	Description string
}

type JourneyPatch struct {
	Title       *string
	Description *string
}

// JourneyService manages journeys owned by the acting user.
type JourneyService struct {
	journeys JourneyRepository
	owners   *OwnershipResolver
}

func NewJourneyService(journeys JourneyRepository, owners *OwnershipResolver) *JourneyService {
	return &JourneyService{journeys: journeys, owners: owners}
}

func (s *JourneyService) Create(ctx context.Context, userID string, in JourneyInput) (domain.Journey, error) {
	return s.journeys.Create(ctx, domain.NewJourney(in.Title, in.Description, userID, time.Now().UTC()))
}

func (s *JourneyService) Get(ctx context.Context, userID, id string) (domain.Journey, error) {
	return s.owners.AuthorizeJourney(ctx, id, userID, "access this journey")
}

func (s *JourneyService) ListForUser(ctx context.Context, userID string, page domain.Page) ([]domain.Journey, error) {
	return s.journeys.ListByUser(ctx, userID, page.Normalize())
}

func (s *JourneyService) Update(ctx context.Context, userID, id string, patch JourneyPatch) (domain.Journey, error) {
	journey, err := s.owners.AuthorizeJourney(ctx, id, userID, "update this journey")
	if err != nil {
		return domain.Journey{}, err
	}
	if patch.Title != nil {
		journey.Title = *patch.Title
	}
	if patch.Description != nil {
		journey.Description = *patch.Description
	}
	journey.UpdatedAt = domain.Touch(journey.CreatedAt, time.Now().UTC())
	return s.journeys.Update(ctx, journey)
}

// Delete removes the journey; its quizzes, questions and options go with it.
func (s *JourneyService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owners.AuthorizeJourney(ctx, id, userID, "delete this journey"); err != nil {
		return err
	}
	return s.journeys.Delete(ctx, id)
}
