package domain

import (
	"errors"
	"testing"
	"time"
)

func TestEntityEqualityIsByIdentity(t *testing.T) {
	now := time.Now()
	a := NewJourney("Algebra", "basics", "u1", now)
	b := a
	b.Title = "Geometry"
	if !a.Equal(b) {
		t.Fatalf("same id must be equal regardless of attributes")
	}

	c := NewJourney("Algebra", "basics", "u1", now)
	if a.Equal(c) {
		t.Fatalf("different ids must not be equal")
	}
}

func TestConstructorsAssignIdentityAndTimestamps(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser("alice", "alice@x.com", "hash", now)
	if u.ID == "" || !u.IsActive || !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected user %+v", u)
	}

	journeyID := "j1"
	q := NewQuiz("Quiz", "d", &journeyID, u.ID, now)
	journeyID = "changed"
	if q.JourneyID == nil || *q.JourneyID != "j1" {
		t.Fatalf("quiz must not alias the caller's journey id")
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	q := NewQuestion("2+2?", "quiz-1", TextOptions("3", "4", "5"), "4", time.Now())
	if !q.IsCorrect("4") {
		t.Fatalf("expected 4 to be correct")
	}
	if q.IsCorrect("3") || q.IsCorrect(" 4") {
		t.Fatalf("expected exact matching only")
	}
	if got := q.OptionTexts(); len(got) != 3 || got[1] != "4" {
		t.Fatalf("unexpected option texts %v", got)
	}
}

func TestErrorKinds(t *testing.T) {
	nf := NewNotFound(KindQuiz, "q1")
	if !errors.Is(nf, ErrNotFound) {
		t.Fatalf("not found must unwrap to ErrNotFound")
	}
	if nf.Error() != "Quiz with ID 'q1' not found" {
		t.Fatalf("unexpected message %q", nf.Error())
	}
	if !errors.Is(Forbidden("update this quiz"), ErrForbidden) {
		t.Fatalf("forbidden must unwrap to ErrForbidden")
	}
	if !errors.Is(ErrUsernameExists, ErrValidation) || errors.Is(ErrUsernameExists, ErrEmailExists) {
		t.Fatalf("field errors must be distinct validation errors")
	}
	if !errors.Is(ErrInvalidCredentials, ErrUnauthenticated) {
		t.Fatalf("invalid credentials must be unauthenticated")
	}
}

func TestPageNormalize(t *testing.T) {
	if p := (Page{}).Normalize(); p.Limit != DefaultPageLimit || p.Offset != 0 {
		t.Fatalf("unexpected default page %+v", p)
	}
	if p := (Page{Offset: -3, Limit: 5000}).Normalize(); p.Limit != MaxPageLimit || p.Offset != 0 {
		t.Fatalf("unexpected clamped page %+v", p)
	}
}

func TestTouchNeverPrecedesCreation(t *testing.T) {
	created := time.Now()
	if got := Touch(created, created.Add(-time.Minute)); !got.Equal(created) {
		t.Fatalf("expected clamp to created time, got %v", got)
	}
}
