package bunrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"journey-quiz-service/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func seedQuiz(t *testing.T, store *Store) (domain.User, domain.Journey, domain.Quiz, domain.Question) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	user := domain.NewUser("alice", "alice@x.com", "hash", now)
	if _, err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	journey := domain.NewJourney("Math", "basics", user.ID, now)
	if _, err := store.Journeys().Create(ctx, journey); err != nil {
		t.Fatalf("create journey: %v", err)
	}
	quiz := domain.NewQuiz("Sums", "", &journey.ID, user.ID, now)
	question := domain.NewQuestion("2+2?", quiz.ID, domain.TextOptions("3", "4", "5"), "4", now)
	if _, _, err := store.Quizzes().CreateWithQuestions(ctx, quiz, []domain.Question{question}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return user, journey, quiz, question
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if _, err := Migrate(ctx, store.db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user, _, _, _ := seedQuiz(t, store)

	byName, err := store.Users().GetByUsername(ctx, "alice")
	if err != nil || byName.ID != user.ID {
		t.Fatalf("get by username: %+v %v", byName, err)
	}
	byEmail, err := store.Users().GetByEmail(ctx, "alice@x.com")
	if err != nil || byEmail.ID != user.ID {
		t.Fatalf("get by email: %+v %v", byEmail, err)
	}
	if !byName.IsActive {
		t.Fatalf("expected active user")
	}

	_, err = store.Users().GetByUsername(ctx, "nobody")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != domain.KindUser {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUniqueUsernameEnforced(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now().UTC()

	if _, err := store.Users().Create(ctx, domain.NewUser("alice", "a@x.com", "h", now)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Users().Create(ctx, domain.NewUser("alice", "b@x.com", "h", now)); err == nil {
		t.Fatalf("expected unique violation")
	}
}

func TestQuestionRoundTripKeepsOptions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, _, quiz, question := seedQuiz(t, store)

	got, err := store.Questions().GetByID(ctx, question.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.QuizID != quiz.ID || got.CorrectAnswer != "4" {
		t.Fatalf("unexpected question: %+v", got)
	}
	if len(got.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(got.Options))
	}
	for i, opt := range got.Options {
		if opt.ID != question.Options[i].ID || opt.Text != question.Options[i].Text || opt.Order != i {
			t.Fatalf("option %d mismatch: %+v", i, opt)
		}
		if opt.IsCorrect != (opt.Text == "4") {
			t.Fatalf("option %d correctness flag wrong: %+v", i, opt)
		}
		if opt.Metadata == nil {
			t.Fatalf("option %d metadata must not be nil", i)
		}
	}
}

func TestQuestionUpdateReplacesOptions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, _, _, question := seedQuiz(t, store)
	now := time.Now().UTC()

	question.Options = domain.NormalizeOptions(domain.TextOptions("7", "8"), "8", now)
	question.CorrectAnswer = "8"
	if _, err := store.Questions().Update(ctx, question); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.Questions().GetByID(ctx, question.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if texts := got.OptionTexts(); len(texts) != 2 || texts[0] != "7" || texts[1] != "8" {
		t.Fatalf("unexpected options %v", texts)
	}
	if !got.IsCorrect("8") {
		t.Fatalf("expected 8 to be correct")
	}
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	quiz := domain.NewQuiz("Ghost", "", nil, "nobody", time.Now().UTC())

	if _, err := store.Quizzes().Update(ctx, quiz); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Quizzes().Delete(ctx, quiz.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestJourneyDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user, journey, quiz, question := seedQuiz(t, store)

	if err := store.Journeys().Delete(ctx, journey.ID); err != nil {
		t.Fatalf("delete journey: %v", err)
	}
	if _, err := store.Quizzes().GetByID(ctx, quiz.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected quiz gone, got %v", err)
	}
	if _, err := store.Questions().GetByID(ctx, question.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected question gone, got %v", err)
	}
	if _, err := store.Users().GetByID(ctx, user.ID); err != nil {
		t.Fatalf("user must survive: %v", err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user, journey, _, question := seedQuiz(t, store)
	loose := domain.NewQuiz("Loose", "", nil, user.ID, time.Now().UTC())
	if _, err := store.Quizzes().Create(ctx, loose); err != nil {
		t.Fatalf("create loose quiz: %v", err)
	}

	if err := store.Users().Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := store.Journeys().GetByID(ctx, journey.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected journey gone, got %v", err)
	}
	if _, err := store.Quizzes().GetByID(ctx, loose.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected loose quiz gone, got %v", err)
	}
	if _, err := store.Questions().GetByID(ctx, question.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected question gone, got %v", err)
	}
}

func TestListByParentAndPaging(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user, journey, quiz, _ := seedQuiz(t, store)
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		q := domain.NewQuestion("extra", quiz.ID, domain.TextOptions("a", "b"), "a", base.Add(time.Duration(i+1)*time.Second))
		if _, err := store.Questions().Create(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	all, err := store.Questions().ListByQuiz(ctx, quiz.ID, domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(all))
	}
	for _, q := range all {
		if len(q.Options) < 2 {
			t.Fatalf("question %s loaded without options", q.ID)
		}
	}

	page, err := store.Questions().ListByQuiz(ctx, quiz.ID, domain.Page{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if len(page) != 2 || page[0].ID != all[1].ID {
		t.Fatalf("unexpected page %+v", page)
	}

	journeys, err := store.Journeys().ListByUser(ctx, user.ID, domain.Page{})
	if err != nil || len(journeys) != 1 || journeys[0].ID != journey.ID {
		t.Fatalf("list journeys: %+v %v", journeys, err)
	}
	quizzes, err := store.Quizzes().ListByJourney(ctx, journey.ID, domain.Page{})
	if err != nil || len(quizzes) != 1 || quizzes[0].ID != quiz.ID {
		t.Fatalf("list quizzes: %+v %v", quizzes, err)
	}
	if others, _ := store.Journeys().ListByUser(ctx, "someone-else", domain.Page{}); len(others) != 0 {
		t.Fatalf("expected no journeys for other user")
	}
}
