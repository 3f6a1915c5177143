package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/domain"
	"journey-quiz-service/internal/infra/memory"
	"journey-quiz-service/internal/infra/security"
)

type fixture struct {
	store     *memory.Store
	owners    *app.OwnershipResolver
	auth      *app.AuthService
	users     *app.UserService
	journeys  *app.JourneyService
	quizzes   *app.QuizService
	questions *app.QuestionService
}

func newFixture() fixture {
	store := memory.NewStore()
	hasher := security.NewBcryptHasher(4)
	blocklist := memory.NewTokenBlocklist()
	owners := app.NewOwnershipResolver(store.Journeys(), store.Quizzes(), store.Questions())
	return fixture{
		store:     store,
		owners:    owners,
		auth:      app.NewAuthService(store.Users(), hasher, security.NewJWTIssuer("app-test-secret-key", "test", time.Hour), blocklist),
		users:     app.NewUserService(store.Users(), hasher, blocklist),
		journeys:  app.NewJourneyService(store.Journeys(), owners),
		quizzes:   app.NewQuizService(store.Quizzes(), store.Questions(), owners),
		questions: app.NewQuestionService(store.Questions(), owners),
	}
}

func (f fixture) register(t *testing.T, username string) domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), app.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthorizeQuizVerdicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	journey, _ := f.journeys.Create(ctx, alice.ID, app.JourneyInput{Title: "Math"})
	inJourney, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "Arithmetic", JourneyID: &journey.ID})
	loose, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "Loose"})
	missing := "gone"
	dangling, _ := f.store.Quizzes().Create(ctx, domain.NewQuiz("Dangling", "", &missing, alice.ID, time.Now()))

	cases := []struct {
		name   string
		quizID string
		userID string
		want   error
	}{
		{"owner via journey", inJourney.Quiz.ID, alice.ID, nil},
		{"stranger via journey", inJourney.Quiz.ID, bob.ID, domain.ErrForbidden},
		{"creator of journey-less quiz", loose.Quiz.ID, alice.ID, nil},
		{"stranger on journey-less quiz", loose.Quiz.ID, bob.ID, domain.ErrForbidden},
		{"unknown quiz", "nope", alice.ID, domain.ErrNotFound},
		{"dangling journey", dangling.ID, alice.ID, domain.ErrNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chain, err := f.owners.AuthorizeQuiz(ctx, c.quizID, c.userID, "access this quiz")
			if c.want == nil {
				if err != nil {
					t.Fatalf("expected access, got %v", err)
				}
				if chain.Quiz.ID != c.quizID {
					t.Fatalf("chain resolved the wrong quiz: %+v", chain)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestQuizCreateRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")

	_, err := f.quizzes.Create(ctx, alice.ID, app.QuizInput{
		Title: "Mixed",
		Questions: []app.QuestionDraft{
			{Text: "ok", Options: domain.TextOptions("a", "b"), CorrectAnswer: "a"},
			{Text: "bad", Options: domain.TextOptions("a", "b"), CorrectAnswer: "z"},
		},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	quizzes, _ := f.store.Quizzes().List(ctx, domain.Page{Limit: 10})
	questions, _ := f.store.Questions().List(ctx, domain.Page{Limit: 10})
	if len(quizzes) != 0 || len(questions) != 0 {
		t.Fatalf("expected nothing persisted, got %d quizzes %d questions", len(quizzes), len(questions))
	}
}

func TestQuizCreateInForeignJourney(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	journey, _ := f.journeys.Create(ctx, alice.ID, app.JourneyInput{Title: "Math"})

	if _, err := f.quizzes.Create(ctx, bob.ID, app.QuizInput{Title: "x", JourneyID: &journey.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	missing := "missing"
	if _, err := f.quizzes.Create(ctx, bob.ID, app.QuizInput{Title: "x", JourneyID: &missing}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuestionUpdateKeepsAnswerConsistent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	detail, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "Q"})
	question, err := f.questions.Create(ctx, alice.ID, app.QuestionInput{
		QuizID:        detail.Quiz.ID,
		Text:          "2+2?",
		Options:       domain.TextOptions("3", "4"),
		CorrectAnswer: "4",
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	three := "3"
	updated, err := f.questions.Update(ctx, alice.ID, question.ID, app.QuestionPatch{CorrectAnswer: &three})
	if err != nil {
		t.Fatalf("answer-only update: %v", err)
	}
	if updated.Options[0].ID != question.Options[0].ID || !updated.Options[0].IsCorrect || updated.Options[1].IsCorrect {
		t.Fatalf("expected option ids kept and correctness moved: %+v", updated.Options)
	}

	if _, err := f.questions.Update(ctx, alice.ID, question.ID, app.QuestionPatch{Options: domain.TextOptions("5", "6")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected options without the answer to be rejected, got %v", err)
	}

	six := "6"
	updated, err = f.questions.Update(ctx, alice.ID, question.ID, app.QuestionPatch{Options: domain.TextOptions("5", "6"), CorrectAnswer: &six})
	if err != nil {
		t.Fatalf("replace options: %v", err)
	}
	if updated.CorrectAnswer != "6" || len(updated.Options) != 2 || !updated.Options[1].IsCorrect {
		t.Fatalf("unexpected question after replace: %+v", updated)
	}
}

func TestCheckQuizAnswerScopesToQuiz(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	first, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "first", Questions: []app.QuestionDraft{
		{Text: "2+2?", Options: domain.TextOptions("3", "4"), CorrectAnswer: "4"},
	}})
	second, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "second"})
	questionID := first.Questions[0].ID

	result, err := f.questions.CheckQuizAnswer(ctx, alice.ID, first.Quiz.ID, questionID, "4")
	if err != nil || !result.Correct || result.CorrectAnswer != "" {
		t.Fatalf("expected correct answer without reveal, got %+v %v", result, err)
	}
	if _, err := f.questions.CheckQuizAnswer(ctx, alice.ID, second.Quiz.ID, questionID, "4"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for question outside quiz, got %v", err)
	}
}

func TestAuthLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")

	if _, err := f.auth.Register(ctx, app.RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"}); !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	session, err := f.auth.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	user, claims, err := f.auth.Authenticate(ctx, session.AccessToken)
	if err != nil || user.ID != alice.ID {
		t.Fatalf("authenticate: %+v %v", user, err)
	}
	if err := f.auth.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := f.auth.Authenticate(ctx, session.AccessToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}

	inactive := false
	if _, err := f.users.Update(ctx, app.Actor{UserID: alice.ID}, alice.ID, app.UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := f.auth.Login(ctx, "alice", "secret123"); !errors.Is(err, domain.ErrInactiveUser) {
		t.Fatalf("expected inactive user, got %v", err)
	}
}

func (f fixture) login(t *testing.T, username string) (string, domain.Claims) {
	t.Helper()
	ctx := context.Background()
	session, err := f.auth.Login(ctx, username, "secret123")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	_, claims, err := f.auth.Authenticate(ctx, session.AccessToken)
	if err != nil {
		t.Fatalf("authenticate %s: %v", username, err)
	}
	return session.AccessToken, claims
}

func TestFreedUsernameDoesNotCarryOldTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	presented, presentedClaims := f.login(t, "alice")
	other, _ := f.login(t, "alice")

	renamed := "alice2"
	if _, err := f.users.Update(ctx, app.Actor{UserID: alice.ID, Token: presentedClaims}, alice.ID, app.UserPatch{Username: &renamed}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, _, err := f.auth.Authenticate(ctx, presented); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected the token used for the rename to be revoked, got %v", err)
	}

	mallory, err := f.auth.Register(ctx, app.RegisterInput{Username: "alice", Email: "mallory@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register freed username: %v", err)
	}
	for name, token := range map[string]string{"presented": presented, "other session": other} {
		user, _, err := f.auth.Authenticate(ctx, token)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s token resolved to %s (mallory is %s), err=%v", name, user.ID, mallory.ID, err)
		}
	}
}

func TestOlderAccountTakingFreedUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	bob := f.register(t, "bob")
	alice := f.register(t, "alice")
	aliceToken, _ := f.login(t, "alice")

	renamed := "alice2"
	if _, err := f.users.Update(ctx, app.Actor{UserID: alice.ID}, alice.ID, app.UserPatch{Username: &renamed}); err != nil {
		t.Fatalf("rename alice: %v", err)
	}
	taken := "alice"
	if _, err := f.users.Update(ctx, app.Actor{UserID: bob.ID}, bob.ID, app.UserPatch{Username: &taken}); err != nil {
		t.Fatalf("rename bob: %v", err)
	}
	if user, _, err := f.auth.Authenticate(ctx, aliceToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("alice's token resolved to %s, err=%v", user.ID, err)
	}
}

func TestDeletedAccountTokenIsRevoked(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	token, claims := f.login(t, "alice")

	if err := f.users.Delete(ctx, app.Actor{UserID: alice.ID, Token: claims}, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	f.register(t, "alice")
	if _, _, err := f.auth.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected deleted account's token to be rejected, got %v", err)
	}
}

func TestUserMutationsAreSelfOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	name := "mallory"
	if _, err := f.users.Update(ctx, app.Actor{UserID: bob.ID}, alice.ID, app.UserPatch{Username: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden update, got %v", err)
	}
	if err := f.users.Delete(ctx, app.Actor{UserID: bob.ID}, alice.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	taken := "bob@example.com"
	if _, err := f.users.Update(ctx, app.Actor{UserID: alice.ID}, alice.ID, app.UserPatch{Email: &taken}); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected duplicate email, got %v", err)
	}

	journey, _ := f.journeys.Create(ctx, alice.ID, app.JourneyInput{Title: "Math"})
	if err := f.users.Delete(ctx, app.Actor{UserID: alice.ID}, alice.ID); err != nil {
		t.Fatalf("delete self: %v", err)
	}
	if _, err := f.store.Journeys().GetByID(ctx, journey.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected journey removed with its owner, got %v", err)
	}
}

func TestQuizGetReturnsEveryQuestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t, "alice")
	detail, _ := f.quizzes.Create(ctx, alice.ID, app.QuizInput{Title: "Long"})

	want := domain.MaxPageLimit + 5
	now := time.Now().UTC()
	for i := 0; i < want; i++ {
		q := domain.NewQuestion("q", detail.Quiz.ID, domain.TextOptions("a", "b"), "a", now)
		if _, err := f.store.Questions().Create(ctx, q); err != nil {
			t.Fatalf("seed question %d: %v", i, err)
		}
	}

	got, err := f.quizzes.Get(ctx, alice.ID, detail.Quiz.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(got.Questions) != want {
		t.Fatalf("expected %d questions, got %d", want, len(got.Questions))
	}
	seen := make(map[string]bool, want)
	for _, q := range got.Questions {
		if seen[q.ID] {
			t.Fatalf("question %s returned twice", q.ID)
		}
		seen[q.ID] = true
	}
}
