package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"journey-quiz-service/internal/app"
)

// HealthCheck is one dependency consulted by /readyz.
type HealthCheck interface {
	Name() string
	Check(ctx context.Context) error
}

// Services bundles the use cases the HTTP surface dispatches to.
type Services struct {
	Auth      *app.AuthService
	Users     *app.UserService
	Journeys  *app.JourneyService
	Quizzes   *app.QuizService
	Questions *app.QuestionService
}

// API holds the handlers; build it with NewRouter.
type API struct {
	auth      *app.AuthService
	users     *app.UserService
	journeys  *app.JourneyService
	quizzes   *app.QuizService
	questions *app.QuestionService
	validator *requestValidator
	checks    []HealthCheck
}

type RouterOptions struct {
	AllowedOrigins []string
	HealthChecks   []HealthCheck
	RequestTimeout time.Duration
}

// corsOptions allows any origin when none are configured. Credentials are
// only allowed for an explicit origin list without a wildcard.
func corsOptions(origins []string) cors.Options {
	explicit := len(origins) > 0
	for _, o := range origins {
		if o == "*" {
			explicit = false
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: explicit,
		MaxAge:           300,
	}
}

func NewRouter(svc Services, opts RouterOptions) http.Handler {
	a := &API{
		auth:      svc.Auth,
		users:     svc.Users,
		journeys:  svc.Journeys,
		quizzes:   svc.Quizzes,
		questions: svc.Questions,
		validator: newRequestValidator(),
		checks:    opts.HealthChecks,
	}
	practice := NewWSHandler(svc.Auth, svc.Quizzes, svc.Questions)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	r.Get("/", a.welcome)
	r.Get("/health", a.health)
	r.Get("/readyz", a.ready)
	// websockets outlive any request timeout
	r.Get("/ws/practice", practice.ServeWS)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(timeout))

		api.Post("/auth/register", a.register)
		api.Post("/auth/login", a.login)

		api.Group(func(pr chi.Router) {
			pr.Use(a.requireUser)

			pr.Post("/auth/logout", a.logout)
			pr.Get("/auth/whoami", a.whoami)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", a.whoami)
				ur.Get("/", a.listUsers)
				ur.Get("/{userID}", a.getUser)
				ur.Put("/{userID}", a.updateUser)
				ur.Delete("/{userID}", a.deleteUser)
			})

			pr.Route("/journeys", func(jr chi.Router) {
				jr.Post("/", a.createJourney)
				jr.Get("/", a.listJourneys)
				jr.Get("/{journeyID}", a.getJourney)
				jr.Put("/{journeyID}", a.updateJourney)
				jr.Delete("/{journeyID}", a.deleteJourney)
			})

			pr.Route("/quizzes", func(qr chi.Router) {
				qr.Post("/", a.createQuiz)
				qr.Get("/journey/{journeyID}", a.listQuizzesByJourney)
				qr.Get("/{quizID}", a.getQuiz)
				qr.Put("/{quizID}", a.updateQuiz)
				qr.Delete("/{quizID}", a.deleteQuiz)
			})

			pr.Route("/questions", func(qr chi.Router) {
				qr.Post("/", a.createQuestion)
				qr.Get("/quiz/{quizID}", a.listQuestionsByQuiz)
				qr.Get("/{questionID}", a.getQuestion)
				qr.Put("/{questionID}", a.updateQuestion)
				qr.Delete("/{questionID}", a.deleteQuestion)
				qr.Post("/{questionID}/check", a.checkAnswer)
			})
		})
	})
	return r
}

func (a *API) welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the journey quiz service"})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ready runs every dependency check concurrently and reports each verdict.
func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	results := make([]string, len(a.checks))
	g, ctx := errgroup.WithContext(r.Context())
	for i, check := range a.checks {
		g.Go(func() error {
			if err := check.Check(ctx); err != nil {
				results[i] = err.Error()
				return err
			}
			results[i] = "ok"
			return nil
		})
	}
	err := g.Wait()

	body := map[string]any{"status": "ready"}
	deps := make(map[string]string, len(a.checks))
	for i, check := range a.checks {
		if results[i] == "" {
			results[i] = "canceled"
		}
		deps[check.Name()] = results[i]
	}
	body["checks"] = deps
	if err != nil {
		body["status"] = "unavailable"
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
