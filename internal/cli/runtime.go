package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"journey-quiz-service/internal/app"
	"journey-quiz-service/internal/config"
	"journey-quiz-service/internal/infra/bunrepo"
	"journey-quiz-service/internal/infra/memory"
	"journey-quiz-service/internal/infra/postgres"
	redisinfra "journey-quiz-service/internal/infra/redis"
	"journey-quiz-service/internal/infra/security"
	transport "journey-quiz-service/internal/transport/http"
)

type repositories struct {
	users     app.UserRepository
	journeys  app.JourneyRepository
	quizzes   app.QuizRepository
	questions app.QuestionRepository
}

// runtime owns every long-lived handle opened at startup.
type runtime struct {
	services transport.Services
	checks   []transport.HealthCheck
	closers  []func() error
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			log.Printf("close: %v", err)
		}
	}
}

func buildRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	rt := &runtime{}
	repos, err := rt.openRepositories(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	var blocklist app.TokenBlocklist = memory.NewTokenBlocklist()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, client.Close)
		rt.checks = append(rt.checks, redisinfra.NewHealthCheck(client))
		blocklist = redisinfra.NewTokenBlocklist(client)
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := security.NewJWTIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, config.TTLDuration(cfg.Auth.TokenTTL, 30*time.Minute))
	owners := app.NewOwnershipResolver(repos.journeys, repos.quizzes, repos.questions)

	rt.services = transport.Services{
		Auth:      app.NewAuthService(repos.users, hasher, issuer, blocklist),
		Users:     app.NewUserService(repos.users, hasher, blocklist),
		Journeys:  app.NewJourneyService(repos.journeys, owners),
		Quizzes:   app.NewQuizService(repos.quizzes, repos.questions, owners),
		Questions: app.NewQuestionService(repos.questions, owners),
	}
	return rt, nil
}

func (rt *runtime) openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	driver := bunrepo.Driver(cfg.Database.Driver)
	switch driver {
	case "memory":
		log.Printf("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return repositories{store.Users(), store.Journeys(), store.Quizzes(), store.Questions()}, nil
	case bunrepo.DriverSQLite, bunrepo.DriverPostgres:
	default:
		return repositories{}, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := bunrepo.Open(ctx, driver, cfg.Database.DSN)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	rt.closers = append(rt.closers, db.Close)
	if _, err := bunrepo.Migrate(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("migrate: %w", err)
	}
	rt.checks = append(rt.checks, bunrepo.NewHealthCheck(db))

	if driver == bunrepo.DriverPostgres {
		pool, err := postgres.Connect(ctx, cfg.Database.DSN)
		if err != nil {
			return repositories{}, fmt.Errorf("connect probe pool: %w", err)
		}
		rt.closers = append(rt.closers, func() error { pool.Close(); return nil })
		probe := postgres.NewProbe(pool)
		if version, err := probe.ServerVersion(ctx); err == nil {
			log.Printf("connected to postgres %s", version)
		}
		rt.checks = append(rt.checks, probe)
	}

	store := bunrepo.NewStore(db)
	return repositories{store.Users(), store.Journeys(), store.Quizzes(), store.Questions()}, nil
}
