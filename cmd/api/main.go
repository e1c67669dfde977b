// @title           Movie Review API
// @version         1.0
// @description     Movie catalog, reviews and ratings with role-based access.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/api"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/service"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/config"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/db/memory"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/db/mongo"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/db/postgres"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/db/redis"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/http/handlers"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/queue"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/token"
	"github.com/Mukta-28/Movie-Review-Project/pkg/logger"
)

const shutdownGrace = 10 * time.Second

// repositories is the persistence backend selected by STORE.
type repositories struct {
	users    ports.UserRepository
	movies   ports.MovieRepository
	reviews  ports.ReviewRepository
	feedback ports.FeedbackRepository
	pinger   handlers.Pinger
	close    func(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine: production reads the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movie-review-api",
		Env:     cfg.Env,
	})

	repos, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	checks := map[string]handlers.Pinger{cfg.Store: repos.pinger}

	var cache *redis.RatingsCache
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		cache = redis.NewRatingsCache(client, cfg.Ratings.CacheTTL)
		checks["redis"] = cache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("ratings cache enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, ratings are computed on every read")
	}

	tokens, err := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	if cfg.Auth.AdminKey == "" {
		log.Warn().Msg("ADMIN_SECRET_KEY not set, admin registration is disabled")
	}

	var ratings *service.RatingService
	if cache != nil {
		ratings = service.NewRatingService(repos.reviews, cache, log)
		dispatcher := queue.NewDispatcher(cfg.Ratings.Workers, ratings, log)
		dispatcher.Start(ctx)
		ratings.UseQueue(dispatcher)
	} else {
		ratings = service.NewRatingService(repos.reviews, nil, log)
	}

	e := api.NewRouter(api.Deps{
		Log:            log,
		Resolver:       service.NewIdentityResolver(tokens, repos.users),
		Auth:           service.NewAuthService(repos.users, tokens, cfg.Auth.AdminKey, log),
		Users:          service.NewUserService(repos.users),
		Movies:         service.NewMovieService(repos.movies, repos.reviews, ratings, log),
		Reviews:        service.NewReviewService(repos.reviews, repos.movies, repos.users, ratings, log),
		Feedback:       service.NewFeedbackService(repos.feedback, log),
		Checks:         checks,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("movie review API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		store := postgres.NewStore(db)
		log.Info().Msg("connected to postgres")
		return &repositories{
			users: store.Users, movies: store.Movies, reviews: store.Reviews, feedback: store.Feedback,
			pinger: store,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		ids, err := mongo.NewIDGenerator(cfg.Mongo.Node)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		store := mongo.NewStore(db, ids)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &repositories{
			users: store.Users, movies: store.Movies, reviews: store.Reviews, feedback: store.Feedback,
			pinger: store,
			close:  client.Disconnect,
		}, nil

	case config.StoreMemory:
		store := memory.NewStore()
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &repositories{
			users: store.Users(), movies: store.Movies(), reviews: store.Reviews(), feedback: store.Feedback(),
			pinger: store,
			close:  func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
