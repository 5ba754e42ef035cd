// Package app builds the running application from configuration: store
// backend, revocation list, services and router.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/config"
	"github.com/harentsoaR/doctors-portal/internal/handlers"
	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/repository"
	"github.com/harentsoaR/doctors-portal/internal/server"
	"github.com/harentsoaR/doctors-portal/internal/services"
	"github.com/harentsoaR/doctors-portal/internal/store"
	"github.com/harentsoaR/doctors-portal/internal/store/memory"
	"github.com/harentsoaR/doctors-portal/internal/store/mongostore"
	"github.com/harentsoaR/doctors-portal/internal/store/redisstore"
)

type App struct {
	Router *gin.Engine
	Tokens *auth.TokenManager

	logger *zap.Logger
	db     *mongostore.Database
	redis  *redis.Client
}

type collections struct {
	services store.Collection[models.Service]
	bookings store.Collection[models.Booking]
	users    store.Collection[models.User]
	doctors  store.Collection[models.Doctor]
}

// New connects the configured backends and assembles the router. Close must
// be called to release them.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	colls, err := a.openStore(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	revocations, err := a.openRevocations(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL, revocations)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Tokens = tokens

	users := repository.NewUserRepository(colls.users)
	h := handlers.NewHandler(handlers.Dependencies{
		Services:        repository.NewServiceRepository(colls.services),
		Bookings:        repository.NewBookingRepository(colls.bookings),
		Users:           users,
		Doctors:         repository.NewDoctorRepository(colls.doctors),
		Tokens:          tokens,
		NotificationSvc: services.NewNotificationService(cfg.TextbeltAPIKey, logger),
		Logger:          logger,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = server.NewRouter(h, auth.NewAuthorizer(users, logger), server.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (collections, error) {
	if cfg.Store == config.StoreMemory {
		a.logger.Warn("using in-memory store, data is lost on restart")
		colls := collections{
			services: memory.NewCollection[models.Service](),
			bookings: memory.NewCollection[models.Booking](mongostore.BookingKey),
			users:    memory.NewCollection[models.User]([]string{"email"}),
			doctors:  memory.NewCollection[models.Doctor]([]string{"email"}),
		}
		if err := SeedServices(ctx, repository.NewServiceRepository(colls.services)); err != nil {
			return collections{}, err
		}
		return colls, nil
	}

	db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, a.logger)
	if err != nil {
		return collections{}, err
	}
	a.db = db
	if err := ensureIndexes(ctx, db); err != nil {
		return collections{}, err
	}
	return collections{
		services: db.Services,
		bookings: db.Bookings,
		users:    db.Users,
		doctors:  db.Doctors,
	}, nil
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes refuses to start without the unique indexes: booking
// admission on mongo has no other duplicate check.
func ensureIndexes(ctx context.Context, idx indexer) error {
	if err := idx.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes (run `doctors-portal indexes` after removing duplicate documents): %w", err)
	}
	return nil
}

func (a *App) openRevocations(ctx context.Context, cfg *config.Config) (auth.RevocationList, error) {
	if cfg.RedisAddr == "" {
		return auth.NewMemoryRevocations(), nil
	}
	client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	a.redis = client
	a.logger.Info("token revocations stored in redis", zap.String("addr", cfg.RedisAddr))
	return redisstore.NewRevocations(client), nil
}

// Close releases the store and redis connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close mongodb: %w", err))
		}
	}
	return errors.Join(errs...)
}
