package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/healthtrack/records-api/internal/api"
	"github.com/healthtrack/records-api/internal/core/ports"
	"github.com/healthtrack/records-api/internal/core/service"
	"github.com/healthtrack/records-api/internal/infrastructure/db/memory"
	mongostore "github.com/healthtrack/records-api/internal/infrastructure/db/mongo"
	redisstore "github.com/healthtrack/records-api/internal/infrastructure/db/redis"
	httpserver "github.com/healthtrack/records-api/internal/infrastructure/http"
	"github.com/healthtrack/records-api/internal/infrastructure/http/handlers"
	"github.com/healthtrack/records-api/internal/pkg/config"
	"github.com/healthtrack/records-api/pkg/logger"
)

const serviceName = "records-api"

// stores is the set of backends the services run on.
type stores struct {
	credentials ports.CredentialStore
	programs    ports.ProgramRepository
	clients     ports.ClientRepository
	keys        ports.IdempotencyStore
	probes      []handlers.Probe
	closers     []func(context.Context) error
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDev(),
		Service: serviceName,
	})

	st, err := openStores(ctx, cfg, log)
	if st != nil {
		defer st.close(log)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to open stores")
		return err
	}

	var tokens service.TokenIssuer
	if cfg.TokenSigningKey != "" {
		tokens = service.NewJWTIssuer([]byte(cfg.TokenSigningKey))
		log.Info().Msg("issuing signed session tokens")
	}

	authSvc := service.NewAuthService(st.credentials, tokens, log)
	if err := seedUser(ctx, authSvc, cfg.Seed); err != nil {
		log.Error().Err(err).Msg("failed to seed user")
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := api.NewRouter(api.Dependencies{
		AuthService:    authSvc,
		ProgramService: service.NewProgramService(st.programs, st.keys, log),
		ClientService:  service.NewClientService(st.clients, st.programs, st.keys, log),
		Probes:         st.probes,
		Registry:       reg,
		Logger:         log,
	})

	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting records api")
	if err := httpserver.Serve(ctx, e, httpserver.Addr(cfg.Port), log); err != nil {
		log.Error().Err(err).Msg("http server stopped")
		return err
	}
	log.Info().Msg("records api stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{}

	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return st, err
		}
		st.closers = append(st.closers, client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return st, err
		}
		st.credentials = mongostore.NewCredentialStore(db)
		st.programs = mongostore.NewProgramRepository(db)
		st.clients = mongostore.NewClientRepository(db)
		st.probes = append(st.probes, mongostore.NewProbe(db))
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb stores")
	default:
		st.credentials = memory.NewCredentialStore()
		st.programs = memory.NewProgramRepository()
		st.clients = memory.NewClientRepository()
		log.Info().Msg("using in-memory stores")
	}

	if cfg.Redis.Addr == "" {
		st.keys = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
		return st, nil
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return st, err
	}
	st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
	st.keys = redisstore.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
	st.probes = append(st.probes, redisstore.NewProbe(rdb))
	log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis for idempotency keys")
	return st, nil
}

func (st *stores) close(log zerolog.Logger) {
	for _, closeFn := range st.closers {
		if err := closeFn(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close store")
		}
	}
}

func seedUser(ctx context.Context, auth *service.AuthService, seed config.SeedConfig) error {
	hash := seed.PasswordHash
	if hash == "" {
		var err error
		if hash, err = service.HashPassword(seed.Password, 0); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	return auth.SeedUser(ctx, seed.Username, hash)
}
