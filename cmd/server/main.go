package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/redis/go-redis/v9"

	"github.com/mercatto/catalog-api/internal/api"
	"github.com/mercatto/catalog-api/internal/infrastructure/db/gorm"
	redisdb "github.com/mercatto/catalog-api/internal/infrastructure/db/redis"
	"github.com/mercatto/catalog-api/internal/infrastructure/queue"
	"github.com/mercatto/catalog-api/internal/pkg/config"
	"github.com/mercatto/catalog-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	jwtSecret := requireSecret(cfg, "JWT_SECRET", cfg.JWTSecret)
	sessionSecret := requireSecret(cfg, "SESSION_SECRET", cfg.SessionSecret)

	db, err := gorm.Connect(gorm.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	if err := gorm.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(context.Background(), redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unreachable")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := queue.NewDispatcher(0, gorm.NewAuditRepository(db), log)
	audit.Start(ctx)

	e := api.NewRouter(api.Options{
		DB:            db,
		Redis:         rdb,
		Audit:         audit,
		JWTSecret:     jwtSecret,
		SessionSecret: sessionSecret,
		TokenTTL:      cfg.TokenTTL,
		Production:    cfg.Production(),
		Logger:        log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// requireSecret enforces the signing-secret policy: production refuses to
// start without one, development gets an ephemeral random secret (tokens and
// sessions do not survive a restart) with a loud warning. There is no
// well-known default.
func requireSecret(cfg *config.Config, name, value string) string {
	if value != "" {
		return value
	}
	log := logger.Get()
	if cfg.Production() {
		log.Fatal().Str("var", name).Msg("signing secret is required in production")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("failed to generate ephemeral secret")
	}
	log.Warn().Str("var", name).Msg("using ephemeral random secret; set the variable to persist sessions")
	return hex.EncodeToString(buf)
}
