package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nazmulhs/farebridge/internal/cache"
	"github.com/nazmulhs/farebridge/internal/config"
	"github.com/nazmulhs/farebridge/internal/enrich"
	"github.com/nazmulhs/farebridge/internal/fare"
	"github.com/nazmulhs/farebridge/internal/handler"
	"github.com/nazmulhs/farebridge/internal/kvstore"
	"github.com/nazmulhs/farebridge/internal/markup"
	"github.com/nazmulhs/farebridge/internal/ratelimit"
	"github.com/nazmulhs/farebridge/internal/supplier"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env, cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		_ = rdb.Close()
	}()

	ruleStore := buildRuleStore(cfg, rdb, log)
	resolver := markup.NewResolver(ruleStore, log)
	normalizer := fare.NewNormalizer(log)
	enricher := enrich.NewEnricher(resolver, normalizer, log)

	limiter := ratelimit.NewEndpointLimiter(ratelimit.DefaultLimits(), ratelimit.Config{PerSecond: 5, Burst: 10})

	api := supplier.NewClient(supplier.Config{
		BaseURL: cfg.Supplier.BaseURL,
		APIKey:  cfg.Supplier.APIKey,
		Timeout: cfg.Supplier.Timeout,
		Limiter: limiter,
	}, log)

	var offerCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		offerCache = redisCache
		log.Info("offer cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
	} else {
		offerCache = cache.NewNoOpCache()
		log.Info("offer cache disabled")
	}

	sessions := kvstore.NewRedisStore(rdb)
	bookingHandler := handler.NewBookingHandler(api, enricher, offerCache, sessions, cfg.Auth.JWTSecret, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	apiGroup := e.Group("/api/v1")
	apiGroup.POST("/flights/search", bookingHandler.Search)
	apiGroup.POST("/flights/price", bookingHandler.Price)
	apiGroup.POST("/orders", bookingHandler.CreateOrder)
	apiGroup.GET("/orders/:ref", bookingHandler.RetrieveOrder)
	e.GET("/health", handler.HealthHandler)

	log.Info("starting booking server", zap.String("port", cfg.HTTP.Port))

	if err := e.Start(":" + cfg.HTTP.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func buildRuleStore(cfg *config.Config, rdb *redis.Client, log *zap.Logger) markup.RuleStore {
	if !cfg.DB.Enabled() {
		log.Warn("no rules database configured, pricing with zero markup")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DB.DSN())
	if err != nil {
		// Markup fails open: a missing rules database degrades pricing to
		// airline-quoted fares instead of taking the service down.
		log.Error("failed to connect to rules database, pricing with zero markup", zap.Error(err))
		return nil
	}

	return markup.NewCachedStore(markup.NewPGStore(pool), rdb, cfg.Markup.CacheTTL)
}

func setupLogger(env, level string) *zap.Logger {
	var zapCfg zap.Config
	if env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, err := zapCfg.Build()
	if err != nil {
		panic("cannot build logger: " + err.Error())
	}
	return log
}
