package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/skillswap/internal/auth"
	"github.com/oggyb/skillswap/internal/cache"
	"github.com/oggyb/skillswap/internal/catalog"
	"github.com/oggyb/skillswap/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Catalog    *catalog.Catalog
	Tokens     *auth.TokenManager
}

// New creates a new AppContext. The catalog and token manager are derived from
// cfg.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) (*AppContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Catalog:    cat,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}, nil
}
