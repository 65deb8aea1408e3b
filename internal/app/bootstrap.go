// Package app 进程级装配：日志、数据库、缓存，api 与 importer 两个入口共用。
package app

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"synergym-api/internal/core/cache"
	"synergym-api/internal/core/config"
	"synergym-api/internal/core/database"
	"synergym-api/internal/core/logger"
	"synergym-api/internal/domain"
	"synergym-api/internal/importer"
	"synergym-api/internal/repo"
	"synergym-api/internal/service"
)

// NewLogger log.file 非空时同时写入切割文件；标准库 log 也转到 zap
func NewLogger(c config.Log) (*zap.Logger, func()) {
	var (
		l       *zap.Logger
		cleanup func()
	)
	if c.File != "" {
		l, cleanup = logger.NewWithRotate(c.Level, c.JSON, c.File, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays, c.Compress)
	} else {
		l, cleanup = logger.New(c.Level, c.JSON)
	}
	undo := logger.RedirectStdLog(l, zapcore.InfoLevel)
	return l, func() {
		undo()
		cleanup()
	}
}

// MustOpenDB 失败直接 Fatal
func MustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(domain.Models()...); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	return db
}

// NewCache redis.addr 为空时返回 nil，调用方按无缓存处理
func NewCache(cfg *config.Config, l *zap.Logger) *cache.Cache {
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if c == nil {
		l.Info("redis disabled, exercise cache off")
	}
	return c
}

func CacheTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Redis.TTLSec) * time.Second
}

// NewImporter 导入后清理运动目录缓存
func NewImporter(db *gorm.DB, exercises *service.ExerciseService, l *zap.Logger) *importer.Importer {
	return importer.New(db, repo.NewExerciseRepo(db), exercises, l)
}
