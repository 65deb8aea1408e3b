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

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"synergym-api/internal/app"
	"synergym-api/internal/coach"
	"synergym-api/internal/core/config"
	"synergym-api/internal/core/server"
	"synergym-api/internal/repo"
	"synergym-api/internal/service"
	"synergym-api/internal/transport/http/handler"
	"synergym-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg.Log)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := app.MustOpenDB(cfg, log)
	rc := app.NewCache(cfg, log)
	defer func() { _ = rc.Close() }()

	// 依赖
	store := repo.NewStore(db)
	routineSvc := service.NewRoutineService(store, log)
	likeSvc := service.NewLikeService(store, log)
	userSvc := service.NewUserService(store, log)
	exerciseSvc := service.NewExerciseService(store, rc, app.CacheTTL(cfg), log)
	coachClient := coach.NewHTTPClient(cfg.Coach.BaseURL, time.Duration(cfg.Coach.TimeoutSec)*time.Second, log)

	// 运动目录为空时导入初始数据
	if cfg.Seed.OnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if _, err := app.NewImporter(db, exerciseSvc, log).RunFile(ctx, cfg.Seed.Path); err != nil {
			log.Error("exercise seed failed", zap.Error(err), zap.String("path", cfg.Seed.Path))
		}
		cancel()
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	reg := router.NewRegistry(
		handler.NewExerciseHandler(exerciseSvc),
		handler.NewUserHandler(userSvc),
		handler.NewRoutineHandler(routineSvc),
		handler.NewLikeHandler(likeSvc),
		handler.NewCoachHandler(coachClient),
	)
	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, router.Limits{
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxConcurrent:  h.MaxConcurrent,
		RatePerSec:     h.RatePerSec,
		RateBurst:      h.RateBurst,
		MaxBodyBytes:   h.MaxBodyBytes,
	}, func(c *gin.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			return fmt.Errorf("db: %w", err)
		}
		if err := rc.Ping(c.Request.Context()); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}, reg)

	// HTTP Server
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("synergym api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
		zap.String("ai_coach", cfg.Coach.BaseURL),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("synergym api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("synergym api stopped gracefully")
}
