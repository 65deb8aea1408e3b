package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"synergym-api/internal/app"
	"synergym-api/internal/core/config"
	"synergym-api/internal/repo"
	"synergym-api/internal/service"
)

// 一次性导入运动目录：表非空时跳过
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	path := flag.String("file", cfg.Seed.Path, "exercise seed json file")
	flag.Parse()

	log, cleanup := app.NewLogger(cfg.Log)
	defer cleanup()

	db := app.MustOpenDB(cfg, log)
	rc := app.NewCache(cfg, log)
	defer func() { _ = rc.Close() }()

	exerciseSvc := service.NewExerciseService(repo.NewStore(db), rc, app.CacheTTL(cfg), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := app.NewImporter(db, exerciseSvc, log).RunFile(ctx, *path)
	if err != nil {
		log.Fatal("exercise import FAILED", zap.Error(err), zap.String("file", *path))
	}
	log.Info("exercise import finished",
		zap.Bool("skipped", res.Skipped),
		zap.Int("loaded", res.Loaded),
		zap.Int("imported", res.Imported),
		zap.Int("failed", res.Failed),
	)
}
