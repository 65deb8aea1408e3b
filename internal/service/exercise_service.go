package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"synergym-api/internal/core/cache"
	"synergym-api/internal/domain"
)

const (
	exerciseKeyPrefix = "exercise:"
	exerciseCacheTTL  = 30 * time.Minute
)

// ExerciseService 运动目录查询；单条读取走 redis 读穿缓存（cache 可为 nil）
type ExerciseService struct {
	store domain.Store
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewExerciseService(store domain.Store, c *cache.Cache, ttl time.Duration, l *zap.Logger) *ExerciseService {
	if l == nil {
		l = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = exerciseCacheTTL
	}
	return &ExerciseService{store: store, cache: c, ttl: ttl, log: l.Named("exercise")}
}

func (s *ExerciseService) Get(ctx context.Context, id uint) (*domain.Exercise, error) {
	key := exerciseKeyPrefix + strconv.FormatUint(uint64(id), 10)
	return cache.GetOrLoadJSON(s.cache, ctx, key, s.ttl, func(ctx context.Context) (*domain.Exercise, error) {
		return findExercise(ctx, s.store, id)
	})
}

func (s *ExerciseService) List(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	items, total, err := s.store.Exercises().List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list exercises: %w", err)
	}
	return items, total, nil
}

// InvalidateCatalog 目录重新导入后清掉单条缓存
func (s *ExerciseService) InvalidateCatalog(ctx context.Context) error {
	n, err := s.cache.DeletePrefix(ctx, exerciseKeyPrefix)
	if err != nil {
		return err
	}
	s.log.Info("exercise cache invalidated", zap.Int("keys", n))
	return nil
}
