package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"synergym-api/internal/domain"
)

// LikeService 运动点赞。服务层先做存在性检查，唯一索引兜底并发重复写。
type LikeService struct {
	store domain.Store
	log   *zap.Logger
}

func NewLikeService(store domain.Store, l *zap.Logger) *LikeService {
	if l == nil {
		l = zap.NewNop()
	}
	return &LikeService{store: store, log: l.Named("like")}
}

func (s *LikeService) Add(ctx context.Context, userID, exerciseID uint) (*LikeView, error) {
	if err := s.resolve(ctx, userID, exerciseID); err != nil {
		return nil, err
	}
	liked, err := s.store.Likes().Exists(ctx, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}
	if liked {
		return nil, domain.ErrAlreadyLiked
	}
	l := &domain.ExerciseLike{UserID: userID, ExerciseID: exerciseID}
	if err := s.store.Likes().Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("exercise liked", zap.Uint("user_id", userID), zap.Uint("exercise_id", exerciseID))
	return &LikeView{UserID: l.UserID, ExerciseID: l.ExerciseID, LikedAt: l.CreatedAt}, nil
}

// Delete 没有点赞记录时视为成功
func (s *LikeService) Delete(ctx context.Context, userID, exerciseID uint) error {
	if err := s.resolve(ctx, userID, exerciseID); err != nil {
		return err
	}
	n, err := s.store.Likes().Delete(ctx, userID, exerciseID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if n > 0 {
		s.log.Info("exercise unliked", zap.Uint("user_id", userID), zap.Uint("exercise_id", exerciseID))
	}
	return nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID, exerciseID uint) (bool, error) {
	if err := s.resolve(ctx, userID, exerciseID); err != nil {
		return false, err
	}
	liked, err := s.store.Likes().Exists(ctx, userID, exerciseID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

func (s *LikeService) GetByUser(ctx context.Context, userID uint) ([]LikeView, error) {
	ls, err := s.store.Likes().FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list likes of user %d: %w", userID, err)
	}
	return toLikeViews(ls), nil
}

func (s *LikeService) GetByExercise(ctx context.Context, exerciseID uint) ([]LikeView, error) {
	ls, err := s.store.Likes().FindByExercise(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("list likes of exercise %d: %w", exerciseID, err)
	}
	return toLikeViews(ls), nil
}

func (s *LikeService) resolve(ctx context.Context, userID, exerciseID uint) error {
	if _, err := findUser(ctx, s.store, userID); err != nil {
		return err
	}
	_, err := findExercise(ctx, s.store, exerciseID)
	return err
}
