package service

import (
	"context"
	"fmt"

	"synergym-api/internal/domain"
)

// 仓储约定：查不到返回 (nil, nil)；这里统一转换为 NotFound

func findUser(ctx context.Context, s domain.Store, id uint) (*domain.User, error) {
	u, err := s.Users().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrUserNotFound, id)
	}
	return u, nil
}

func findExercise(ctx context.Context, s domain.Store, id uint) (*domain.Exercise, error) {
	e, err := s.Exercises().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find exercise %d: %w", id, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrExerciseNotFound, id)
	}
	return e, nil
}

func findRoutine(ctx context.Context, s domain.Store, id uint) (*domain.Routine, error) {
	r, err := s.Routines().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find routine %d: %w", id, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrRoutineNotFound, id)
	}
	return r, nil
}
