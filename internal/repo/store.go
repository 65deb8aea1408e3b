package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

// Store 基于 gorm 的 domain.Store 实现
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository         { return NewUserRepo(s.db) }
func (s *Store) Exercises() domain.ExerciseRepository { return NewExerciseRepo(s.db) }
func (s *Store) Routines() domain.RoutineRepository   { return NewRoutineRepo(s.db) }
func (s *Store) Likes() domain.ExerciseLikeRepository { return NewLikeRepo(s.db) }

func (s *Store) RoutineExercises() domain.RoutineExerciseRepository {
	return NewRoutineExerciseRepo(s.db)
}

// Transaction Session 关闭了默认事务，写聚合时在这里显式开启
func (s *Store) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 未开启 TranslateError 时按驱动文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
