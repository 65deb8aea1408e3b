package domain

import (
	"context"
	"time"
)

// ExerciseLike 用户点赞；(user_id, exercise_id) 唯一
type ExerciseLike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_like_user_exercise,priority:1" json:"userId"`
	ExerciseID uint      `gorm:"not null;uniqueIndex:idx_like_user_exercise,priority:2;index" json:"exerciseId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ExerciseLike) TableName() string { return "exercise_likes" }

type ExerciseLikeRepository interface {
	// Create 遇到唯一约束冲突时返回 ErrConflict
	Create(ctx context.Context, l *ExerciseLike) error
	Exists(ctx context.Context, userID, exerciseID uint) (bool, error)
	Delete(ctx context.Context, userID, exerciseID uint) (int64, error)
	FindByUser(ctx context.Context, userID uint) ([]ExerciseLike, error)
	FindByExercise(ctx context.Context, exerciseID uint) ([]ExerciseLike, error)
}
