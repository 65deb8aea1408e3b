package repo

import (
	"context"

	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

type LikeRepo struct{ db *gorm.DB }

func NewLikeRepo(db *gorm.DB) *LikeRepo { return &LikeRepo{db: db} }

func (r *LikeRepo) Create(ctx context.Context, l *domain.ExerciseLike) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		// 并发兜底：唯一索引冲突按重复点赞处理
		if isDupKey(err) {
			return domain.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (r *LikeRepo) Exists(ctx context.Context, userID, exerciseID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ExerciseLike{}).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Count(&n).Error
	return n > 0, err
}

func (r *LikeRepo) Delete(ctx context.Context, userID, exerciseID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Delete(&domain.ExerciseLike{})
	return res.RowsAffected, res.Error
}

func (r *LikeRepo) FindByUser(ctx context.Context, userID uint) ([]domain.ExerciseLike, error) {
	var ls []domain.ExerciseLike
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&ls).Error
	return ls, err
}

func (r *LikeRepo) FindByExercise(ctx context.Context, exerciseID uint) ([]domain.ExerciseLike, error) {
	var ls []domain.ExerciseLike
	err := r.db.WithContext(ctx).Where("exercise_id = ?", exerciseID).Order("id ASC").Find(&ls).Error
	return ls, err
}
