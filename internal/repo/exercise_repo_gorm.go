package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

type ExerciseRepo struct{ db *gorm.DB }

func NewExerciseRepo(db *gorm.DB) *ExerciseRepo { return &ExerciseRepo{db: db} }

func (r *ExerciseRepo) FindByID(ctx context.Context, id uint) (*domain.Exercise, error) {
	var e domain.Exercise
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepo) List(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Exercise{})
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.BodyPart != "" {
		tx = tx.Where("body_part = ?", f.BodyPart)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		tx = tx.Where("name LIKE ?", "%"+s+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []domain.Exercise
	if err := tx.Order("id ASC").Offset(f.Offset).Limit(f.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ExerciseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Exercise{}).Count(&n).Error
	return n, err
}

// CreateBatch 批量写入，批大小沿用 Session 的 CreateBatchSize
func (r *ExerciseRepo) CreateBatch(ctx context.Context, items []domain.Exercise) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
