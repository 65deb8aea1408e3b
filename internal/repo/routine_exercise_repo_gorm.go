package repo

import (
	"context"

	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

type RoutineExerciseRepo struct{ db *gorm.DB }

func NewRoutineExerciseRepo(db *gorm.DB) *RoutineExerciseRepo { return &RoutineExerciseRepo{db: db} }

func (r *RoutineExerciseRepo) Create(ctx context.Context, m *domain.RoutineExercise) error {
	return r.db.WithContext(ctx).Omit("Exercise").Create(m).Error
}

func (r *RoutineExerciseRepo) FindByRoutine(ctx context.Context, routineID uint) ([]domain.RoutineExercise, error) {
	var ms []domain.RoutineExercise
	err := r.db.WithContext(ctx).
		Preload("Exercise").
		Where("routine_id = ?", routineID).
		Order("exercise_order ASC").
		Find(&ms).Error
	return ms, err
}

func (r *RoutineExerciseRepo) DeleteByRoutine(ctx context.Context, routineID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("routine_id = ?", routineID).Delete(&domain.RoutineExercise{})
	return res.RowsAffected, res.Error
}

func (r *RoutineExerciseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.RoutineExercise{}).Error
}

func (r *RoutineExerciseRepo) UpdateOrder(ctx context.Context, id uint, order int) error {
	return r.db.WithContext(ctx).Model(&domain.RoutineExercise{}).
		Where("id = ?", id).
		Update("exercise_order", order).Error
}
