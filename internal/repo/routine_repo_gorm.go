package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"synergym-api/internal/domain"
)

type RoutineRepo struct{ db *gorm.DB }

func NewRoutineRepo(db *gorm.DB) *RoutineRepo { return &RoutineRepo{db: db} }

// withMembers 成员与运动各一条 IN 查询，查询数与 routine 个数无关
func withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("exercise_order ASC") }).
		Preload("Exercises.Exercise")
}

func (r *RoutineRepo) Create(ctx context.Context, rt *domain.Routine) error {
	return r.db.WithContext(ctx).Omit("Exercises").Create(rt).Error
}

func (r *RoutineRepo) FindByID(ctx context.Context, id uint) (*domain.Routine, error) {
	var rt domain.Routine
	err := r.db.WithContext(ctx).First(&rt, "id = ? AND is_deleted = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RoutineRepo) FindByUserWithExercises(ctx context.Context, userID uint) ([]domain.Routine, error) {
	var rs []domain.Routine
	err := withMembers(r.db.WithContext(ctx)).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("id ASC").
		Find(&rs).Error
	return rs, err
}

func (r *RoutineRepo) FindAllWithExercises(ctx context.Context) ([]domain.Routine, error) {
	var rs []domain.Routine
	err := withMembers(r.db.WithContext(ctx)).
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&rs).Error
	return rs, err
}

func (r *RoutineRepo) FindByNameWithExercises(ctx context.Context, name string) ([]domain.Routine, error) {
	var rs []domain.Routine
	err := withMembers(r.db.WithContext(ctx)).
		Where("name = ? AND is_deleted = ?", name, false).
		Order("id ASC").
		Find(&rs).Error
	return rs, err
}

func (r *RoutineRepo) UpdateDetails(ctx context.Context, rt *domain.Routine) error {
	return r.db.WithContext(ctx).Model(&domain.Routine{}).
		Where("id = ?", rt.ID).
		Updates(map[string]any{"name": rt.Name, "description": rt.Description}).Error
}

func (r *RoutineRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&domain.Routine{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
