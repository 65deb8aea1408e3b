package domain

import (
	"context"
	"time"
)

// Routine 用户拥有的有序运动列表。删除为软删（is_deleted），成员行先被物理删除。
type Routine struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:100;not null;index" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	UserID      uint              `gorm:"not null;index" json:"userId"`
	Deleted     bool              `gorm:"column:is_deleted;not null;index" json:"-"`
	Exercises   []RoutineExercise `gorm:"foreignKey:RoutineID" json:"exercises"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (Routine) TableName() string { return "routines" }

// RoutineExercise 成员行；同一 routine 内 Order 从 0 连续
type RoutineExercise struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoutineID  uint      `gorm:"not null;index:idx_routine_exercise_order,priority:1" json:"routineId"`
	ExerciseID uint      `gorm:"not null;index" json:"exerciseId"`
	Order      int       `gorm:"column:exercise_order;not null;index:idx_routine_exercise_order,priority:2" json:"order"`
	Exercise   *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

func (RoutineExercise) TableName() string { return "routine_exercises" }

type RoutineRepository interface {
	Create(ctx context.Context, r *Routine) error
	// FindByID 只返回未删除的 routine，不加载成员
	FindByID(ctx context.Context, id uint) (*Routine, error)
	FindByUserWithExercises(ctx context.Context, userID uint) ([]Routine, error)
	FindAllWithExercises(ctx context.Context) ([]Routine, error)
	FindByNameWithExercises(ctx context.Context, name string) ([]Routine, error)
	UpdateDetails(ctx context.Context, r *Routine) error
	SoftDelete(ctx context.Context, id uint) error
}

type RoutineExerciseRepository interface {
	Create(ctx context.Context, m *RoutineExercise) error
	// FindByRoutine 按 Order 升序，预加载 Exercise
	FindByRoutine(ctx context.Context, routineID uint) ([]RoutineExercise, error)
	DeleteByRoutine(ctx context.Context, routineID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	UpdateOrder(ctx context.Context, id uint, order int) error
}
