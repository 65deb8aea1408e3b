package domain

import (
	"context"
	"time"
)

// Exercise 运动目录条目，只读为主，由导入任务写入
type Exercise struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;index" json:"name"`
	Category     string    `gorm:"size:150" json:"category"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Difficulty   *string   `gorm:"size:50" json:"difficulty,omitempty"`
	Posture      *string   `gorm:"size:150" json:"posture,omitempty"`
	BodyPart     *string   `gorm:"size:150" json:"bodyPart,omitempty"`
	ThumbnailURL *string   `gorm:"size:500" json:"thumbnailUrl,omitempty"`
	URL          *string   `gorm:"column:url;size:500" json:"url,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Exercise) TableName() string { return "exercises" }

type ExerciseFilter struct {
	Category string
	BodyPart string
	Query    string // name LIKE
	Offset   int
	Limit    int
}

type ExerciseRepository interface {
	FindByID(ctx context.Context, id uint) (*Exercise, error)
	List(ctx context.Context, f ExerciseFilter) ([]Exercise, int64, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, items []Exercise) error
}
