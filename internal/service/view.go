package service

import (
	"time"

	"synergym-api/internal/domain"
)

// RoutineSpec 创建/更新 routine 的入参；ExerciseIDs 的下标即成员顺序
type RoutineSpec struct {
	Name        string
	Description string
	ExerciseIDs []uint
}

type RoutineExerciseView struct {
	ID           uint    `json:"id"`
	RoutineID    uint    `json:"routineId"`
	ExerciseID   uint    `json:"exerciseId"`
	Order        int     `json:"order"`
	ExerciseName string  `json:"exerciseName,omitempty"`
	Category     string  `json:"category,omitempty"`
	BodyPart     *string `json:"bodyPart,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	URL          *string `json:"url,omitempty"`
}

type RoutineView struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	UserID      uint                  `json:"userId"`
	Exercises   []RoutineExerciseView `json:"exercises"`
}

type LikeView struct {
	UserID     uint      `json:"userId"`
	ExerciseID uint      `json:"exerciseId"`
	LikedAt    time.Time `json:"likedAt"`
}

type UserView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRoutineView(r *domain.Routine, members []domain.RoutineExercise) *RoutineView {
	v := &RoutineView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
		Exercises:   make([]RoutineExerciseView, 0, len(members)),
	}
	for _, m := range members {
		ev := RoutineExerciseView{
			ID:         m.ID,
			RoutineID:  m.RoutineID,
			ExerciseID: m.ExerciseID,
			Order:      m.Order,
		}
		if ex := m.Exercise; ex != nil {
			ev.ExerciseName = ex.Name
			ev.Category = ex.Category
			ev.BodyPart = ex.BodyPart
			ev.ThumbnailURL = ex.ThumbnailURL
			ev.URL = ex.URL
		}
		v.Exercises = append(v.Exercises, ev)
	}
	return v
}

func toRoutineViews(rs []domain.Routine) []RoutineView {
	out := make([]RoutineView, 0, len(rs))
	for i := range rs {
		out = append(out, *toRoutineView(&rs[i], rs[i].Exercises))
	}
	return out
}

func toLikeViews(ls []domain.ExerciseLike) []LikeView {
	out := make([]LikeView, 0, len(ls))
	for _, l := range ls {
		out = append(out, LikeView{UserID: l.UserID, ExerciseID: l.ExerciseID, LikedAt: l.CreatedAt})
	}
	return out
}

func toUserView(u *domain.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, Goal: u.Goal, CreatedAt: u.CreatedAt}
}
