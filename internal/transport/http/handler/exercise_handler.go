package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/domain"
	"synergym-api/internal/transport/http/ez"
)

type ExerciseService interface {
	Get(ctx context.Context, id uint) (*domain.Exercise, error)
	List(ctx context.Context, f domain.ExerciseFilter) ([]domain.Exercise, int64, error)
}

type ExerciseHandler struct{ svc ExerciseService }

func NewExerciseHandler(svc ExerciseService) *ExerciseHandler { return &ExerciseHandler{svc: svc} }

// Priority 目录接口先挂
func (h *ExerciseHandler) Priority() int { return 10 }

type listExercisesIn struct {
	Offset   int    `form:"offset,default=0"`
	Limit    int    `form:"limit,default=20"`
	Category string `form:"category"`
	BodyPart string `form:"bodyPart"`
	Q        string `form:"q"` // 按名称模糊搜
}

type exerciseListOut struct {
	Total int64             `json:"total"`
	Items []domain.Exercise `json:"items"`
}

func (h *ExerciseHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, ez.Action[listExercisesIn, exerciseListOut]{
		Method: http.MethodGet,
		Path:   "/exercises",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listExercisesIn) (exerciseListOut, error) {
			items, total, err := h.svc.List(c.Request.Context(), domain.ExerciseFilter{
				Category: in.Category,
				BodyPart: in.BodyPart,
				Query:    in.Q,
				Offset:   in.Offset,
				Limit:    in.Limit,
			})
			if err != nil {
				return exerciseListOut{}, err
			}
			if items == nil {
				items = []domain.Exercise{}
			}
			return exerciseListOut{Total: total, Items: items}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[exerciseURI, *domain.Exercise]{
		Method: http.MethodGet,
		Path:   "/exercises/:exerciseId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *exerciseURI) (*domain.Exercise, error) {
			return h.svc.Get(c.Request.Context(), in.ExerciseID)
		},
	})
}
