package handler

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/service"
	"synergym-api/internal/transport/http/ez"
)

type RoutineService interface {
	CreateRoutine(ctx context.Context, spec service.RoutineSpec, userID uint) (*service.RoutineView, error)
	CreateRoutineWithExercise(ctx context.Context, spec service.RoutineSpec, userID, exerciseID uint, order int) (*service.RoutineView, error)
	GetRoutineDetails(ctx context.Context, routineID uint) (*service.RoutineView, error)
	GetRoutinesByUser(ctx context.Context, userID uint) ([]service.RoutineView, error)
	GetAllRoutines(ctx context.Context) ([]service.RoutineView, error)
	GetRoutinesByName(ctx context.Context, name string) ([]service.RoutineView, error)
	UpdateRoutine(ctx context.Context, routineID uint, spec service.RoutineSpec) (*service.RoutineView, error)
	DeleteRoutine(ctx context.Context, routineID uint) error
	AddExerciseToRoutine(ctx context.Context, routineID, exerciseID uint, order int) (*service.RoutineView, error)
	RemoveExerciseFromRoutine(ctx context.Context, routineID, memberID uint) (*service.RoutineView, error)
}

type RoutineHandler struct{ svc RoutineService }

func NewRoutineHandler(svc RoutineService) *RoutineHandler { return &RoutineHandler{svc: svc} }

type routineBody struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	ExerciseIDs []uint `json:"exerciseIds"`
}

func (b routineBody) spec() service.RoutineSpec {
	return service.RoutineSpec{Name: b.Name, Description: b.Description, ExerciseIDs: b.ExerciseIDs}
}

type userURI struct {
	UserID uint `uri:"userId" json:"-"`
}

type routineURI struct {
	RoutineID uint `uri:"routineId" json:"-"`
}

type createRoutineIn struct {
	userURI
	routineBody
}

type createWithExerciseIn struct {
	userURI
	routineBody
	ExerciseID uint `json:"exerciseId" binding:"required"`
	Order      *int `json:"order"` // 省略时追加到末尾
}

type updateRoutineIn struct {
	routineURI
	routineBody
}

type addExerciseIn struct {
	routineURI
	ExerciseID uint `json:"exerciseId" binding:"required"`
	Order      *int `json:"order"`
}

type removeExerciseIn struct {
	RoutineID uint `uri:"routineId"`
	MemberID  uint `uri:"memberId"`
}

type listRoutinesIn struct {
	Name string `form:"name"`
}

type deletedOut struct {
	Deleted bool `json:"deleted"`
}

func orderOrTail(p *int) int {
	if p == nil {
		return math.MaxInt32
	}
	return *p
}

func (h *RoutineHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, ez.Action[createRoutineIn, *service.RoutineView]{
		Method: http.MethodPost,
		Path:   "/users/:userId/routines",
		Binder: ez.BindURIJSON,
		Handler: func(c *gin.Context, in *createRoutineIn) (*service.RoutineView, error) {
			return h.svc.CreateRoutine(c.Request.Context(), in.spec(), in.UserID)
		},
	})

	ez.RegisterAction(e, ez.Action[createWithExerciseIn, *service.RoutineView]{
		Method: http.MethodPost,
		Path:   "/users/:userId/routines/with-exercise",
		Binder: ez.BindURIJSON,
		Handler: func(c *gin.Context, in *createWithExerciseIn) (*service.RoutineView, error) {
			return h.svc.CreateRoutineWithExercise(c.Request.Context(), in.spec(), in.UserID, in.ExerciseID, orderOrTail(in.Order))
		},
	})

	ez.RegisterAction(e, ez.Action[userURI, []service.RoutineView]{
		Method: http.MethodGet,
		Path:   "/users/:userId/routines",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *userURI) ([]service.RoutineView, error) {
			return h.svc.GetRoutinesByUser(c.Request.Context(), in.UserID)
		},
	})

	// ?name= 精确匹配；不带则返回全部
	ez.RegisterAction(e, ez.Action[listRoutinesIn, []service.RoutineView]{
		Method: http.MethodGet,
		Path:   "/routines",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listRoutinesIn) ([]service.RoutineView, error) {
			if in.Name != "" {
				return h.svc.GetRoutinesByName(c.Request.Context(), in.Name)
			}
			return h.svc.GetAllRoutines(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[routineURI, *service.RoutineView]{
		Method: http.MethodGet,
		Path:   "/routines/:routineId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *routineURI) (*service.RoutineView, error) {
			return h.svc.GetRoutineDetails(c.Request.Context(), in.RoutineID)
		},
	})

	ez.RegisterAction(e, ez.Action[updateRoutineIn, *service.RoutineView]{
		Method: http.MethodPut,
		Path:   "/routines/:routineId",
		Binder: ez.BindURIJSON,
		Handler: func(c *gin.Context, in *updateRoutineIn) (*service.RoutineView, error) {
			return h.svc.UpdateRoutine(c.Request.Context(), in.RoutineID, in.spec())
		},
	})

	ez.RegisterAction(e, ez.Action[routineURI, deletedOut]{
		Method: http.MethodDelete,
		Path:   "/routines/:routineId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *routineURI) (deletedOut, error) {
			if err := h.svc.DeleteRoutine(c.Request.Context(), in.RoutineID); err != nil {
				return deletedOut{}, err
			}
			return deletedOut{Deleted: true}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[addExerciseIn, *service.RoutineView]{
		Method: http.MethodPost,
		Path:   "/routines/:routineId/exercises",
		Binder: ez.BindURIJSON,
		Handler: func(c *gin.Context, in *addExerciseIn) (*service.RoutineView, error) {
			return h.svc.AddExerciseToRoutine(c.Request.Context(), in.RoutineID, in.ExerciseID, orderOrTail(in.Order))
		},
	})

	ez.RegisterAction(e, ez.Action[removeExerciseIn, *service.RoutineView]{
		Method: http.MethodDelete,
		Path:   "/routines/:routineId/exercises/:memberId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *removeExerciseIn) (*service.RoutineView, error) {
			return h.svc.RemoveExerciseFromRoutine(c.Request.Context(), in.RoutineID, in.MemberID)
		},
	})
}
