package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/service"
	"synergym-api/internal/transport/http/ez"
)

type LikeService interface {
	Add(ctx context.Context, userID, exerciseID uint) (*service.LikeView, error)
	Delete(ctx context.Context, userID, exerciseID uint) error
	IsLiked(ctx context.Context, userID, exerciseID uint) (bool, error)
	GetByUser(ctx context.Context, userID uint) ([]service.LikeView, error)
	GetByExercise(ctx context.Context, exerciseID uint) ([]service.LikeView, error)
}

type LikeHandler struct{ svc LikeService }

func NewLikeHandler(svc LikeService) *LikeHandler { return &LikeHandler{svc: svc} }

type addLikeIn struct {
	UserID     uint `json:"userId" binding:"required"`
	ExerciseID uint `json:"exerciseId" binding:"required"`
}

type likePairURI struct {
	UserID     uint `uri:"userId"`
	ExerciseID uint `uri:"exerciseId"`
}

type exerciseURI struct {
	ExerciseID uint `uri:"exerciseId"`
}

type likedOut struct {
	UserID     uint `json:"userId"`
	ExerciseID uint `json:"exerciseId"`
	Liked      bool `json:"liked"`
}

func (h *LikeHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, ez.Action[addLikeIn, *service.LikeView]{
		Method: http.MethodPost,
		Path:   "/likes",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *addLikeIn) (*service.LikeView, error) {
			return h.svc.Add(c.Request.Context(), in.UserID, in.ExerciseID)
		},
	})

	ez.RegisterAction(e, ez.Action[likePairURI, likedOut]{
		Method: http.MethodDelete,
		Path:   "/users/:userId/likes/:exerciseId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *likePairURI) (likedOut, error) {
			if err := h.svc.Delete(c.Request.Context(), in.UserID, in.ExerciseID); err != nil {
				return likedOut{}, err
			}
			return likedOut{UserID: in.UserID, ExerciseID: in.ExerciseID, Liked: false}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[likePairURI, likedOut]{
		Method: http.MethodGet,
		Path:   "/users/:userId/likes/:exerciseId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *likePairURI) (likedOut, error) {
			ok, err := h.svc.IsLiked(c.Request.Context(), in.UserID, in.ExerciseID)
			if err != nil {
				return likedOut{}, err
			}
			return likedOut{UserID: in.UserID, ExerciseID: in.ExerciseID, Liked: ok}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[userURI, []service.LikeView]{
		Method: http.MethodGet,
		Path:   "/users/:userId/likes",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *userURI) ([]service.LikeView, error) {
			return h.svc.GetByUser(c.Request.Context(), in.UserID)
		},
	})

	ez.RegisterAction(e, ez.Action[exerciseURI, []service.LikeView]{
		Method: http.MethodGet,
		Path:   "/exercises/:exerciseId/likes",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *exerciseURI) ([]service.LikeView, error) {
			return h.svc.GetByExercise(c.Request.Context(), in.ExerciseID)
		},
	})
}
