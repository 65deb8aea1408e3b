package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/service"
	"synergym-api/internal/transport/http/ez"
)

type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.UserView, error)
	Get(ctx context.Context, id uint) (*service.UserView, error)
	List(ctx context.Context, offset, limit int, q string) ([]service.UserView, int64, error)
}

type UserHandler struct{ svc UserService }

func NewUserHandler(svc UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 20 }

type registerIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"omitempty,max=64"`
	Goal     string `json:"goal" binding:"omitempty,max=255"`
}

type listUsersIn struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

type userListOut struct {
	Total int64              `json:"total"`
	Items []service.UserView `json:"items"`
}

func (h *UserHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, ez.Action[registerIn, *service.UserView]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (*service.UserView, error) {
			return h.svc.Register(c.Request.Context(), service.RegisterInput{
				Email:    in.Email,
				Name:     in.Name,
				Password: in.Password,
				Goal:     in.Goal,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[listUsersIn, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listUsersIn) (userListOut, error) {
			items, total, err := h.svc.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
			if err != nil {
				return userListOut{}, err
			}
			if items == nil {
				items = []service.UserView{}
			}
			return userListOut{Total: total, Items: items}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[userURI, *service.UserView]{
		Method: http.MethodGet,
		Path:   "/users/:userId",
		Binder: ez.BindURI,
		Handler: func(c *gin.Context, in *userURI) (*service.UserView, error) {
			return h.svc.Get(c.Request.Context(), in.UserID)
		},
	})
}
