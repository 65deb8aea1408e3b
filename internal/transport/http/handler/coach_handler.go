package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/coach"
	"synergym-api/internal/transport/http/ez"
)

type CoachHandler struct{ client coach.Client }

func NewCoachHandler(client coach.Client) *CoachHandler { return &CoachHandler{client: client} }

func (h *CoachHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	// 请求体原样透传给外部服务
	ez.RegisterAction(e, ez.Action[coach.Request, *coach.Reply]{
		Method: http.MethodPost,
		Path:   "/ai-coach",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *coach.Request) (*coach.Reply, error) {
			if len(*in) == 0 {
				return nil, ez.BadRequest("empty request")
			}
			return h.client.Ask(c.Request.Context(), *in)
		},
	})
}
