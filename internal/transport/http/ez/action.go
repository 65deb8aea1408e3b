// Package ez 一行注册一个类型化接口：绑定入参、调用处理函数、统一错误映射与响应包装。
package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"synergym-api/internal/domain"
	resp "synergym-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON     Binder = "json"      // 从 JSON 绑定
	BindQuery    Binder = "query"     // 从 URL ?a=b 绑定
	BindURI      Binder = "uri"       // 从路径参数绑定
	BindURIJSON  Binder = "uri+json"  // 路径参数 + JSON
	BindURIQuery Binder = "uri+query" // 路径参数 + query
	BindNone     Binder = "none"      // 不绑定，自己从 c.Param 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error   { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/routines/:routineId"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			code, msg := mapError(err)
			if code == resp.CodeServerError {
				// 交给访问日志输出完整错误，响应只给通用信息
				_ = c.Error(err)
			}
			c.JSON(http.StatusOK, resp.Error(code, msg))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return c.ShouldBindJSON(in)
	case BindQuery:
		return c.ShouldBindQuery(in)
	case BindURI:
		return c.ShouldBindUri(in)
	// 组合绑定时先绑 body/query 再绑路径；路径字段不要加 required，否则第一步校验会失败
	case BindURIJSON:
		if err := c.ShouldBindJSON(in); err != nil {
			return err
		}
		return c.ShouldBindUri(in)
	case BindURIQuery:
		if err := c.ShouldBindQuery(in); err != nil {
			return err
		}
		return c.ShouldBindUri(in)
	default: // BindNone: 不绑定
		return nil
	}
}

// mapError 领域错误 → 业务码；未知错误一律 500
func mapError(err error) (int, string) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		return ae.Code, ae.Error()
	case errors.Is(err, domain.ErrNotFound):
		return resp.CodeNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return resp.CodeConflict, err.Error()
	case errors.Is(err, domain.ErrInvalid):
		return resp.CodeBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return resp.CodeGatewayTimeout, "timeout"
	case errors.Is(err, domain.ErrUpstream):
		return resp.CodeBadGateway, err.Error()
	default:
		return resp.CodeServerError, resp.CodeMsgMap[resp.CodeServerError]
	}
}
