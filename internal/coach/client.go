// Package coach 外部 AI 教练服务网关：请求原样转发到 /ai-coach，响应收敛为固定结构。
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"synergym-api/internal/domain"
)

const (
	ReplyType     = "ai_coach"
	path          = "/ai-coach"
	maxReplyBytes = 1 << 20
)

var errMalformedReply = errors.New("reply is not a JSON object")

// Request 自由键值，只在边界处存在
type Request map[string]any

type Reply struct {
	Type         string         `json:"type"`
	Response     string         `json:"response"`
	ExerciseInfo map[string]any `json:"exerciseInfo,omitempty"`
}

type Client interface {
	Ask(ctx context.Context, req Request) (*Reply, error)
}

// UpstreamError 非 2xx 或传输失败；保留状态码与响应体便于排查
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("ai coach: status %d: %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("ai coach: status %d: %s", e.Status, e.Body)
	case e.Err != nil:
		return "ai coach: " + e.Err.Error()
	}
	return "ai coach: upstream failure"
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{domain.ErrUpstream}
	}
	return []error{domain.ErrUpstream, e.Err}
}

type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

// NewHTTPClient 不做重试；timeout<=0 时使用 30s
func NewHTTPClient(baseURL string, timeout time.Duration, l *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     l.Named("coach"),
	}
}

func (c *HTTPClient) Ask(ctx context.Context, req Request) (*Reply, error) {
	start := time.Now()
	reply, err := c.do(ctx, req)
	observe(err, time.Since(start))
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			c.log.Error("ai coach call failed",
				zap.Int("status", ue.Status),
				zap.String("body", ue.Body),
				zap.Any("request", req),
				zap.Error(ue.Err),
			)
		}
		return nil, err
	}
	c.log.Debug("ai coach replied", zap.Bool("exercise_info", reply.ExerciseInfo != nil))
	return reply, nil
}

func (c *HTTPClient) do(ctx context.Context, req Request) (*Reply, error) {
	if req == nil {
		req = Request{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrInvalid, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}
	return parseReply(resp.StatusCode, raw)
}

func parseReply(status int, raw []byte) (*Reply, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &UpstreamError{Status: status, Body: string(raw), Err: errMalformedReply}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, &UpstreamError{Status: status, Body: string(raw), Err: errMalformedReply}
	}
	out := &Reply{
		Type:     ReplyType,
		Response: doc.Get("response").String(),
	}
	if info := doc.Get("exercise_info"); info.IsObject() {
		if m, ok := info.Value().(map[string]any); ok {
			out.ExerciseInfo = m
		}
	}
	return out, nil
}
