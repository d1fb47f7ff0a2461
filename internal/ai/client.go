package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agri-connect/internal/core/cache"
)

// Client 是对生成式文本 API（Gemini REST）的薄封装。
// 没配 api key 或请求失败时，各任务退回固定的离线兜底内容，
// 上层永远拿得到可渲染的东西。不重试、不流式。
type Client struct {
	apiKey  string
	baseURL string
	model   string
	hc      *http.Client
	log     *zap.Logger
	cache   *cache.Cache // 可为 nil：不缓存，也就没有 single-flight 合并
}

type Options struct {
	APIKey     string
	BaseURL    string // 默认 https://generativelanguage.googleapis.com
	Model      string // 默认 gemini-1.5-flash
	TimeoutSec int
	Logger     *zap.Logger
	Cache      *cache.Cache
}

func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if o.Model == "" {
		o.Model = "gemini-1.5-flash"
	}
	if o.TimeoutSec <= 0 {
		o.TimeoutSec = 30
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Client{
		apiKey:  o.APIKey,
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		model:   o.Model,
		hc:      &http.Client{Timeout: time.Duration(o.TimeoutSec) * time.Second},
		log:     o.Logger,
		cache:   o.Cache,
	}
}

// Configured 是否配了可用的 api key；没配时所有任务走离线兜底
func (c *Client) Configured() bool { return c.apiKey != "" }

// generateContent 的请求/响应结构，只取用到的字段
type genRequest struct {
	Contents []genContent `json:"contents"`
}
type genContent struct {
	Parts []genPart `json:"parts"`
}
type genPart struct {
	Text string `json:"text"`
}
type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate 单轮补全：prompt 进、纯文本出
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(genRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	var out genResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("api error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	c.log.Debug("completion ok",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("reply_len", len(text)),
		zap.Duration("latency", time.Since(start)),
	)
	return text, nil
}

// stripFences 模型经常把 JSON 包在 ```json ... ``` 里，剥掉再解析
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// generateJSON 补全并把结果解析成 v
func generateJSON[T any](ctx context.Context, c *Client, prompt string) (T, error) {
	var v T
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &v); err != nil {
		return v, fmt.Errorf("parse completion json: %w", err)
	}
	return v, nil
}
