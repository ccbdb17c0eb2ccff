package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "models/embedding-001"
	geminiDimension      = 768
)

// GeminiConfig Gemini 提供方配置
type GeminiConfig struct {
	APIKey  string `yaml:"api-key"`
	Model   string `yaml:"model" default:"models/embedding-001"`
	BaseURL string `yaml:"base-url" default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout int    `yaml:"timeout" default:"30"`
}

// Gemini 调用 Gemini embedContent 接口计算向量
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGemini 创建 Gemini 提供方
// APIKey 为空时返回 Disabled，所有向量计算降级
func NewGemini(cfg *GeminiConfig) Provider {
	if cfg == nil || cfg.APIKey == "" {
		return Disabled{}
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}

	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// Embed 计算文本向量
// 网络错误、非 200 响应与畸形响应统一折叠为 ErrUnavailable，不向调用方泄露其它错误
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(geminiEmbedRequest{
		Model: g.model,
		Content: geminiContent{
			Parts: []geminiContentPart{{Text: text}},
		},
	})
	if err != nil {
		return nil, errors.WithMessage(ErrUnavailable, err.Error())
	}

	url := g.baseURL + "/" + g.model + ":embedContent?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithMessage(ErrUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithMessage(ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WithMessagef(ErrUnavailable, "gemini embed: status %d", resp.StatusCode)
	}

	var result geminiEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.WithMessagef(ErrUnavailable, "gemini embed: bad response: %v", err)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, errors.WithMessage(ErrUnavailable, "gemini returned empty embedding")
	}

	return result.Embedding.Values, nil
}

// Dimension 返回向量维度
func (g *Gemini) Dimension() int { return geminiDimension }

// Enabled 提供方是否已配置
func (g *Gemini) Enabled() bool { return true }
