package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"company_research/internal/feature/research/adapters/aigateway/dto"
	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/usecase"
)

const (
	providerName = "aigateway"
	maxErrorBody = 4096
)

// Client はchat completions APIを呼び出すNarrativeSynthesizer実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがNarrativeSynthesizerを実装していることをコンパイル時に検証します。
var _ usecase.NarrativeSynthesizer = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Synthesize はシステムメッセージとユーザーメッセージを送信し、最初の候補の本文を返します。
// 429は domain.ErrAIRateLimited、402は domain.ErrAIQuotaExhausted、その他の失敗は domain.ErrAIRequestFailed をラップします。
func (c *Client) Synthesize(ctx context.Context, system, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: ai gateway api key is not set", domain.ErrConfiguration)
	}

	payload, err := json.Marshal(dto.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []dto.ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", domain.ErrAIRequestFailed, err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrAIRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrAIRequestFailed, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		perr := &domain.ProviderError{Provider: providerName, StatusCode: res.StatusCode, Body: string(b)}
		slog.ErrorContext(ctx, "ai gateway error response", "status", res.StatusCode, "body", perr.Body, "model", c.cfg.Model)
		return "", fmt.Errorf("%w: %w", kindForStatus(res.StatusCode), perr)
	}

	var body dto.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrAIRequestFailed, err)
	}
	if len(body.Choices) == 0 || body.Choices[0].Message == nil || strings.TrimSpace(body.Choices[0].Message.Content) == "" {
		return "", domain.ErrAIEmptyResponse
	}
	return body.Choices[0].Message.Content, nil
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return domain.ErrAIRateLimited
	case http.StatusPaymentRequired:
		return domain.ErrAIQuotaExhausted
	default:
		return domain.ErrAIRequestFailed
	}
}
