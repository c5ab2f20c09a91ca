// Package gemini はGoogle Gemini APIを使用したNarrativeSynthesizer実装を提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	providerName = "gemini"
)

// Config はGeminiクライアントの設定を保持します。
type Config struct {
	APIKey  string // 空の場合はADC（GOOGLE_GENAI_USE_VERTEXAI など）で認証します
	Model   string
	BaseURL string // テスト用。空の場合はSDKの既定値
}

// LoadConfig は環境変数からGeminiの設定を読み込みます。
func LoadConfig() Config {
	model := os.Getenv("AI_MODEL")
	if model == "" || strings.Contains(model, "/") {
		// "google/gemini-2.5-flash" のようなゲートウェイ形式のモデル名は使わない
		model = DefaultModel
	}
	return Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  model,
	}
}

// GeminiSynthesizer はGoogle Gemini APIを使用してブリーフの生テキストを生成します。
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
}

// GeminiSynthesizerがNarrativeSynthesizerを実装していることをコンパイル時に検証します。
var _ usecase.NarrativeSynthesizer = (*GeminiSynthesizer)(nil)

// NewGeminiSynthesizer はGeminiSynthesizerの新しいインスタンスを生成します。
// APIキーが設定されていればGemini API、なければADCを使用します。
func NewGeminiSynthesizer(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiSynthesizer, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:     cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", domain.ErrConfiguration, err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiSynthesizer{client: client, model: model}, nil
}

// Synthesize はシステム指示付きでプロンプトを送信し、生成テキストを返します。
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		mapped := mapError(err)
		slog.ErrorContext(ctx, "gemini API request failed", "model", g.model, "error", err)
		return "", mapped
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrAIEmptyResponse
	}
	return text, nil
}

// mapError はSDKのエラーをドメインの分類に変換します。
func mapError(err error) error {
	code, message, ok := apiErrorDetails(err)
	if !ok {
		return fmt.Errorf("%w: gemini API request failed: %v", domain.ErrAIRequestFailed, err)
	}

	perr := &domain.ProviderError{Provider: providerName, StatusCode: code, Body: message}
	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrAIRateLimited, perr)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %w", domain.ErrAIQuotaExhausted, perr)
	default:
		return fmt.Errorf("%w: %w", domain.ErrAIRequestFailed, perr)
	}
}

func apiErrorDetails(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}
