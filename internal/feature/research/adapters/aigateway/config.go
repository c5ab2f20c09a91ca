// Package aigateway はOpenAI互換のAIゲートウェイ経由で言語モデルを呼び出すクライアントを提供します。
package aigateway

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL はゲートウェイの既定のベースURLです。
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1"
	// DefaultModel は既定のモデル名です。
	DefaultModel = "google/gemini-2.5-flash"
	// DefaultTimeout は言語モデル呼び出しのタイムアウトです。
	DefaultTimeout = 60 * time.Second
)

// Config はゲートウェイクライアントの設定を保持します。
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LoadConfig は環境変数からゲートウェイの設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("AI_GATEWAY_API_KEY"),
		BaseURL: os.Getenv("AI_GATEWAY_BASE_URL"),
		Model:   os.Getenv("AI_MODEL"),
		Timeout: DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}
