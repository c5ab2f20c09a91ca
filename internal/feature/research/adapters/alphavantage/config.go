// Package alphavantage はAlpha Vantage APIから企業概要とニュースを取得するクライアントを提供します。
package alphavantage

import (
	"os"
	"time"
)

// DefaultBaseURL はAlpha Vantage APIの既定のベースURLです。
const DefaultBaseURL = "https://www.alphavantage.co"

// Config はAlpha Vantageクライアントの設定を保持します。
type Config struct {
	APIKey  string        // 認証用APIキー
	BaseURL string        // ベースURL（例: "https://www.alphavantage.co"）
	Timeout time.Duration // HTTPリクエストのタイムアウト
}

// LoadConfig は環境変数からAlpha Vantageの設定を読み込みます。
func LoadConfig() Config {
	baseURL := os.Getenv("ALPHA_VANTAGE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_KEY"),
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}
