// Package di はアプリケーションコンポーネントを生成するファクトリーを提供します。
package di

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"gorm.io/gorm"

	"company_research/internal/feature/research/adapters"
	"company_research/internal/feature/research/adapters/aigateway"
	"company_research/internal/feature/research/adapters/alphavantage"
	"company_research/internal/feature/research/adapters/gemini"
	"company_research/internal/feature/research/transport/handler"
	"company_research/internal/feature/research/usecase"
	infrahttp "company_research/internal/platform/http"
	"company_research/internal/shared/ratelimiter"
)

const (
	// EnvKeyAIProvider は使用する言語モデルのバックエンドを指定する環境変数です。
	EnvKeyAIProvider = "AI_PROVIDER"

	ProviderAIGateway = "aigateway"
	ProviderGemini    = "gemini"

	// EnvKeyAnalyzeRequestsPerMinute はプロセス全体で受け付ける1分あたりの分析リクエスト数です。0は無制限。
	EnvKeyAnalyzeRequestsPerMinute = "RESEARCH_REQUESTS_PER_MINUTE"
)

// NewMarketDataClient はHTTPクライアント設定済みのAlpha Vantageクライアントを生成します。
// 返り値はMarketDataClientとNewsClientの両方を満たします。
func NewMarketDataClient() *alphavantage.Client {
	cfg := alphavantage.LoadConfig()
	if cfg.APIKey == "" {
		slog.Warn("ALPHA_VANTAGE_KEY is not set; analysis requests will fail with a configuration error")
	}
	return alphavantage.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewSynthesizer はAI_PROVIDERに応じたNarrativeSynthesizerを生成します。
// Geminiクライアントの生成に失敗した場合も起動は継続し、分析時に設定エラーを返します。
func NewSynthesizer(ctx context.Context) usecase.NarrativeSynthesizer {
	switch provider := strings.ToLower(os.Getenv(EnvKeyAIProvider)); provider {
	case ProviderGemini:
		cfg := gemini.LoadConfig()
		s, err := gemini.NewGeminiSynthesizer(ctx, cfg, infrahttp.NewHTTPClient(aigateway.DefaultTimeout))
		if err != nil {
			slog.Error("gemini synthesizer unavailable", "error", err)
			return unavailableSynthesizer{err: err}
		}
		return s
	case "", ProviderAIGateway:
		cfg := aigateway.LoadConfig()
		if cfg.APIKey == "" {
			slog.Warn("AI_GATEWAY_API_KEY is not set; analysis requests will fail with a configuration error")
		}
		return aigateway.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	default:
		slog.Warn("unknown AI_PROVIDER; falling back to the AI gateway", "provider", provider)
		cfg := aigateway.LoadConfig()
		return aigateway.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	}
}

// unavailableSynthesizer は生成時のエラーを毎回返します。
type unavailableSynthesizer struct {
	err error
}

func (s unavailableSynthesizer) Synthesize(ctx context.Context, system, prompt string) (string, error) {
	return "", s.err
}

// NewResearchUsecase は分析パイプラインを組み立てます。
// 上流の応答はキャッシュせず、同じティッカーでも毎回すべての段階を実行します。
func NewResearchUsecase(ctx context.Context, opts ...usecase.Option) handler.ResearchUsecase {
	market := NewMarketDataClient()
	return usecase.NewResearchUsecase(market, market, NewSynthesizer(ctx), opts...)
}

// NewReportUsecase はGORMリポジトリを使用するレポート保存ユースケースを生成します。
func NewReportUsecase(db *gorm.DB) handler.ReportUsecase {
	return usecase.NewReportUsecase(adapters.NewReportGorm(db))
}

// NewAnalyzeLimiter は分析エンドポイント用のLimiterを生成します。上限が未設定の場合はnilを返します。
func NewAnalyzeLimiter() ratelimiter.Limiter {
	n := ratelimiter.PerMinuteFromEnv(EnvKeyAnalyzeRequestsPerMinute)
	if n == 0 {
		return nil
	}
	return ratelimiter.NewPerMinute(n)
}
