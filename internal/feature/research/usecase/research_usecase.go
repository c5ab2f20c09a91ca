// Package usecase はresearchフィーチャーのビジネスロジック（企業分析パイプライン）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
)

// Stage はパイプラインの状態です。
type Stage string

const (
	StageIdle               Stage = "idle"
	StageValidating         Stage = "validating"
	StageFetchingMarketData Stage = "fetching_market_data"
	StageFetchingNews       Stage = "fetching_news"
	StageSynthesizing       Stage = "synthesizing"
	StageParsing            Stage = "parsing"
	StageAssembling         Stage = "assembling"
	StageComplete           Stage = "complete"
	StageFailed             Stage = "failed"
)

// MarketDataClient は企業の基礎データを取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketDataClient interface {
	// FetchOverview はティッカーの企業概要を返します。
	// プロバイダーがティッカーを認識しない場合は (nil, false, nil) を返します。
	FetchOverview(ctx context.Context, ticker entity.Ticker) (*entity.CompanyOverview, bool, error)
}

// NewsClient は直近のニュースを取得します。
type NewsClient interface {
	// FetchNews は最大5件のニュースを新しい順に返します。レート制限時やフィードがない場合は空を返します。
	FetchNews(ctx context.Context, ticker entity.Ticker) ([]entity.NewsItem, error)
}

// NarrativeSynthesizer は言語モデルを呼び出し、生のテキストを返します。
type NarrativeSynthesizer interface {
	Synthesize(ctx context.Context, system, prompt string) (string, error)
}

// StageObserver はステージ遷移ごとに呼び出されます。
type StageObserver func(ctx context.Context, ticker string, stage Stage)

// Option はresearchUsecaseの設定を変更します。
type Option func(*researchUsecase)

// WithClock は分析時刻の取得に使う関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *researchUsecase) { u.now = now }
}

// WithStageObserver はステージ遷移の通知先を設定します。
func WithStageObserver(o StageObserver) Option {
	return func(u *researchUsecase) { u.observe = o }
}

// researchUsecase は企業分析パイプラインのオーケストレーターです。
// リクエスト間で共有する可変状態は持ちません。
type researchUsecase struct {
	market      MarketDataClient
	news        NewsClient
	synthesizer NarrativeSynthesizer
	now         func() time.Time
	observe     StageObserver
}

// NewResearchUsecase はresearchUsecaseの新しいインスタンスを生成します。
func NewResearchUsecase(market MarketDataClient, news NewsClient, synthesizer NarrativeSynthesizer, opts ...Option) *researchUsecase {
	u := &researchUsecase{
		market:      market,
		news:        news,
		synthesizer: synthesizer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Analyze はティッカーを検証し、基礎データ・ニュース取得、モデル呼び出し、解析、組み立てを順に実行します。
// いずれかのステージが失敗した場合は *domain.ResearchError を返し、レポートは返しません。
// 開始したステージは呼び出し元のキャンセルに関係なく完了まで実行します。
func (u *researchUsecase) Analyze(ctx context.Context, rawTicker string) (*entity.CompanyReport, error) {
	ctx = context.WithoutCancel(ctx)
	run := &pipelineRun{u: u, ctx: ctx, ticker: rawTicker, stage: StageIdle, started: time.Now()}

	run.enter(StageValidating)
	ticker, err := entity.ParseTicker(rawTicker)
	if err != nil {
		return nil, run.fail(err)
	}
	run.ticker = ticker.String()

	run.enter(StageFetchingMarketData)
	overview, found, err := u.market.FetchOverview(ctx, ticker)
	if err != nil {
		return nil, run.fail(err)
	}
	if !found {
		return nil, run.fail(fmt.Errorf("%w: provider returned no symbol for %s", domain.ErrTickerNotFound, ticker))
	}

	run.enter(StageFetchingNews)
	news, err := u.news.FetchNews(ctx, ticker)
	if err != nil {
		slog.WarnContext(ctx, "news fetch failed; continuing without news", "ticker", ticker, "error", err)
		news = nil
	}
	if len(news) > entity.MaxNewsItems {
		news = news[:entity.MaxNewsItems]
	}

	run.enter(StageSynthesizing)
	raw, err := u.synthesizer.Synthesize(ctx, SystemInstruction, BuildPrompt(overview, news))
	if err != nil {
		return nil, run.fail(err)
	}

	run.enter(StageParsing)
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		return nil, run.fail(err)
	}

	run.enter(StageAssembling)
	report := AssembleReport(ticker, overview, analysis, len(news), u.now())

	run.enter(StageComplete)
	slog.InfoContext(ctx, "analysis complete",
		"ticker", ticker,
		"company", report.CompanyName,
		"news_count", report.NewsCount,
		"comparables", len(report.Comparables),
		"duration_ms", time.Since(run.started).Milliseconds(),
	)
	return report, nil
}

// pipelineRun は1回のAnalyze呼び出しの進行状況を保持します。
type pipelineRun struct {
	u       *researchUsecase
	ctx     context.Context
	ticker  string
	stage   Stage
	started time.Time
}

func (r *pipelineRun) enter(s Stage) {
	r.stage = s
	slog.DebugContext(r.ctx, "research stage", "ticker", r.ticker, "stage", s)
	if r.u.observe != nil {
		r.u.observe(r.ctx, r.ticker, s)
	}
}

// fail は現在のステージの失敗を1つの分類に変換し、Failed状態に遷移します。
func (r *pipelineRun) fail(err error) *domain.ResearchError {
	failedAt := r.stage
	kind := classify(failedAt, err)
	rerr := &domain.ResearchError{
		Kind:    kind,
		Stage:   string(failedAt),
		Message: publicMessage(kind, failedAt, r.ticker),
		Detail:  diagnostic(err),
		Err:     err,
	}

	level := slog.LevelError
	switch kind {
	case domain.ErrInvalidInput, domain.ErrTickerNotFound, domain.ErrUpstreamRateLimited, domain.ErrAIRateLimited:
		level = slog.LevelWarn
	}
	slog.Log(r.ctx, level, "analysis failed",
		"ticker", r.ticker,
		"stage", failedAt,
		"kind", kind.Error(),
		"error", err,
		"detail", rerr.Detail,
	)

	r.enter(StageFailed)
	return rerr
}

// kinds は判定順の失敗分類です。
var kinds = []error{
	domain.ErrConfiguration,
	domain.ErrInvalidInput,
	domain.ErrTickerNotFound,
	domain.ErrUpstreamRateLimited,
	domain.ErrAIRateLimited,
	domain.ErrAIQuotaExhausted,
	domain.ErrAIEmptyResponse,
	domain.ErrAIResponseUnparseable,
	domain.ErrAIRequestFailed,
}

// classify はエラーを分類します。既知の分類を含まないエラーはステージから分類を決めます。
// マーケットデータの通信・応答異常は汎用の500系分類（ErrAIRequestFailed）に含めます。
func classify(stage Stage, err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	switch stage {
	case StageValidating:
		return domain.ErrInvalidInput
	case StageParsing:
		return domain.ErrAIResponseUnparseable
	default:
		return domain.ErrAIRequestFailed
	}
}

// publicMessage はクライアントに返すメッセージです。上流の応答本文や認証情報は含めません。
func publicMessage(kind error, stage Stage, ticker string) string {
	switch kind {
	case domain.ErrInvalidInput:
		return "Invalid ticker format. Use uppercase letters only, max 5 characters."
	case domain.ErrTickerNotFound:
		return fmt.Sprintf("Ticker %q not found. Please check the symbol and try again.", ticker)
	case domain.ErrUpstreamRateLimited:
		return "API rate limit reached. Please try again later."
	case domain.ErrAIRateLimited:
		return "AI rate limit exceeded. Please try again later."
	case domain.ErrAIQuotaExhausted:
		return "AI credits exhausted. Please add funds to continue."
	case domain.ErrAIResponseUnparseable:
		return "Failed to parse AI analysis"
	case domain.ErrConfiguration:
		return "API configuration error"
	default:
		if stage == StageFetchingMarketData {
			return "Failed to fetch market data"
		}
		return "AI analysis failed"
	}
}

// diagnostic はサーバー側で保持する診断情報を取り出します。
func diagnostic(err error) string {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Cleaned
	}
	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		return provErr.Error()
	}
	return err.Error()
}
