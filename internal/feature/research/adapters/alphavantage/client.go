package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"company_research/internal/feature/research/adapters/alphavantage/dto"
	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
)

const (
	providerName = "alphavantage"
	// maxErrorBody はエラー時にログへ残すレスポンス本文の最大バイト数です。
	maxErrorBody = 2048
	// timePublishedLayout はNEWS_SENTIMENTの time_published の形式です。
	timePublishedLayout = "20060102T150405"
)

// Client はAlpha Vantage APIのクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// Clientがusecaseのインターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.MarketDataClient = (*Client)(nil)
	_ usecase.NewsClient       = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchOverview は function=OVERVIEW を呼び出し、企業概要を返します。
// Symbolが空のレスポンス（"Error Message" のみの場合を含む）はティッカー不明として (nil, false, nil) を返します。
func (c *Client) FetchOverview(ctx context.Context, ticker entity.Ticker) (*entity.CompanyOverview, bool, error) {
	var body dto.OverviewResponse
	if err := c.query(ctx, url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {ticker.String()},
	}, &body); err != nil {
		return nil, false, err
	}

	if notice := firstNonEmpty(body.Note, body.Information); notice != "" {
		slog.WarnContext(ctx, "alpha vantage rate limit", "ticker", ticker, "note", notice)
		return nil, false, fmt.Errorf("%w: %s", domain.ErrUpstreamRateLimited, notice)
	}
	if body.Symbol == "" {
		slog.InfoContext(ctx, "no company data found", "ticker", ticker, "provider_message", body.ErrorMessage)
		return nil, false, nil
	}

	return &entity.CompanyOverview{
		Symbol:      body.Symbol,
		Name:        body.Name,
		Description: body.Description,
		Exchange:    body.Exchange,
		Fundamentals: entity.Fundamentals{
			Sector:          body.Sector,
			Industry:        body.Industry,
			MarketCap:       body.MarketCapitalization,
			PERatio:         body.PERatio,
			EPS:             body.EPS,
			Revenue:         body.RevenueTTM,
			ProfitMargin:    body.ProfitMargin,
			OperatingMargin: body.OperatingMarginTTM,
			ROE:             body.ReturnOnEquityTTM,
			Beta:            body.Beta,
			High52Week:      body.WeekHigh52,
			Low52Week:       body.WeekLow52,
			DividendYield:   body.DividendYield,
		},
	}, true, nil
}

// FetchNews は function=NEWS_SENTIMENT を呼び出し、最大5件のニュースを返します。
// レート制限中やフィードがない場合は空のスライスを返します。
func (c *Client) FetchNews(ctx context.Context, ticker entity.Ticker) ([]entity.NewsItem, error) {
	var body dto.NewsSentimentResponse
	if err := c.query(ctx, url.Values{
		"function": {"NEWS_SENTIMENT"},
		"tickers":  {ticker.String()},
		"limit":    {fmt.Sprint(entity.MaxNewsItems)},
	}, &body); err != nil {
		return nil, err
	}

	if notice := firstNonEmpty(body.Note, body.Information); notice != "" {
		slog.WarnContext(ctx, "alpha vantage rate limit on news", "ticker", ticker, "note", notice)
		return []entity.NewsItem{}, nil
	}
	if len(body.Feed) == 0 {
		return []entity.NewsItem{}, nil
	}

	feed := body.Feed
	if len(feed) > entity.MaxNewsItems {
		feed = feed[:entity.MaxNewsItems]
	}
	items := make([]entity.NewsItem, 0, len(feed))
	for _, f := range feed {
		// 公開日時が解析できない記事もそのまま使う
		published, err := time.Parse(timePublishedLayout, f.TimePublished)
		if err != nil {
			published = time.Time{}
		}
		items = append(items, entity.NewsItem{
			Title:       f.Title,
			Summary:     f.Summary,
			Source:      f.Source,
			PublishedAt: published,
			Sentiment:   f.OverallSentimentLabel,
		})
	}
	return items, nil
}

// query は /query エンドポイントを呼び出し、JSONレスポンスをoutにデコードします。
func (c *Client) query(ctx context.Context, q url.Values, out any) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("%w: alpha vantage api key is not set", domain.ErrConfiguration)
	}
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", q.Get("function"), err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		// url.Error はAPIキーを含むURLを保持するため、原因のみを残す
		return fmt.Errorf("%s request failed: %w", q.Get("function"), unwrapURLError(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		perr := &domain.ProviderError{Provider: providerName, StatusCode: res.StatusCode, Body: string(b)}
		slog.ErrorContext(ctx, "alpha vantage error response", "function", q.Get("function"), "status", res.StatusCode, "body", perr.Body)
		return fmt.Errorf("%s request failed: %w", q.Get("function"), perr)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", q.Get("function"), err)
	}
	return nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
