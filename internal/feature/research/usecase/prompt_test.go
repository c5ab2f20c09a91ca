package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("deterministic for identical input", func(t *testing.T) {
		a := usecase.BuildPrompt(appleOverview(), appleNews())
		b := usecase.BuildPrompt(appleOverview(), appleNews())
		assert.Equal(t, a, b)
	})

	t.Run("includes every fundamentals label", func(t *testing.T) {
		p := usecase.BuildPrompt(appleOverview(), nil)
		for _, label := range []string{
			"- Name: Apple Inc",
			"- Ticker: AAPL",
			"- Exchange: NASDAQ",
			"- Sector: TECHNOLOGY",
			"- Industry: ELECTRONIC COMPUTERS",
			"- Market Cap: 3000000000000",
			"- P/E Ratio: 30.5",
			"- EPS: N/A",
			"- Revenue TTM: N/A",
			"- Profit Margin: N/A",
			"- Operating Margin: N/A",
			"- ROE: N/A",
			"- Beta: N/A",
			"- 52-Week High: N/A",
			"- 52-Week Low: N/A",
			"- Dividend Yield: N/A",
		} {
			assert.Contains(t, p, label)
		}
	})

	t.Run("no news renders placeholder line", func(t *testing.T) {
		p := usecase.BuildPrompt(appleOverview(), []entity.NewsItem{})
		assert.Contains(t, p, "RECENT NEWS:\n- No recent news available.\n")
	})

	t.Run("news items keep provider order", func(t *testing.T) {
		p := usecase.BuildPrompt(appleOverview(), appleNews())
		first := strings.Index(p, "Apple unveils new iPhone")
		second := strings.Index(p, "Apple faces EU fine (Sentiment: Bearish)")
		assert.Greater(t, first, 0)
		assert.Greater(t, second, first)
		assert.NotContains(t, p, "No recent news available")
	})

	t.Run("multiline values are flattened", func(t *testing.T) {
		o := appleOverview()
		o.Description = "Line one.\n\nLine   two."
		news := []entity.NewsItem{{Title: "Split\nheadline", Sentiment: "", PublishedAt: time.Now()}}
		p := usecase.BuildPrompt(o, news)
		assert.Contains(t, p, "- Description: Line one. Line two.\n")
		assert.Contains(t, p, "- Split headline (Sentiment: N/A)\n")
	})

	t.Run("asks for json and three comparables", func(t *testing.T) {
		p := usecase.BuildPrompt(appleOverview(), nil)
		assert.Contains(t, p, "JSON format ONLY")
		assert.Contains(t, p, "exactly 3 comparable companies")
		assert.Contains(t, p, `"similarityScore"`)
	})
}
