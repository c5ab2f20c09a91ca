package usecase

import (
	"strings"

	"company_research/internal/feature/research/domain/entity"
)

// SystemInstruction はモデルにJSONのみの出力を強制するシステムメッセージです。
const SystemInstruction = "You are a senior M&A analyst. Always respond with valid JSON only, no markdown formatting."

// responseSchema はモデルに返させるJSONの形です。
const responseSchema = `{
  "brief": {
    "overview": "2-3 sentence company overview",
    "businessModel": "Description of how the company makes money (2-3 sentences)",
    "financials": "Key financial highlights and health assessment (2-3 sentences)",
    "risks": ["risk 1", "risk 2", "risk 3"],
    "opportunities": ["opportunity 1", "opportunity 2", "opportunity 3"]
  },
  "comparables": [
    {
      "companyName": "Company Name",
      "ticker": "TICK",
      "similarityScore": 85,
      "reasoning": "Brief explanation of why this is a comparable",
      "keyMetrics": {
        "marketCap": "$XXB",
        "peRatio": "XX",
        "sector": "Sector Name"
      }
    }
  ]
}`

// BuildPrompt は企業概要とニュースからモデルへの指示文を組み立てます。
// 同じ入力には常に同じ文字列を返します。値の検証は行いません。
func BuildPrompt(overview *entity.CompanyOverview, news []entity.NewsItem) string {
	f := overview.Fundamentals

	var b strings.Builder
	b.WriteString("You are a senior M&A analyst. Analyze the following company data and provide a comprehensive analysis.\n\n")

	b.WriteString("COMPANY DATA:\n")
	field(&b, "Name", overview.Name)
	field(&b, "Ticker", overview.Symbol)
	field(&b, "Exchange", overview.Exchange)
	field(&b, "Sector", f.Sector)
	field(&b, "Industry", f.Industry)
	field(&b, "Description", overview.Description)
	field(&b, "Market Cap", f.MarketCap)
	field(&b, "P/E Ratio", f.PERatio)
	field(&b, "EPS", f.EPS)
	field(&b, "Revenue TTM", f.Revenue)
	field(&b, "Profit Margin", f.ProfitMargin)
	field(&b, "Operating Margin", f.OperatingMargin)
	field(&b, "ROE", f.ROE)
	field(&b, "Beta", f.Beta)
	field(&b, "52-Week High", f.High52Week)
	field(&b, "52-Week Low", f.Low52Week)
	field(&b, "Dividend Yield", f.DividendYield)

	b.WriteString("\nRECENT NEWS:\n")
	if len(news) == 0 {
		b.WriteString("- No recent news available.\n")
	}
	for _, n := range news {
		b.WriteString("- ")
		b.WriteString(clean(n.Title))
		b.WriteString(" (Sentiment: ")
		b.WriteString(clean(n.Sentiment))
		b.WriteString(")\n")
	}

	b.WriteString("\nProvide your analysis in the following JSON format ONLY (no markdown, no code blocks, just pure JSON). ")
	b.WriteString("Propose exactly 3 comparable companies.\n")
	b.WriteString(responseSchema)
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(clean(value))
	b.WriteByte('\n')
}

// clean は改行や連続する空白を1つの空白にまとめ、空の値を "N/A" にします。
func clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "N/A"
	}
	return s
}
