package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/transport/http/dto"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// render はレポートを指定形式でwに書き出します。
// JSONはHTTP APIの /v1/research/analyze と同じ形です。
func render(w io.Writer, r *entity.CompanyReport, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromReport(r))
	}
	_, err := io.WriteString(w, renderText(r))
	return err
}

func renderText(r *entity.CompanyReport) string {
	var b strings.Builder
	f := r.Fundamentals

	fmt.Fprintf(&b, "%s (%s)\n", r.CompanyName, r.Ticker)
	fmt.Fprintf(&b, "Analyzed %s from %d news item(s)\n\n", r.AnalyzedAt.Format("2006-01-02 15:04 MST"), r.NewsCount)

	fmt.Fprintf(&b, "Sector: %s / %s\n", orNA(f.Sector), orNA(f.Industry))
	fmt.Fprintf(&b, "Market cap: %s  P/E: %s  EPS: %s  Beta: %s\n", orNA(f.MarketCap), orNA(f.PERatio), orNA(f.EPS), orNA(f.Beta))
	fmt.Fprintf(&b, "52W range: %s - %s  Dividend yield: %s\n\n", orNA(f.Low52Week), orNA(f.High52Week), orNA(f.DividendYield))

	section(&b, "Overview", r.Brief.Overview)
	section(&b, "Business model", r.Brief.BusinessModel)
	section(&b, "Financials", r.Brief.Financials)
	list(&b, "Risks", r.Brief.Risks)
	list(&b, "Opportunities", r.Brief.Opportunities)

	if len(r.Comparables) > 0 {
		b.WriteString("Comparable companies\n")
		for _, c := range r.Comparables {
			fmt.Fprintf(&b, "  %-6s %-30s %3d  %s\n", c.Ticker, c.CompanyName, c.SimilarityScore, c.Reasoning)
		}
	}
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "%s\n  %s\n\n", title, body)
}

func list(b *strings.Builder, title string, items []string) {
	b.WriteString(title + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "  - %s\n", it)
	}
	b.WriteString("\n")
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}
