package usecase

import (
	"time"

	"company_research/internal/feature/research/domain/entity"
)

// AssembleReport は各ステージの出力から最終レポートを組み立てます。失敗しません。
func AssembleReport(ticker entity.Ticker, overview *entity.CompanyOverview, analysis *entity.Analysis, newsCount int, analyzedAt time.Time) *entity.CompanyReport {
	comparables := analysis.Comparables
	if comparables == nil {
		comparables = []entity.ComparableCompany{}
	}
	if newsCount < 0 {
		newsCount = 0
	}
	return &entity.CompanyReport{
		Ticker:       ticker,
		CompanyName:  overview.Name,
		Fundamentals: overview.Fundamentals,
		Brief:        analysis.Brief,
		Comparables:  comparables,
		NewsCount:    newsCount,
		AnalyzedAt:   analyzedAt.UTC(),
	}
}
