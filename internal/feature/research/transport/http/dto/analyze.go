// Package dto はresearchフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"company_research/internal/feature/research/domain/entity"
)

// AnalyzeReq は /v1/research/analyze のリクエストボディです。
type AnalyzeReq struct {
	Ticker string `json:"ticker" binding:"required"`
}

// RawData は基礎データのレスポンス表現です。
type RawData struct {
	Sector          string `json:"sector"`
	Industry        string `json:"industry"`
	MarketCap       string `json:"marketCap"`
	PERatio         string `json:"peRatio"`
	EPS             string `json:"eps"`
	Revenue         string `json:"revenue"`
	ProfitMargin    string `json:"profitMargin"`
	OperatingMargin string `json:"operatingMargin"`
	ROE             string `json:"roe"`
	Beta            string `json:"beta"`
	High52Week      string `json:"high52Week"`
	Low52Week       string `json:"low52Week"`
	DividendYield   string `json:"dividendYield"`
}

// CompanyReportRes は分析結果のレスポンスです。
type CompanyReportRes struct {
	Ticker      string                     `json:"ticker"`
	CompanyName string                     `json:"companyName"`
	RawData     RawData                    `json:"rawData"`
	Brief       entity.AnalysisBrief       `json:"brief"`
	Comparables []entity.ComparableCompany `json:"comparables"`
	NewsCount   int                        `json:"newsCount"`
	AnalyzedAt  time.Time                  `json:"analyzedAt"`
}

// FromReport はドメインのレポートをレスポンスに変換します。
func FromReport(r *entity.CompanyReport) CompanyReportRes {
	f := r.Fundamentals
	return CompanyReportRes{
		Ticker:      r.Ticker.String(),
		CompanyName: r.CompanyName,
		RawData: RawData{
			Sector:          f.Sector,
			Industry:        f.Industry,
			MarketCap:       f.MarketCap,
			PERatio:         f.PERatio,
			EPS:             f.EPS,
			Revenue:         f.Revenue,
			ProfitMargin:    f.ProfitMargin,
			OperatingMargin: f.OperatingMargin,
			ROE:             f.ROE,
			Beta:            f.Beta,
			High52Week:      f.High52Week,
			Low52Week:       f.Low52Week,
			DividendYield:   f.DividendYield,
		},
		Brief:       r.Brief,
		Comparables: r.Comparables,
		NewsCount:   r.NewsCount,
		AnalyzedAt:  r.AnalyzedAt,
	}
}
