package dto

import (
	"time"

	"company_research/internal/feature/research/domain/entity"
)

// SaveReportReq は /v1/reports のリクエストボディです。分析結果のレスポンスをそのまま送れます。
type SaveReportReq struct {
	Ticker      string                     `json:"ticker" binding:"required"`
	CompanyName string                     `json:"companyName" binding:"required"`
	Brief       entity.AnalysisBrief       `json:"brief"`
	Comparables []entity.ComparableCompany `json:"comparables"`
}

// ToEntity はリクエストをドメインエンティティに変換します。
func (r SaveReportReq) ToEntity() *entity.SavedReport {
	return &entity.SavedReport{
		Ticker:      entity.Ticker(r.Ticker),
		CompanyName: r.CompanyName,
		Brief:       r.Brief,
		Comparables: r.Comparables,
	}
}

// SaveReportRes は保存成功時のレスポンスです。
type SaveReportRes struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedReportRes は保存済みレポートのレスポンスです。
type SavedReportRes struct {
	ID          string                     `json:"id"`
	Ticker      string                     `json:"ticker"`
	CompanyName string                     `json:"companyName"`
	Brief       entity.AnalysisBrief       `json:"brief"`
	Comparables []entity.ComparableCompany `json:"comparables"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// FromSavedReport はドメインエンティティをレスポンスに変換します。
func FromSavedReport(r *entity.SavedReport) SavedReportRes {
	comparables := r.Comparables
	if comparables == nil {
		comparables = []entity.ComparableCompany{}
	}
	return SavedReportRes{
		ID:          r.ID,
		Ticker:      r.Ticker.String(),
		CompanyName: r.CompanyName,
		Brief:       r.Brief,
		Comparables: comparables,
		CreatedAt:   r.CreatedAt,
	}
}
