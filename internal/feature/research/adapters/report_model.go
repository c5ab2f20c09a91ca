// Package adapters はresearchフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"company_research/internal/feature/research/domain/entity"
)

// ReportModel は company_reports テーブルのGORMモデルです。
// ブリーフと類似企業はJSONとして1列ずつに保存します。
type ReportModel struct {
	ID                  string                     `gorm:"primaryKey;type:varchar(36)"`
	UserID              uint                       `gorm:"not null;index:idx_company_reports_user_created,priority:1"`
	Ticker              string                     `gorm:"size:5;not null"`
	CompanyName         string                     `gorm:"size:255;not null"`
	ReportData          entity.AnalysisBrief       `gorm:"serializer:json;type:text;not null"`
	ComparableCompanies []entity.ComparableCompany `gorm:"serializer:json;type:text;not null"`
	CreatedAt           time.Time                  `gorm:"not null;index:idx_company_reports_user_created,priority:2,sort:desc"`
}

// TableName はGORMが使用するテーブル名を返します。
func (ReportModel) TableName() string {
	return "company_reports"
}

// toEntity はモデルをドメインエンティティに変換します。
func (m *ReportModel) toEntity() entity.SavedReport {
	comparables := m.ComparableCompanies
	if comparables == nil {
		comparables = []entity.ComparableCompany{}
	}
	return entity.SavedReport{
		ID:          m.ID,
		UserID:      m.UserID,
		Ticker:      entity.Ticker(m.Ticker),
		CompanyName: m.CompanyName,
		Brief:       m.ReportData,
		Comparables: comparables,
		CreatedAt:   m.CreatedAt,
	}
}

func fromEntity(r *entity.SavedReport) *ReportModel {
	return &ReportModel{
		ID:                  r.ID,
		UserID:              r.UserID,
		Ticker:              r.Ticker.String(),
		CompanyName:         r.CompanyName,
		ReportData:          r.Brief,
		ComparableCompanies: r.Comparables,
		CreatedAt:           r.CreatedAt,
	}
}
