package entity

import "time"

// CompanyReport はパイプラインの唯一の出力です。生成後は変更しません。
type CompanyReport struct {
	Ticker       Ticker
	CompanyName  string
	Fundamentals Fundamentals
	Brief        AnalysisBrief
	Comparables  []ComparableCompany
	NewsCount    int
	AnalyzedAt   time.Time
}

// SavedReport はユーザーが保存したレポートです。
type SavedReport struct {
	ID          string
	UserID      uint
	Ticker      Ticker
	CompanyName string
	Brief       AnalysisBrief
	Comparables []ComparableCompany
	CreatedAt   time.Time
}
