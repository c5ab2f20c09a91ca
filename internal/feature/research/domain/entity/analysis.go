package entity

// AnalysisBrief は言語モデルが生成した企業分析の本文です。
type AnalysisBrief struct {
	Overview      string   `json:"overview" validate:"required"`
	BusinessModel string   `json:"businessModel" validate:"required"`
	Financials    string   `json:"financials" validate:"required"`
	Risks         []string `json:"risks" validate:"required,min=1,dive,required"`
	Opportunities []string `json:"opportunities" validate:"required,min=1,dive,required"`
}

// KeyMetrics は類似企業の主要指標です。
type KeyMetrics struct {
	MarketCap string `json:"marketCap"`
	PERatio   string `json:"peRatio"`
	Sector    string `json:"sector"`
}

// ComparableCompany は言語モデルが提案した類似企業です。
// SimilarityScore は0〜100を想定していますが、範囲は強制しません。
type ComparableCompany struct {
	CompanyName     string     `json:"companyName"`
	Ticker          string     `json:"ticker"`
	SimilarityScore int        `json:"similarityScore"`
	Reasoning       string     `json:"reasoning"`
	KeyMetrics      KeyMetrics `json:"keyMetrics"`
}

// Analysis はモデル出力をデコードした結果です。
type Analysis struct {
	Brief       AnalysisBrief
	Comparables []ComparableCompany
}
