package entity

// Fundamentals は企業の基礎的な財務指標です。
// 値はプロバイダーが返した文字列のままで、数値への変換は行いません（表示側で防御的に解釈すること）。
type Fundamentals struct {
	Sector          string
	Industry        string
	MarketCap       string
	PERatio         string
	EPS             string
	Revenue         string
	ProfitMargin    string
	OperatingMargin string
	ROE             string
	Beta            string
	High52Week      string
	Low52Week       string
	DividendYield   string
}

// CompanyOverview はマーケットデータプロバイダーの企業概要レコードです。
type CompanyOverview struct {
	Symbol       string
	Name         string
	Description  string
	Exchange     string
	Fundamentals Fundamentals
}
