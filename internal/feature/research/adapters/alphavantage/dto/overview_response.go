// Package dto はAlpha Vantage APIのレスポンス形式を定義します。
package dto

// OverviewResponse は function=OVERVIEW のレスポンスです。
// 数値もすべて文字列で返され、値がない項目は "None" や "-" になります。
type OverviewResponse struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Exchange             string `json:"Exchange"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	EPS                  string `json:"EPS"`
	RevenueTTM           string `json:"RevenueTTM"`
	ProfitMargin         string `json:"ProfitMargin"`
	OperatingMarginTTM   string `json:"OperatingMarginTTM"`
	ReturnOnEquityTTM    string `json:"ReturnOnEquityTTM"`
	Beta                 string `json:"Beta"`
	WeekHigh52           string `json:"52WeekHigh"`
	WeekLow52            string `json:"52WeekLow"`
	DividendYield        string `json:"DividendYield"`

	// レート制限・エラー時にのみ含まれるフィールド
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}
