package entity

import "time"

// MaxNewsItems はプロンプトに含めるニュースの最大件数です。
const MaxNewsItems = 5

// NewsItem はセンチメントラベル付きのニュース記事です。
type NewsItem struct {
	Title       string
	Summary     string
	Source      string
	PublishedAt time.Time // 解析できない場合はゼロ値
	Sentiment   string    // 例: "Bullish", "Somewhat-Bearish"
}
