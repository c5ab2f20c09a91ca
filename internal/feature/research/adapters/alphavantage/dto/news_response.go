package dto

// NewsSentimentResponse は function=NEWS_SENTIMENT のレスポンスです。
type NewsSentimentResponse struct {
	Items string     `json:"items"`
	Feed  []NewsFeed `json:"feed"`

	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}

// NewsFeed はフィード内の1記事です。TimePublished は "20060102T150405" 形式です。
type NewsFeed struct {
	Title                 string `json:"title"`
	URL                   string `json:"url"`
	Summary               string `json:"summary"`
	Source                string `json:"source"`
	TimePublished         string `json:"time_published"`
	OverallSentimentLabel string `json:"overall_sentiment_label"`
}
