// Package entity はresearchフィーチャーのドメインモデルを定義します。
package entity

import (
	"fmt"
	"strings"

	"company_research/internal/feature/research/domain"
)

// MaxTickerLength はティッカーの最大文字数です。
const MaxTickerLength = 5

// Ticker は正規化済みの銘柄シンボルです（1〜5文字の英大文字）。
type Ticker string

func (t Ticker) String() string { return string(t) }

// ParseTicker は入力文字列をトリム・大文字化し、^[A-Z]{1,5}$ を満たす場合にTickerを返します。
// 違反時は domain.ErrInvalidInput をラップしたエラーを返します。
func ParseTicker(raw string) (Ticker, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: ticker is required", domain.ErrInvalidInput)
	}
	if len(s) > MaxTickerLength {
		return "", fmt.Errorf("%w: ticker must be at most %d characters", domain.ErrInvalidInput, MaxTickerLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", fmt.Errorf("%w: ticker must contain letters A-Z only", domain.ErrInvalidInput)
		}
	}
	return Ticker(s), nil
}
