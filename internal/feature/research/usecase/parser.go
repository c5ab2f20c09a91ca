package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
)

const codeFence = "```"

// validate はモデル出力の構造（必須フィールドと配列の非空）を検証します。
var validate = validator.New(validator.WithRequiredStructEnabled())

// analysisPayload はモデルが返すJSONのトップレベル構造です。
type analysisPayload struct {
	Brief       *entity.AnalysisBrief      `json:"brief" validate:"required"`
	Comparables []entity.ComparableCompany `json:"comparables" validate:"required"`
}

// ParseError はモデル出力のデコード失敗を表します。
// Cleaned はフェンス除去後のテキストで、サーバー側の診断にのみ使用します。
type ParseError struct {
	Cleaned string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", domain.ErrAIResponseUnparseable, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{domain.ErrAIResponseUnparseable, e.Err}
}

// StripCodeFence は前後の空白を除去し、テキスト全体が ``` で始まり ``` で終わる場合に限り、
// その2つのフェンスと開始フェンス直後の言語タグだけを取り除きます。それ以外の整形は行いません。
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) < 2*len(codeFence) || !strings.HasPrefix(s, codeFence) || !strings.HasSuffix(s, codeFence) {
		return s
	}
	inner := s[len(codeFence) : len(s)-len(codeFence)]

	i := 0
	for i < len(inner) && isLanguageTagChar(inner[i]) {
		i++
	}
	return strings.TrimSpace(inner[i:])
}

func isLanguageTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '+'
}

// ParseAnalysis はモデルの生テキストを AnalysisBrief と ComparableCompany の列にデコードします。
// 失敗時は *ParseError（domain.ErrAIResponseUnparseable）を返します。部分的な復元は行いません。
func ParseAnalysis(raw string) (*entity.Analysis, error) {
	cleaned := StripCodeFence(raw)

	var p analysisPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, &ParseError{Cleaned: cleaned, Err: err}
	}
	if err := validate.Struct(p); err != nil {
		return nil, &ParseError{Cleaned: cleaned, Err: err}
	}

	return &entity.Analysis{
		Brief:       *p.Brief,
		Comparables: p.Comparables,
	}, nil
}
