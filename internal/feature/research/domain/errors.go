// Package domain はresearchフィーチャーのドメインエラーを定義します。
package domain

import (
	"errors"
	"fmt"
)

// パイプラインの失敗分類です。各ステージの失敗は、オーケストレーターでちょうど1つの分類に変換されます。
var (
	// ErrInvalidInput はティッカーが形式ルールに違反している場合に返されます。
	ErrInvalidInput = errors.New("invalid input")

	// ErrTickerNotFound はマーケットデータプロバイダーがティッカーを認識しない場合に返されます。
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrUpstreamRateLimited はマーケットデータプロバイダーがレート制限中の場合に返されます。
	ErrUpstreamRateLimited = errors.New("upstream rate limited")

	// ErrAIRateLimited は言語モデルサービスがHTTP 429を返した場合に返されます。
	ErrAIRateLimited = errors.New("ai rate limited")

	// ErrAIQuotaExhausted は言語モデルサービスがHTTP 402を返した場合に返されます。
	ErrAIQuotaExhausted = errors.New("ai quota exhausted")

	// ErrAIRequestFailed はその他の言語モデル呼び出し失敗です。
	ErrAIRequestFailed = errors.New("ai request failed")

	// ErrAIEmptyResponse は成功応答に本文（completion content）が含まれない場合に返されます。
	ErrAIEmptyResponse = errors.New("ai empty response")

	// ErrAIResponseUnparseable はモデル出力をブリーフ構造にデコードできない場合に返されます。
	ErrAIResponseUnparseable = errors.New("ai response unparseable")

	// ErrConfiguration は必須の認証情報が設定されていない場合に返されます。
	ErrConfiguration = errors.New("configuration error")
)

// ProviderError は上流サービスの非成功レスポンスを診断用に保持します。
// Body はサーバー側のログにのみ出力し、クライアントには返しません。
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s http %d: %s", e.Provider, e.StatusCode, e.Body)
}

// ResearchError はパイプラインの失敗を表します。
// Kind は上記の分類エラーのいずれか1つで、errors.Is(err, domain.ErrXxx) で判定できます。
type ResearchError struct {
	Kind    error  // 分類（ErrInvalidInput など）
	Stage   string // 失敗したステージ
	Message string // クライアントに返してよいメッセージ
	Detail  string // サーバー側のみで保持する診断情報
	Err     error  // 原因
}

func (e *ResearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Stage)
}

// Unwrap は分類と原因の両方を返し、errors.Is / errors.As の探索対象にします。
func (e *ResearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// 保存済みレポートに関するエラーです。
var (
	// ErrReportNotFound は指定IDのレポートが存在しない、または他ユーザーのものである場合に返されます。
	ErrReportNotFound = errors.New("report not found")
)
