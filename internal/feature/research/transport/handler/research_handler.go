// Package handler はresearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_research/internal/api"
	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/transport/http/dto"
)

// ResearchUsecase は企業分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ResearchUsecase interface {
	Analyze(ctx context.Context, rawTicker string) (*entity.CompanyReport, error)
}

// ResearchHandler は企業分析のHTTPリクエストを処理します。
type ResearchHandler struct {
	uc ResearchUsecase
}

// NewResearchHandler はResearchHandlerの新しいインスタンスを生成します。
func NewResearchHandler(uc ResearchUsecase) *ResearchHandler {
	return &ResearchHandler{uc: uc}
}

// Analyze はティッカーの企業分析レポートを生成します。
//
// エンドポイント: POST /v1/research/analyze
// Content-Type: application/json
func (h *ResearchHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("analyze request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid ticker provided"})
		return
	}

	report, err := h.uc.Analyze(c.Request.Context(), req.Ticker)
	if err != nil {
		status, message := errorResponse(err)
		slog.Warn("analysis request failed", "ticker", req.Ticker, "status", status, "error", err, "remote_addr", c.ClientIP())
		c.JSON(status, api.ErrorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, dto.FromReport(report))
}

// statusByKind は失敗分類ごとのHTTPステータスです。
var statusByKind = []struct {
	kind   error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrTickerNotFound, http.StatusNotFound},
	{domain.ErrUpstreamRateLimited, http.StatusTooManyRequests},
	{domain.ErrAIRateLimited, http.StatusTooManyRequests},
	{domain.ErrAIQuotaExhausted, http.StatusPaymentRequired},
	{domain.ErrConfiguration, http.StatusInternalServerError},
	{domain.ErrAIRequestFailed, http.StatusInternalServerError},
	{domain.ErrAIEmptyResponse, http.StatusInternalServerError},
	{domain.ErrAIResponseUnparseable, http.StatusInternalServerError},
}

// errorResponse はユースケースのエラーをHTTPステータスと公開メッセージに変換します。
func errorResponse(err error) (int, string) {
	message := "Internal server error"
	var rerr *domain.ResearchError
	if errors.As(err, &rerr) && rerr.Message != "" {
		message = rerr.Message
	}
	for _, s := range statusByKind {
		if errors.Is(err, s.kind) {
			return s.status, message
		}
	}
	return http.StatusInternalServerError, message
}
