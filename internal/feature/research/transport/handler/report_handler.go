package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"company_research/internal/api"
	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/transport/http/dto"
	jwtmw "company_research/internal/platform/jwt"
)

// ReportUsecase は保存済みレポートのユースケースインターフェースを定義します。
type ReportUsecase interface {
	Save(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error)
	List(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error)
	Get(ctx context.Context, userID uint, id string) (*entity.SavedReport, error)
	Delete(ctx context.Context, userID uint, id string) error
}

// ReportHandler は保存済みレポートのHTTPリクエストを処理します。
// すべてのエンドポイントは jwtmw.AuthRequired の後段で使用します。
type ReportHandler struct {
	uc ReportUsecase
}

// NewReportHandler はReportHandlerの新しいインスタンスを生成します。
func NewReportHandler(uc ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Save は分析結果を保存します。
//
// エンドポイント: POST /v1/reports
func (h *ReportHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SaveReportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("save report validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	saved, err := h.uc.Save(c.Request.Context(), userID, req.ToEntity())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			slog.Warn("save report rejected", "error", err, "user_id", userID)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid report"})
			return
		}
		slog.Error("failed to save report", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save report"})
		return
	}

	slog.Info("report saved", "id", saved.ID, "ticker", saved.Ticker, "user_id", userID)
	c.JSON(http.StatusCreated, dto.SaveReportRes{ID: saved.ID, CreatedAt: saved.CreatedAt})
}

// List はユーザーの保存済みレポートを新しい順に返します。
//
// エンドポイント: GET /v1/reports?limit=20
func (h *ReportHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	reports, err := h.uc.List(c.Request.Context(), userID, limit)
	if err != nil {
		slog.Error("failed to list reports", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list reports"})
		return
	}

	out := make([]dto.SavedReportRes, 0, len(reports))
	for i := range reports {
		out = append(out, dto.FromSavedReport(&reports[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は保存済みレポートを1件返します。
//
// エンドポイント: GET /v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	report, err := h.uc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeLookupError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.FromSavedReport(report))
}

// Delete は保存済みレポートを削除します。
//
// エンドポイント: DELETE /v1/reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeLookupError(c, err, userID)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReportHandler) writeLookupError(c *gin.Context, err error, userID uint) {
	if errors.Is(err, domain.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "report not found"})
		return
	}
	slog.Error("report lookup failed", "error", err, "user_id", userID, "id", c.Param("id"))
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

// currentUser は認証ミドルウェアが設定したユーザーIDを取得します。取得できない場合は401を返します。
func currentUser(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	userID, ok := v.(uint)
	if !exists || !ok || userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return userID, true
}
