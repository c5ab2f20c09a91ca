package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/transport/handler"
	jwtmw "company_research/internal/platform/jwt"
)

// mockReportUsecase はReportUsecaseインターフェースのモック実装です。
type mockReportUsecase struct {
	SaveFunc   func(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error)
	ListFunc   func(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error)
	GetFunc    func(ctx context.Context, userID uint, id string) (*entity.SavedReport, error)
	DeleteFunc func(ctx context.Context, userID uint, id string) error
}

func (m *mockReportUsecase) Save(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error) {
	return m.SaveFunc(ctx, userID, report)
}

func (m *mockReportUsecase) List(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error) {
	return m.ListFunc(ctx, userID, limit)
}

func (m *mockReportUsecase) Get(ctx context.Context, userID uint, id string) (*entity.SavedReport, error) {
	return m.GetFunc(ctx, userID, id)
}

func (m *mockReportUsecase) Delete(ctx context.Context, userID uint, id string) error {
	return m.DeleteFunc(ctx, userID, id)
}

// newReportRouter は認証済みユーザーを模擬するミドルウェア付きのルーターを生成します。
func newReportRouter(uc handler.ReportUsecase, userID uint) *gin.Engine {
	h := handler.NewReportHandler(uc)
	router := gin.New()
	g := router.Group("/v1/reports", func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	})
	g.POST("", h.Save)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
	return router
}

const saveBody = `{
	"ticker": "AAPL",
	"companyName": "Apple Inc",
	"brief": {"overview":"o","businessModel":"b","financials":"f","risks":["r"],"opportunities":["p"]},
	"comparables": [{"companyName":"Microsoft","ticker":"MSFT","similarityScore":80,"reasoning":"x","keyMetrics":{"marketCap":"$3T","peRatio":"35","sector":"Tech"}}]
}`

func TestReportHandler_Save(t *testing.T) {
	gin.SetMode(gin.TestMode)
	created := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name           string
		userID         uint
		body           string
		saveFunc       func(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success: report saved",
			userID: 5,
			body:   saveBody,
			saveFunc: func(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error) {
				assert.Equal(t, uint(5), userID)
				assert.Equal(t, entity.Ticker("AAPL"), report.Ticker)
				assert.Equal(t, "b", report.Brief.BusinessModel)
				require.Len(t, report.Comparables, 1)
				saved := *report
				saved.ID = "3f1c9a52-8e0c-4c47-9f0e-1b2d3c4e5f60"
				saved.CreatedAt = created
				return &saved, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"3f1c9a52-8e0c-4c47-9f0e-1b2d3c4e5f60","createdAt":"2026-05-06T07:08:09Z"}`,
		},
		{
			name:           "error: unauthenticated",
			body:           saveBody,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"unauthorized"}`,
		},
		{
			name:           "error: missing company name",
			userID:         5,
			body:           `{"ticker":"AAPL"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:   "error: usecase rejects report",
			userID: 5,
			body:   saveBody,
			saveFunc: func(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error) {
				return nil, domain.ErrInvalidInput
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid report"}`,
		},
		{
			name:   "error: storage failure",
			userID: 5,
			body:   saveBody,
			saveFunc: func(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to save report"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newReportRouter(&mockReportUsecase{SaveFunc: tt.saveFunc}, tt.userID)

			req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestReportHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		wantLimit      int
		expectedStatus int
	}{
		{name: "success: default limit", query: "", wantLimit: 0, expectedStatus: http.StatusOK},
		{name: "success: explicit limit", query: "?limit=5", wantLimit: 5, expectedStatus: http.StatusOK},
		{name: "error: non numeric limit", query: "?limit=abc", expectedStatus: http.StatusBadRequest},
		{name: "error: zero limit", query: "?limit=0", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			uc := &mockReportUsecase{
				ListFunc: func(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error) {
					calls++
					assert.Equal(t, tt.wantLimit, limit)
					return []entity.SavedReport{{ID: "a", Ticker: "AAPL", CompanyName: "Apple Inc"}}, nil
				},
			}
			router := newReportRouter(uc, 1)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, 0, calls)
				return
			}
			var body []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Len(t, body, 1)
			assert.Equal(t, "AAPL", body[0]["ticker"])
			assert.Equal(t, []any{}, body[0]["comparables"])
		})
	}
}

func TestReportHandler_GetAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const id = "3f1c9a52-8e0c-4c47-9f0e-1b2d3c4e5f60"

	t.Run("success: get own report", func(t *testing.T) {
		uc := &mockReportUsecase{
			GetFunc: func(ctx context.Context, userID uint, gotID string) (*entity.SavedReport, error) {
				assert.Equal(t, uint(9), userID)
				assert.Equal(t, id, gotID)
				return &entity.SavedReport{ID: id, Ticker: "MSFT", CompanyName: "Microsoft"}, nil
			},
		}
		w := httptest.NewRecorder()
		newReportRouter(uc, 9).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports/"+id, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"companyName":"Microsoft"`)
	})

	t.Run("error: report of another user is not found", func(t *testing.T) {
		uc := &mockReportUsecase{
			GetFunc: func(ctx context.Context, userID uint, gotID string) (*entity.SavedReport, error) {
				return nil, domain.ErrReportNotFound
			},
		}
		w := httptest.NewRecorder()
		newReportRouter(uc, 9).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/reports/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"report not found"}`, w.Body.String())
	})

	t.Run("success: delete", func(t *testing.T) {
		uc := &mockReportUsecase{
			DeleteFunc: func(ctx context.Context, userID uint, gotID string) error { return nil },
		}
		w := httptest.NewRecorder()
		newReportRouter(uc, 9).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/reports/"+id, nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("error: delete storage failure", func(t *testing.T) {
		uc := &mockReportUsecase{
			DeleteFunc: func(ctx context.Context, userID uint, gotID string) error { return errors.New("db down") },
		}
		w := httptest.NewRecorder()
		newReportRouter(uc, 9).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/reports/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
