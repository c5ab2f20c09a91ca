// Package router はHTTPルーティングを定義します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "company_research/internal/feature/auth/transport/handler"
	researchhandler "company_research/internal/feature/research/transport/handler"
	jwtmw "company_research/internal/platform/jwt"
	"company_research/internal/platform/http/handler"
	"company_research/internal/shared/ratelimiter"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Research *researchhandler.ResearchHandler
	Reports  *researchhandler.ReportHandler
	// Readiness は /readyz の依存先です。
	Readiness map[string]handler.Pinger
	// Revocations がnilの場合、失効チェックは行いません。
	Revocations jwtmw.RevocationChecker
	// AnalyzeLimiter がnilの場合、分析リクエスト数は制限しません。
	AnalyzeLimiter ratelimiter.Limiter
}

// NewRouter はGinエンジンを生成し、全ルートを登録します。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから直接呼び出されるため、全オリジンを許可
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		MaxAge:          12 * time.Hour,
	}))

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(h.Readiness))
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	v1 := r.Group("/v1")
	analyze := []gin.HandlerFunc{h.Research.Analyze}
	if h.AnalyzeLimiter != nil {
		analyze = append([]gin.HandlerFunc{ratelimiter.Middleware(h.AnalyzeLimiter)}, analyze...)
	}
	v1.POST("/research/analyze", analyze...)

	// 認証必須のルート
	authRequired := jwtmw.AuthRequired(h.Revocations)
	r.POST("/logout", authRequired, h.Auth.Logout)

	reports := v1.Group("/reports")
	reports.Use(authRequired)
	{
		reports.POST("", h.Reports.Save)
		reports.GET("", h.Reports.List)
		reports.GET("/:id", h.Reports.Get)
		reports.DELETE("/:id", h.Reports.Delete)
	}

	return r
}
