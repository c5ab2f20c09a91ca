// Package ratelimiter はリクエストの頻度を制限します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"company_research/internal/api"
)

// Limiter は呼び出しを今すぐ行ってよいかを判定します。
type Limiter interface {
	Allow() bool
}

// NewPerMinute は1分あたりperMinute回までの呼び出しを許可するLimiterを生成します。
// バーストはperMinute回です。perMinuteが0以下の場合は制限しません。
func NewPerMinute(perMinute int) Limiter {
	if perMinute <= 0 {
		return unlimited{}
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

type unlimited struct{}

func (unlimited) Allow() bool { return true }

// PerMinuteFromEnv は環境変数keyから1分あたりの上限を読み込みます。
// 未設定・不正値の場合は0（無制限）を返します。
func PerMinuteFromEnv(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid request limit; limiting disabled", "key", key, "value", v)
		return 0
	}
	return n
}

// Middleware は上限を超えたリクエストを429で拒否します。
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			slog.Warn("request limit exceeded", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
