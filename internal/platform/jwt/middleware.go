package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ginコンテキストに設定するキーです。
const (
	ContextUserID      = "userID"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// RevocationChecker はトークンが失効済みかを判定します。
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// revoked が nil の場合は失効チェックを行いません。
func AuthRequired(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			slog.Error("JWT_SECRET is not set")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature (only HMAC allowed)
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Extract claims (payload)
		sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
		if !ok || sub <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		jti, _ := claims["jti"].(string)

		// 5. Reject tokens revoked by logout
		if revoked != nil && jti != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				slog.Error("token revocation check failed", "error", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication unavailable"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}

		c.Set(ContextUserID, uint(sub))
		c.Set(ContextTokenID, jti)
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			c.Set(ContextTokenExpiry, exp.Time)
		}

		// 6. Pass control to the next handler
		c.Next()
	}
}

// TokenFromContext はミドルウェアが設定したトークンIDと有効期限を返します。
func TokenFromContext(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ContextTokenID)
	exp := c.GetTime(ContextTokenExpiry)
	return jti, exp
}
