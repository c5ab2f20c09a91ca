package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_research/internal/feature/auth/domain"
	jwtmw "company_research/internal/platform/jwt"
)

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	SignupFunc  func(ctx context.Context, email, password string) error
	LoginFunc   func(ctx context.Context, email, password string) (string, time.Duration, error)
	LogoutFunc  func(ctx context.Context, jti string, expiresAt time.Time) error
	SignupCalls int
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	m.SignupCalls++
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, time.Duration, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", 0, domain.ErrInvalidCredentials
}

func (m *mockAuthUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, jti, expiresAt)
	}
	return nil
}

func postJSON(t *testing.T, router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"ok"}`,
			expectedCalls:  1,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "test@example.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"email": "existing@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error {
				return domain.ErrUserAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"signup failed"}`,
			expectedCalls:  1,
		},
		{
			name:        "failure: storage error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			router := gin.New()
			router.POST("/signup", NewAuthHandler(mockUC).Signup)

			w := postJSON(t, router, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, mockUC.SignupCalls)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, email, password string) (string, time.Duration, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: token issued",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, time.Duration, error) {
				return "jwt-token", 24 * time.Hour, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"jwt-token","expires_in":86400}`,
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "failure: wrong credentials",
			requestBody:    gin.H{"email": "test@example.com", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			name:        "failure: internal error",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, time.Duration, error) {
				return "", 0, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/login", NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc}).Login)

			w := postJSON(t, router, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		jti            string
		logoutErr      error
		expectedStatus int
	}{
		{name: "success: token revoked", jti: "abc", expectedStatus: http.StatusOK},
		{name: "failure: token without id", jti: "", logoutErr: domain.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "failure: revocation store down", jti: "abc", logoutErr: errors.New("redis down"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{
				LogoutFunc: func(ctx context.Context, jti string, expiresAt time.Time) error {
					assert.Equal(t, tt.jti, jti)
					assert.Equal(t, expiry, expiresAt)
					return tt.logoutErr
				},
			}
			router := gin.New()
			router.POST("/logout", func(c *gin.Context) {
				c.Set(jwtmw.ContextTokenID, tt.jti)
				c.Set(jwtmw.ContextTokenExpiry, expiry)
				c.Next()
			}, NewAuthHandler(uc).Logout)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
