package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"company_research/internal/feature/research/domain"
)

func TestMapError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantKind error
		wantCode int
	}{
		{name: "rate limited", err: genai.APIError{Code: 429, Message: "Resource exhausted", Status: "RESOURCE_EXHAUSTED"}, wantKind: domain.ErrAIRateLimited, wantCode: 429},
		{name: "payment required", err: genai.APIError{Code: 402, Message: "billing"}, wantKind: domain.ErrAIQuotaExhausted, wantCode: 402},
		{name: "server error", err: genai.APIError{Code: 500, Message: "internal"}, wantKind: domain.ErrAIRequestFailed, wantCode: 500},
		{name: "wrapped pointer", err: fmt.Errorf("call: %w", &genai.APIError{Code: 429}), wantKind: domain.ErrAIRateLimited, wantCode: 429},
		{name: "transport error", err: errors.New("connection refused"), wantKind: domain.ErrAIRequestFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(tc.err)
			assert.ErrorIs(t, got, tc.wantKind)

			var perr *domain.ProviderError
			if tc.wantCode == 0 {
				assert.False(t, errors.As(got, &perr))
				return
			}
			require.True(t, errors.As(got, &perr))
			assert.Equal(t, tc.wantCode, perr.StatusCode)
			assert.Equal(t, providerName, perr.Provider)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("gateway style model falls back to default", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("AI_MODEL", "google/gemini-2.5-flash")

		cfg := LoadConfig()
		assert.Equal(t, "g", cfg.APIKey)
		assert.Equal(t, DefaultModel, cfg.Model)
	})

	t.Run("explicit model kept", func(t *testing.T) {
		t.Setenv("AI_MODEL", "gemini-2.5-pro")
		assert.Equal(t, "gemini-2.5-pro", LoadConfig().Model)
	})
}

func TestGeminiSynthesizer_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"brief\":{}}"}]}}]}`))
	}))
	defer server.Close()

	s, err := NewGeminiSynthesizer(context.Background(), Config{APIKey: "k", Model: "gemini-test", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	out, err := s.Synthesize(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"brief":{}}`, out)
}

func TestGeminiSynthesizer_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	s, err := NewGeminiSynthesizer(context.Background(), Config{APIKey: "k", Model: "gemini-test", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "system", "prompt")
	assert.ErrorIs(t, err, domain.ErrAIEmptyResponse)
}
