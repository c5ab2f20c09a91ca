package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_research/internal/feature/research/adapters/aigateway"
	"company_research/internal/feature/research/domain"
)

func TestNewSynthesizer_Provider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
	}{
		{name: "default is gateway", provider: ""},
		{name: "explicit gateway", provider: "aigateway"},
		{name: "unknown falls back to gateway", provider: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKeyAIProvider, tt.provider)
			t.Setenv("AI_GATEWAY_API_KEY", "k")

			s := NewSynthesizer(context.Background())
			_, ok := s.(*aigateway.Client)
			assert.True(t, ok, "expected gateway client, got %T", s)
		})
	}
}

func TestUnavailableSynthesizer(t *testing.T) {
	s := unavailableSynthesizer{err: domain.ErrConfiguration}

	out, err := s.Synthesize(context.Background(), "system", "prompt")
	assert.Empty(t, out)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNewRevocationStore_WithoutRedis(t *testing.T) {
	assert.Nil(t, NewRevocationStore(nil))
}

func TestNewAnalyzeLimiter(t *testing.T) {
	t.Setenv(EnvKeyAnalyzeRequestsPerMinute, "")
	assert.Nil(t, NewAnalyzeLimiter())

	t.Setenv(EnvKeyAnalyzeRequestsPerMinute, "2")
	l := NewAnalyzeLimiter()
	require.NotNil(t, l)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
