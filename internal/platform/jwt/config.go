// Package jwtmw はJWTの発行と検証ミドルウェアを提供します。
package jwtmw

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret はHMAC署名鍵を保持する環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration はトークン有効期間（time.ParseDuration形式）の環境変数名です。
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	defaultExpiration = 24 * time.Hour
)

// Config はJWTの設定を保持します。
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig は環境変数からJWTの設定を読み込みます。
func LoadConfig() Config {
	exp := defaultExpiration
	if s := os.Getenv(EnvKeyJWTExpiration); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			slog.Warn("invalid JWT_EXPIRATION, using default", "value", s, "default", defaultExpiration)
		} else {
			exp = d
		}
	}
	return Config{
		Secret:     os.Getenv(EnvKeyJWTSecret),
		Expiration: exp,
	}
}
