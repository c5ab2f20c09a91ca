// Package logging はアプリケーション全体で使用するslogロガーを構成します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvKeyLogLevel はログレベル（debug/info/warn/error）を指定する環境変数です。
	EnvKeyLogLevel = "LOG_LEVEL"
	// EnvKeyLogFormat は出力形式（json/text）を指定する環境変数です。
	EnvKeyLogFormat = "LOG_FORMAT"
)

// Config はロガーの設定です。
type Config struct {
	Level  slog.Level
	Format string
}

// LoadConfig は環境変数からロガー設定を読み込みます。
// 未設定や不正な値の場合はinfoレベル・JSON形式になります。
func LoadConfig() Config {
	return Config{
		Level:  parseLevel(os.Getenv(EnvKeyLogLevel)),
		Format: parseFormat(os.Getenv(EnvKeyLogFormat)),
	}
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFormat(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "text") {
		return "text"
	}
	return "json"
}

// New は設定に従ってwへ出力するロガーを生成します。
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup は標準エラー出力へのロガーをデフォルトとして登録し、返します。
func Setup(cfg Config) *slog.Logger {
	logger := New(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}
