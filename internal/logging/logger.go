// Package logging はレベル付きの構造化ロガーを生成する
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options はロガーの設定
type Options struct {
	Level           string    // debug, info, warn, error
	Output          io.Writer // 既定は os.Stderr
	Prefix          string    // コンポーネント名
	TimeFormat      string
	ReportTimestamp bool
}

// DefaultOptions はデフォルトの設定を返す
func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Output:          os.Stderr,
		Prefix:          "camprobe",
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
	}
}

// ParseLevel は文字列のレベルを log.Level に変換する。不明な値は info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New は設定からロガーを作成する
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		TimeFormat:      opts.TimeFormat,
		ReportTimestamp: opts.ReportTimestamp,
	})
}

// Discard は出力を捨てるロガーを返す（テストや未設定時に使用）
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ForCamera はカメラ名をキーとして付与したロガーを返す
func ForCamera(logger *log.Logger, name string) *log.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With("camera", name)
}
