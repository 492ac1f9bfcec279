package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server  ServerConfig
	Cameras CamerasConfig
	Ping    PingConfig
	Log     LogConfig
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string // リッスンするホスト
	Port int    // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// CamerasConfig はカメラ設定ファイルの設定
type CamerasConfig struct {
	File  string // カメラ一覧の YAML ファイル
	Watch bool   // ファイル変更時に再読み込みするか
}

// PingConfig は到達性確認 API の設定
type PingConfig struct {
	DefaultTimeout int     // timeout 未指定時の秒数
	Rate           float64 // 1秒あたりに許可する確認回数
	Burst          int
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level string
}

// Load は .env と環境変数から設定を読み込む
func Load() (*Config, error) {
	// .env は任意。存在しなければ環境変数のみを使う
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env の読み込みに失敗: %w", err)
	}

	return FromEnv()
}

// FromEnv は環境変数のみから設定を作成する
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsIntOrDefault("PORT", 8080),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Cameras: CamerasConfig{
			File:  getEnvOrDefault("CAMERAS_FILE", "cameras.yaml"),
			Watch: getEnvAsBoolOrDefault("WATCH_CAMERAS", true),
		},
		Ping: PingConfig{
			DefaultTimeout: getEnvAsIntOrDefault("PING_TIMEOUT", 1),
			Rate:           getEnvAsFloatOrDefault("PING_RATE", 5),
			Burst:          getEnvAsIntOrDefault("PING_BURST", 10),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	// 1秒未満のタイムアウトは1秒に切り上げる
	if cfg.Ping.DefaultTimeout < 1 {
		cfg.Ping.DefaultTimeout = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// 0 はテスト用の任意ポート
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if strings.TrimSpace(c.Cameras.File) == "" {
		return errors.New("カメラ設定ファイルが指定されていません")
	}

	if c.Ping.DefaultTimeout < 1 {
		return fmt.Errorf("無効なタイムアウト: %d", c.Ping.DefaultTimeout)
	}
	if c.Ping.Rate <= 0 {
		return fmt.Errorf("無効なレート: %v", c.Ping.Rate)
	}
	if c.Ping.Burst < 1 {
		return fmt.Errorf("無効なバースト: %d", c.Ping.Burst)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("無効なログレベル: %s", c.Log.Level)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
