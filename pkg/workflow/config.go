package workflow

import (
	"time"
)

// デフォルト値の定義なのだ
const (
	DefaultTemperature    = float32(0.4)
	DefaultRequestTimeout = 90 * time.Second
	DefaultRateInterval   = time.Second
)

// DefaultModels は試行順に並べた既定の候補モデルです。
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// Config は講評ワークフローを動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	Models       []string
	Temperature  float32

	// --- Request Settings ---
	RequestTimeout time.Duration
	RateInterval   time.Duration

	// --- Image Settings ---
	ResizeThreshold int64
	MaxEdge         int
	JPEGQuality     int
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		Models:         append([]string(nil), DefaultModels...),
		Temperature:    DefaultTemperature,
		RequestTimeout: DefaultRequestTimeout,
		RateInterval:   DefaultRateInterval,
	}
}
