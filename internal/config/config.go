package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-photo-mentor/pkg/domain"
	"github.com/shouni/go-photo-mentor/pkg/workflow"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModels         = "gemini-2.5-flash,gemini-2.0-flash,gemini-2.0-flash-lite"
	DefaultTemperature    = "0.4"
	DefaultRequestTimeout = "90s"
	DefaultRateInterval   = "1s"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultFormat         = "text"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル候補）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey   string
	Models         []string
	Temperature    float32
	RequestTimeout time.Duration
	RateInterval   time.Duration
	OutputDir      string

	Options AnalyzeOptions
}

// AnalyzeOptions は CLI フラグから渡される実行時のパラメータなのだ。
type AnalyzeOptions struct {
	Images []string // 位置引数

	// 講評条件
	Mode           string // --mode
	Style          string // --style
	SelectionCount int    // --count
	Mentor         string // --mentor

	// 出力
	Format    string // --format
	OutputDir string // --output
	NoColor   bool   // --no-color

	// AI挙動設定
	Models      []string      // --model（複数指定で試行順）
	HTTPTimeout time.Duration // --http-timeout
}

// LoadDotEnv はカレントディレクトリの .env を読み込みます。無ければ何もしないのだ。
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() (*Config, error) {
	temperature, err := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", DefaultTemperature), 32)
	if err != nil {
		return nil, domain.NewConfigurationError("GEMINI_TEMPERATURE must be a number", err)
	}
	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", DefaultRequestTimeout))
	if err != nil {
		return nil, domain.NewConfigurationError("REQUEST_TIMEOUT must be a duration such as 90s", err)
	}
	interval, err := time.ParseDuration(getEnv("RATE_INTERVAL", DefaultRateInterval))
	if err != nil {
		return nil, domain.NewConfigurationError("RATE_INTERVAL must be a duration such as 1s", err)
	}

	return &Config{
		GeminiAPIKey:   envutil.GetEnv("GEMINI_API_KEY", ""),
		Models:         SplitModels(getEnv("GEMINI_MODELS", DefaultModels)),
		Temperature:    float32(temperature),
		RequestTimeout: timeout,
		RateInterval:   interval,
		OutputDir:      envutil.GetEnv("OUTPUT_DIR", ""),
	}, nil
}

// getEnv は空文字の値も未設定として既定値に置き換えるのだ。
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(envutil.GetEnv(key, fallback)); v != "" {
		return v
	}
	return fallback
}

// Validate はネットワークに触れる前に必須項目を確認するのだ。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return domain.NewConfigurationError("GEMINI_API_KEY is not set; the Gemini API cannot be used without it", nil)
	}
	if len(c.Models) == 0 {
		return domain.NewConfigurationError("no Gemini models configured", nil)
	}
	return nil
}

// Workflow はワークフロー層の設定に変換します。CLI で指定されたモデルを優先するのだ。
func (c *Config) Workflow() workflow.Config {
	wf := workflow.NewConfig(c.GeminiAPIKey)
	wf.Models = c.Models
	if len(c.Options.Models) > 0 {
		wf.Models = c.Options.Models
	}
	wf.Temperature = c.Temperature
	wf.RequestTimeout = c.RequestTimeout
	wf.RateInterval = c.RateInterval
	return wf
}

// Settings は CLI の文字列を検証済みの講評条件に変換するのだ。
func (o AnalyzeOptions) Settings() (domain.AnalysisSettings, error) {
	mode, err := domain.ParseMode(o.Mode)
	if err != nil {
		return domain.AnalysisSettings{}, err
	}
	style, err := domain.ParseStyle(o.Style)
	if err != nil {
		return domain.AnalysisSettings{}, err
	}
	mentor, err := domain.ParseMentor(o.Mentor)
	if err != nil {
		return domain.AnalysisSettings{}, err
	}
	return domain.AnalysisSettings{
		Mode:           mode,
		Style:          style,
		SelectionCount: domain.ClampSelectionCount(o.SelectionCount),
		Mentor:         mentor,
	}, nil
}

// SplitModels はカンマ区切りのモデル名を分割し、空要素と重複を取り除きます。
func SplitModels(s string) []string {
	seen := make(map[string]bool)
	var models []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		models = append(models, m)
	}
	return models
}

// String はログ出力用にAPIキーを伏せた表現を返すのだ。
func (c *Config) String() string {
	return fmt.Sprintf("models=%v timeout=%s rate=%s", c.Models, c.RequestTimeout, c.RateInterval)
}
