package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/cache"
	"github.com/shouni/go-photo-mentor/pkg/dispatcher"
	"github.com/shouni/go-photo-mentor/pkg/domain"
	"github.com/shouni/go-photo-mentor/pkg/encoder"
	"github.com/shouni/go-photo-mentor/pkg/prompts"
	"github.com/shouni/go-photo-mentor/pkg/render"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
type ManagerArgs struct {
	Config Config
	// AIClient が nil なら Config.GeminiAPIKey からクライアントを作るのだ。
	AIClient gemini.GenerativeModel
	// Composer が nil ならテンプレート表を使う既定の Composer になります。
	Composer prompts.Composer
	// Cache が nil ならプロセス内キャッシュを新規作成します。
	Cache *cache.ResponseCache
}

// Manager は講評の一連の工程（検証・エンコード・プロンプト構築・送信・整形）を束ねます。
type Manager struct {
	cfg        Config
	encoder    *encoder.Encoder
	composer   prompts.Composer
	dispatcher *dispatcher.Dispatcher
	cache      *cache.ResponseCache
}

// New は設定を基に新しい Manager を初期化します。
// APIキーが無いときはネットワークに触れる前に構成エラーを返すのだ。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	cfg := args.Config

	aiClient := args.AIClient
	if aiClient == nil {
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, domain.NewConfigurationError("GEMINI_API_KEY is not set", nil)
		}
		c, err := initializeAIClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		aiClient = c
	}

	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels
	}

	var limiter *rate.Limiter
	if cfg.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), 1)
	}

	d, err := dispatcher.New(aiClient, dispatcher.Options{
		Models:  models,
		Timeout: cfg.RequestTimeout,
		Limiter: limiter,
	})
	if err != nil {
		return nil, domain.NewConfigurationError("invalid model list", err)
	}

	composer := args.Composer
	if composer == nil {
		composer = prompts.NewTableComposer()
	}

	respCache := args.Cache
	if respCache == nil {
		respCache = cache.New()
	}

	return &Manager{
		cfg: cfg,
		encoder: encoder.New(encoder.Options{
			ResizeThreshold: cfg.ResizeThreshold,
			MaxEdge:         cfg.MaxEdge,
			Quality:         cfg.JPEGQuality,
		}),
		composer:   composer,
		dispatcher: d,
		cache:      respCache,
	}, nil
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, cfg Config) (gemini.GenerativeModel, error) {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	clientConfig := gemini.Config{
		APIKey:      cfg.GeminiAPIKey,
		Temperature: genai.Ptr(temperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, domain.NewConfigurationError("AIクライアントの初期化に失敗しました", err)
	}
	return aiClient, nil
}

// Models は試行順の候補モデルを返します。
func (m *Manager) Models() []string {
	return m.dispatcher.Models()
}

// CacheStats はキャッシュのヒット数とミス数を返すのだ。
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Analyze は画像と設定から講評を取得します。
// 同じ画像と設定の組み合わせはキャッシュから返し、モデルへは送り直さないのだ。
func (m *Manager) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	settings := req.Settings
	settings.SelectionCount = domain.ClampSelectionCount(settings.SelectionCount)

	if err := domain.ValidateImageCount(settings, len(req.Images)); err != nil {
		return domain.AnalysisResult{}, err
	}

	logger := slog.With("mode", settings.Mode, "style", settings.Style, "images", len(req.Images))
	key := cache.Key(req.Images, settings)

	result, err := m.cache.GetOrCompute(ctx, key, func(flightCtx context.Context) (domain.AnalysisResult, error) {
		return m.run(flightCtx, settings, req.Images)
	})
	if err != nil {
		logger.ErrorContext(ctx, "講評に失敗したのだ", "error", err)
		return domain.AnalysisResult{}, err
	}

	if result.FromCache {
		logger.InfoContext(ctx, "キャッシュから講評を返すのだ", "model", result.Model)
	}
	result.Blocks = render.Render(result.Text)
	return result, nil
}

// run はキャッシュに無かったときの実処理です。
func (m *Manager) run(ctx context.Context, settings domain.AnalysisSettings, images domain.ImageSet) (domain.AnalysisResult, error) {
	parts, err := m.encoder.EncodeAll(ctx, images)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	resized := 0
	for _, p := range parts {
		if p.Resized {
			resized++
		}
	}
	slog.DebugContext(ctx, "画像のエンコードが完了したのだ", "count", len(parts), "resized", resized)

	prompt := m.composer.Compose(settings.Mode, settings.Style, settings.SelectionCount, len(images))

	res, err := m.dispatcher.Dispatch(ctx, dispatcher.Request{
		Prompt:       prompt,
		Images:       parts,
		SystemPrompt: prompts.SystemPrompt(settings.Mentor),
	})
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("講評リクエストに失敗しました: %w", err)
	}

	return domain.AnalysisResult{Text: res.Text, Model: res.Model}, nil
}
