package dispatcher

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// NoTextPlaceholder はモデルがテキストを返さなかったときの代替結果です。
const NoTextPlaceholder = "The model returned no text for this request."

// Options は Dispatcher の挙動を決める設定です。
type Options struct {
	// Models は試行順に並べた候補モデル名です。
	Models []string
	// Timeout は1回の試行あたりの上限時間。0 なら無制限なのだ。
	Timeout time.Duration
	// Limiter は各試行の前に待機するレートリミッター。nil 可。
	Limiter *rate.Limiter
}

// Request は1回の講評依頼でモデルに送る内容です。
type Request struct {
	Prompt       string
	Images       []domain.EncodedImagePart
	SystemPrompt string
}

// Result はモデルの応答テキストと、応答したモデル名です。
type Result struct {
	Text     string
	Model    string
	Attempts int
}

// Dispatcher は候補モデルを順番に試し、一時的な失敗なら次のモデルへ切り替えるのだ。
type Dispatcher struct {
	aiClient gemini.GenerativeModel
	models   []string
	timeout  time.Duration
	limiter  *rate.Limiter
}

// New は Dispatcher を初期化します。
func New(aiClient gemini.GenerativeModel, opts Options) (*Dispatcher, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}

	models := make([]string, 0, len(opts.Models))
	for _, m := range opts.Models {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}

	return &Dispatcher{
		aiClient: aiClient,
		models:   models,
		timeout:  opts.Timeout,
		limiter:  opts.Limiter,
	}, nil
}

// Models は試行順のモデル一覧を返します。
func (d *Dispatcher) Models() []string {
	return append([]string(nil), d.models...)
}

// Dispatch は画像パーツとプロンプトを送信します。
// 試行は必ず逐次で、同時に飛んでいるリクエストは常に1つだけなのだ。
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	parts, err := buildParts(req)
	if err != nil {
		return nil, err
	}
	opts := gemini.GenerateOptions{SystemPrompt: req.SystemPrompt}

	var lastErr error
	for i, model := range d.models {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		logger := slog.With("model", model, "attempt", i+1, "candidates", len(d.models))
		logger.InfoContext(ctx, "Gemini に講評をリクエストするのだ", "images", len(req.Images))

		startTime := time.Now()
		resp, err := d.generate(ctx, model, parts, opts)
		if err == nil {
			logger.InfoContext(ctx, "講評を受け取ったのだ", "duration", time.Since(startTime).Round(time.Millisecond))
			return &Result{Text: extractText(resp), Model: model, Attempts: i + 1}, nil
		}

		// 呼び出し元のキャンセルはフォールバックせずにそのまま返すのだ
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		class := Classify(err)
		if class != ClassTransient {
			logger.WarnContext(ctx, "回復できないエラーなので中断するのだ", "class", class.String(), "error", err)
			return nil, domain.NewServiceError(domain.KindFatal, model, err)
		}

		logger.WarnContext(ctx, "一時的なエラーなので次のモデルを試すのだ", "error", err)
		lastErr = domain.NewServiceError(domain.KindTransient, model, err)
	}

	return nil, domain.NewUnavailableError(len(d.models), lastErr)
}

// generate は1回分の試行です。Timeout が設定されていれば試行ごとに期限を付けます。
func (d *Dispatcher) generate(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.aiClient.GenerateWithParts(ctx, model, parts, opts)
}

// buildParts は画像を先に、プロンプトを最後に並べるのだ。
func buildParts(req Request) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for i, img := range req.Images {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, domain.NewDecodeError(fmt.Sprintf("image #%d", i+1), err)
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: data}})
	}
	parts = append(parts, &genai.Part{Text: req.Prompt})
	return parts, nil
}

// extractText は最初の候補の最初のテキストパートを取り出します。
func extractText(resp *gemini.Response) string {
	if resp == nil {
		return NoTextPlaceholder
	}
	if raw := resp.RawResponse; raw != nil && len(raw.Candidates) > 0 {
		if c := raw.Candidates[0]; c != nil && c.Content != nil {
			for _, p := range c.Content.Parts {
				if p != nil && p.Text != "" {
					return p.Text
				}
			}
		}
	}
	if strings.TrimSpace(resp.Text) != "" {
		return resp.Text
	}
	return NoTextPlaceholder
}
