package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-photo-mentor/internal/config"
	"github.com/shouni/go-photo-mentor/pkg/loader"
	"github.com/shouni/go-photo-mentor/pkg/publisher"
	"github.com/shouni/go-photo-mentor/pkg/workflow"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// BuildAppContext は設定から AppContext を組み立てるのだ。
// aiClient が nil なら設定のAPIキーから Gemini クライアントを作ります。
func BuildAppContext(ctx context.Context, cfg *config.Config, aiClient gemini.GenerativeModel) (*AppContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	outputDir := cfg.Options.OutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	var opener loader.Opener
	var remoteWriter publisher.Writer
	if needsGCS(cfg.Options.Images, outputDir) {
		factory, err := gcsfactory.NewGCSClientFactory(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
		}
		reader, err := factory.NewInputReader()
		if err != nil {
			slog.WarnContext(ctx, "InputReaderの取得に失敗しました。gs:// の画像は読めません", "error", err)
		} else {
			opener = reader
		}
		writer, err := factory.NewOutputWriter()
		if err != nil {
			slog.WarnContext(ctx, "OutputWriterの取得に失敗しました。保存機能が制限される可能性があります", "error", err)
		} else {
			remoteWriter = writer
		}
	}

	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:   cfg.Workflow(),
		AIClient: aiClient,
	})
	if err != nil {
		return nil, err
	}

	appCtx := &AppContext{
		Config:  cfg,
		Loader:  loader.New(httpClient, opener),
		Manager: manager,
	}

	if outputDir != "" {
		var w publisher.Writer = publisher.LocalWriter{}
		if publisher.IsRemote(outputDir) {
			if remoteWriter == nil {
				return nil, fmt.Errorf("GCS への保存先 %s を扱えません", outputDir)
			}
			w = remoteWriter
		}
		pub, err := publisher.NewCritiquePublisher(w)
		if err != nil {
			return nil, err
		}
		appCtx.Publisher = pub
		cfg.Options.OutputDir = outputDir
	}

	return appCtx, nil
}

// needsGCS は gs:// の入力か出力があるときだけ GCS クライアントを作るためのものなのだ。
func needsGCS(images []string, outputDir string) bool {
	if publisher.IsRemote(outputDir) {
		return true
	}
	for _, ref := range images {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), "gs://") {
			return true
		}
	}
	return false
}
