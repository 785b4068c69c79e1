package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shouni/go-photo-mentor/internal/builder"
	"github.com/shouni/go-photo-mentor/internal/config"
	"github.com/shouni/go-photo-mentor/pkg/domain"
	"github.com/shouni/go-photo-mentor/pkg/publisher"
	"github.com/shouni/go-photo-mentor/pkg/render"
	"github.com/shouni/go-photo-mentor/pkg/state"

	"github.com/mattn/go-isatty"
	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// Execute は、画像の読み込みから講評の表示・保存までを一通り実行するのだ。
func Execute(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return ExecuteWithClient(ctx, cfg, nil, out)
}

// ExecuteWithClient は Gemini クライアントを差し替えて実行します。nil なら設定から作るのだ。
func ExecuteWithClient(ctx context.Context, cfg *config.Config, aiClient gemini.GenerativeModel, out io.Writer) error {
	opts := cfg.Options

	// 送信前の検証はすべてここで済ませ、ネットワークには触れないのだ
	settings, err := opts.Settings()
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if err := domain.ValidateImageCount(settings, len(opts.Images)); err != nil {
		return err
	}

	appCtx, err := builder.BuildAppContext(ctx, cfg, aiClient)
	if err != nil {
		return err
	}

	// --- Phase 1: Load Phase (画像の読み込み) ---
	slog.InfoContext(ctx, "Phase 1: 画像を読み込むのだ...", "count", len(opts.Images))
	images, err := appCtx.Loader.LoadAll(ctx, opts.Images)
	if err != nil {
		return err
	}

	// 状態遷移はすべて reducer を通すのだ
	st := initialState(settings)
	st = state.Reduce(st, state.ImagesSelected{Images: images})
	if err := state.Validate(st); err != nil {
		return err
	}

	// --- Phase 2: Analyze Phase (講評) ---
	slog.InfoContext(ctx, "Phase 2: 講評をリクエストするのだ...",
		"mode", st.Settings.Mode,
		"style", st.Settings.Style,
		"bytes", images.TotalSize(),
		"models", appCtx.Manager.Models())
	st = state.Reduce(st, state.AnalysisStarted{})
	result, err := appCtx.Manager.Analyze(ctx, domain.AnalysisRequest{Settings: st.Settings, Images: st.Images})
	if err != nil {
		st = state.Reduce(st, state.AnalysisFailed{Err: err})
		slog.DebugContext(ctx, "講評に失敗したのだ", "kind", st.ErrorKind, "message", st.Error)
		return err
	}
	st = state.Reduce(st, state.AnalysisSucceeded{Result: result})
	result = *st.Result

	if err := render.Write(out, format, result, useColor(out, opts.NoColor)); err != nil {
		return fmt.Errorf("講評の出力に失敗しました: %w", err)
	}

	// --- Phase 3: Publish Phase (保存) ---
	if appCtx.Publisher == nil {
		return nil
	}
	slog.InfoContext(ctx, "Phase 3: 講評を保存するのだ...", "output", cfg.Options.OutputDir)
	_, err = appCtx.Publisher.Publish(ctx, publisher.Report{
		Settings: st.Settings,
		Images:   st.Images.Names(),
		Result:   result,
	}, publisher.Options{OutputDir: cfg.Options.OutputDir})
	return err
}

// initialState は CLI で選ばれた条件を reducer のイベントとして積み上げるのだ。
func initialState(settings domain.AnalysisSettings) state.AppState {
	st := state.Initial()
	st = state.Reduce(st, state.ModeSelected{Mode: settings.Mode})
	st = state.Reduce(st, state.StyleSelected{Style: settings.Style})
	st = state.Reduce(st, state.MentorSelected{Mentor: settings.Mentor})
	return state.Reduce(st, state.SelectionCountSet{Count: settings.SelectionCount})
}

// useColor は出力先が端末のときだけ ANSI の太字を使うのだ。
func useColor(out io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
