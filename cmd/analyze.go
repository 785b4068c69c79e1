package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-photo-mentor/internal/config"
	"github.com/shouni/go-photo-mentor/internal/pipeline"
	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/spf13/cobra"
)

var opts config.AnalyzeOptions

// analyzeCmd は、写真を Gemini に送って講評を表示するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] IMAGE...",
	Short: "写真を講評しますなのだ。",
	Long: `ローカルパス、gs://、http(s):// の画像を読み込み、講評を表示するのだ。
single と editing は1枚、curator は --count 枚以上が必要なのだよ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: analyzeCommand,
}

func init() {
	f := analyzeCmd.Flags()

	// --- 講評条件 ---
	f.StringVarP(&opts.Mode, "mode", "m", string(domain.ModeSingle), "講評モード（single, project, curator, editing）なのだ。")
	f.StringVarP(&opts.Style, "style", "s", string(domain.StyleTechnical), "講評の視点（technical, emotional）なのだ。")
	f.IntVarP(&opts.SelectionCount, "count", "n", domain.DefaultSelectionCount, "curator モードで選ぶ枚数（1〜20）なのだ。")
	f.StringVar(&opts.Mentor, "mentor", "", "講評者のペルソナ（ansel, cartier, leibovitz, salgado）なのだ。")

	// --- 出力 ---
	f.StringVarP(&opts.Format, "format", "f", config.DefaultFormat, "表示形式（text, markdown, json）なのだ。")
	f.StringVarP(&opts.OutputDir, "output", "o", "", "講評を保存するディレクトリ（ローカル or gs://...）なのだ。")
	f.BoolVar(&opts.NoColor, "no-color", false, "太字の ANSI 装飾を使わないのだ。")

	// --- AI挙動設定 ---
	f.StringSliceVar(&opts.Models, "model", nil, "使用する Gemini モデル名。複数指定すると順番に試すのだ。")
	f.DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "画像取得リクエストのタイムアウトなのだ。")
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 環境変数から基本設定をロードするのだ
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	opts.Images = args
	opts.Models = config.SplitModels(strings.Join(opts.Models, ","))
	cfg.Options = opts

	// 2. APIキーはネットワークに触れる前に確認するのだ
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.DebugContext(ctx, "講評パイプラインを起動するのだ！", "config", cfg.String(), "images", len(args))

	// 3. パイプラインを実行するのだ
	return pipeline.Execute(ctx, cfg, os.Stdout)
}
