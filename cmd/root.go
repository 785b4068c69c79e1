package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-photo-mentor/internal/config"
	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/spf13/cobra"
)

const appName = "photo-mentor"

var verbose bool

// rootCmd は、すべてのサブコマンドの親になるのだ。
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Gemini に写真の講評をしてもらう CLI なのだ。",
	Long: `1枚の写真、シリーズ、選定、レタッチの4つのモードで写真を講評するのだ。
技術的な視点と感情的な視点を切り替えられるのだよ。`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを表示するのだ。")
	rootCmd.AddCommand(analyzeCmd, modesCmd)
}

// preRunAppE は、コマンド実行前にログと .env の準備をするのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config.LoadDotEnv()
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// エラーは利用者向けの文言に変換して標準エラーに出すのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode は入力や設定の誤りとサービス側の失敗を区別するのだ。
func exitCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindConfiguration:
		return 2
	default:
		return 1
	}
}
