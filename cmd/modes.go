package cmd

import (
	"fmt"
	"io"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/spf13/cobra"
)

// modesCmd は、使えるモード・視点・ペルソナを一覧するのだ。
var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "講評モードと視点の一覧を表示しますなのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printModes(cmd.OutOrStdout())
	},
}

var modeDescriptions = map[domain.AnalysisMode]string{
	domain.ModeSingle:  "1枚の写真を詳しく講評する (1 image)",
	domain.ModeProject: "シリーズとしてのまとまりを講評する (1+ images)",
	domain.ModeCurator: "候補から --count 枚を選ぶ (>= count images)",
	domain.ModeEditing: "レタッチの方針を提案する (1 image)",
}

func printModes(w io.Writer) error {
	fmt.Fprintln(w, "modes:")
	for _, m := range domain.AllModes {
		fmt.Fprintf(w, "  %-8s %s\n", m, modeDescriptions[m])
	}
	fmt.Fprintln(w, "styles:")
	for _, s := range domain.AllStyles {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w, "mentors:")
	for _, m := range domain.AllMentors {
		fmt.Fprintf(w, "  %s\n", m)
	}
	_, err := fmt.Fprintf(w, "selection count: %d-%d (default %d)\n", domain.MinSelectionCount, domain.MaxSelectionCount, domain.DefaultSelectionCount)
	return err
}
