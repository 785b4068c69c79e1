package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

// Format は標準出力への書き出し形式です。
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// ParseFormat は文字列を Format に変換するのだ。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unsupported format %q (text, markdown, json)", s), nil)
	}
}

// Write は結果を指定形式で w に書き出します。
func Write(w io.Writer, format Format, result domain.AnalysisResult, color bool) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, strings.TrimRight(result.Text, "\n")+"\n")
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return WriteText(w, result.Blocks, color)
	}
}

// WriteText はブロック列を端末向けの整形テキストにします。
// color が true なら太字を ANSI エスケープで表現するのだ。
func WriteText(w io.Writer, blocks []domain.DisplayBlock, color bool) error {
	var sb strings.Builder
	for _, b := range blocks {
		line := inline(b.Segments, color)
		switch b.Kind {
		case domain.BlockHeading1:
			sb.WriteString(strings.ToUpper(line) + "\n")
			sb.WriteString(strings.Repeat("=", max(len([]rune(b.PlainText())), 3)) + "\n")
		case domain.BlockHeading2:
			sb.WriteString(line + "\n")
			sb.WriteString(strings.Repeat("-", max(len([]rune(b.PlainText())), 3)) + "\n")
		case domain.BlockHeading3:
			sb.WriteString("> " + line + "\n")
		case domain.BlockListItem:
			sb.WriteString("  • " + line + "\n")
		case domain.BlockBlank:
			sb.WriteString("\n")
		default:
			sb.WriteString(line + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func inline(segments []domain.Segment, color bool) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Bold && color && s.Text != "" {
			sb.WriteString(ansiBold + s.Text + ansiReset)
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
