package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

// CountPlaceholder はキュレーターモードのテンプレートで選出枚数に置き換わる記号です。
const CountPlaceholder = "{N}"

// Composer はモードとスタイルから最終プロンプトを組み立てる契約です。
type Composer interface {
	Compose(mode domain.AnalysisMode, style domain.ToneStyle, count, imageCount int) string
}

// TableComposer は (mode, style) → テンプレートの表と、指示文サフィックスの表を引くだけの純粋な実装なのだ。
type TableComposer struct {
	templates map[templateKey]string
	suffixes  map[templateKey]string
}

// NewTableComposer は埋め込みテンプレートを使う Composer を返します。
func NewTableComposer() *TableComposer {
	return &TableComposer{
		templates: templateTable,
		suffixes:  suffixTable,
	}
}

// Compose はテンプレート本文 + モード別指示 + 注記 の順に連結します。
// curator モードでは {N} をすべて選出枚数に置換するのだ。
func (c *TableComposer) Compose(mode domain.AnalysisMode, style domain.ToneStyle, count, imageCount int) string {
	key := templateKey{mode: mode, style: style}

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(c.templates[key]))

	if suffix := c.suffixes[key]; suffix != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(suffix))
	}

	text := sb.String()
	if mode == domain.ModeCurator {
		text = strings.ReplaceAll(text, CountPlaceholder, strconv.Itoa(count))
	}

	return text + "\n\n" + annotation(mode, style, count, imageCount)
}

// annotation はモデル向けの補足情報です。後段では解析しません。
func annotation(mode domain.AnalysisMode, style domain.ToneStyle, count, imageCount int) string {
	modeName := strings.ToUpper(string(mode))
	switch mode {
	case domain.ModeCurator:
		return fmt.Sprintf("[MODE: %s — select %d of %d images, %s tone]", modeName, count, imageCount, style)
	case domain.ModeProject:
		return fmt.Sprintf("[MODE: %s — %d images, %s tone]", modeName, imageCount, style)
	default:
		return fmt.Sprintf("[MODE: %s — %d image, %s tone]", modeName, imageCount, style)
	}
}
