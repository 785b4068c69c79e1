package render

import (
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

// Render は講評テキストを行ごとに表示ブロックへ変換します。
// 各行は前後の行に依存せず独立に分類されるので、何度呼んでも同じ結果になるのだ。
func Render(text string) []domain.DisplayBlock {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	blocks := make([]domain.DisplayBlock, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

// classifyLine は1行を分類します。見出しは深いものから順に判定するのだ。
func classifyLine(line string) domain.DisplayBlock {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return domain.DisplayBlock{Kind: domain.BlockBlank}
	}

	if m := Heading3Regex.FindStringSubmatch(trimmed); m != nil {
		return domain.DisplayBlock{Kind: domain.BlockHeading3, Segments: SplitBold(m[1])}
	}
	if m := Heading2Regex.FindStringSubmatch(trimmed); m != nil {
		return domain.DisplayBlock{Kind: domain.BlockHeading2, Segments: SplitBold(m[1])}
	}
	if m := Heading1Regex.FindStringSubmatch(trimmed); m != nil {
		return domain.DisplayBlock{Kind: domain.BlockHeading1, Segments: SplitBold(m[1])}
	}
	if m := ListItemRegex.FindStringSubmatch(trimmed); m != nil {
		return domain.DisplayBlock{Kind: domain.BlockListItem, Segments: SplitBold(m[1])}
	}
	return domain.DisplayBlock{Kind: domain.BlockParagraph, Segments: SplitBold(trimmed)}
}

// SplitBold は ** で区切られた部分を太字セグメントとして取り出します。
// 偶数番目が通常、奇数番目が太字の交互列になり、空文字のセグメントも保持するのだ。
// 閉じていない ** は太字にせず、記号ごと直前の通常セグメントに戻します。
func SplitBold(text string) []domain.Segment {
	pieces := strings.Split(text, boldMarker)
	if n := len(pieces); n%2 == 0 {
		pieces[n-2] += boldMarker + pieces[n-1]
		pieces = pieces[:n-1]
	}

	segments := make([]domain.Segment, len(pieces))
	for i, p := range pieces {
		segments[i] = domain.Segment{Text: p, Bold: i%2 == 1}
	}
	return segments
}
