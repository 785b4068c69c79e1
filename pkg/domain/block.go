package domain

// BlockKind は表示ブロックの種類です。
type BlockKind string

const (
	BlockHeading1  BlockKind = "h1"
	BlockHeading2  BlockKind = "h2"
	BlockHeading3  BlockKind = "h3"
	BlockListItem  BlockKind = "li"
	BlockParagraph BlockKind = "p"
	BlockBlank     BlockKind = "blank"
)

// Segment はインライン要素の一片。Bold が true なら ** で囲まれていた部分なのだ。
type Segment struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// DisplayBlock は講評テキスト1行分の表示単位です。
type DisplayBlock struct {
	Kind     BlockKind `json:"kind"`
	Segments []Segment `json:"segments,omitempty"`
}

// PlainText はセグメントを装飾なしで連結します。
func (b DisplayBlock) PlainText() string {
	var out string
	for _, s := range b.Segments {
		out += s.Text
	}
	return out
}

// BoldSpans は太字セグメントだけを返すのだ。
func (b DisplayBlock) BoldSpans() []string {
	var spans []string
	for _, s := range b.Segments {
		if s.Bold {
			spans = append(spans, s.Text)
		}
	}
	return spans
}
