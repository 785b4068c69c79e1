package render

import "regexp"

var (
	// Heading3Regex は "### 見出し" 行をキャプチャします。
	Heading3Regex = regexp.MustCompile(`^###\s(.*)$`)

	// Heading2Regex は "## 見出し" 行をキャプチャします。
	Heading2Regex = regexp.MustCompile(`^##\s(.*)$`)

	// Heading1Regex は "# 見出し" 行をキャプチャします。
	Heading1Regex = regexp.MustCompile(`^#\s(.*)$`)

	// ListItemRegex は "* 項目" または "- 項目" 形式の行をキャプチャします。
	ListItemRegex = regexp.MustCompile(`^[*-]\s(.*)$`)
)

// boldMarker はインライン太字の区切り記号なのだ。
const boldMarker = "**"
