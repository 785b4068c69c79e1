package prompts

import (
	_ "embed"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

var (
	//go:embed templates/single_technical.md
	SingleTechnicalPrompt string
	//go:embed templates/single_emotional.md
	SingleEmotionalPrompt string
	//go:embed templates/project_technical.md
	ProjectTechnicalPrompt string
	//go:embed templates/project_emotional.md
	ProjectEmotionalPrompt string
	//go:embed templates/curator.md
	CuratorPrompt string
	//go:embed templates/editing.md
	EditingPrompt string
)

type templateKey struct {
	mode  domain.AnalysisMode
	style domain.ToneStyle
}

// templateTable は (mode, style) とテンプレート本文の対応表なのだ。
// curator と editing はペルソナが1つなので両スタイルで同じ本文を使います。
var templateTable = map[templateKey]string{
	{domain.ModeSingle, domain.StyleTechnical}:  SingleTechnicalPrompt,
	{domain.ModeSingle, domain.StyleEmotional}:  SingleEmotionalPrompt,
	{domain.ModeProject, domain.StyleTechnical}: ProjectTechnicalPrompt,
	{domain.ModeProject, domain.StyleEmotional}: ProjectEmotionalPrompt,
	{domain.ModeCurator, domain.StyleTechnical}: CuratorPrompt,
	{domain.ModeCurator, domain.StyleEmotional}: CuratorPrompt,
	{domain.ModeEditing, domain.StyleTechnical}: EditingPrompt,
	{domain.ModeEditing, domain.StyleEmotional}: EditingPrompt,
}

// suffixTable はモード別の短い指示文です。
var suffixTable = map[templateKey]string{
	{domain.ModeSingle, domain.StyleTechnical}:  "Keep the tone precise and technical. Cite concrete camera settings where useful.",
	{domain.ModeSingle, domain.StyleEmotional}:  "Keep the tone warm and evocative. Avoid jargon.",
	{domain.ModeProject, domain.StyleTechnical}: "Evaluate the series as a body of work, not as isolated pictures.",
	{domain.ModeProject, domain.StyleEmotional}: "Read the series as one story and speak to the photographer directly.",
	{domain.ModeCurator, domain.StyleTechnical}: "Base the selection of {N} images on technical quality and visual consistency.",
	{domain.ModeCurator, domain.StyleEmotional}: "Base the selection of {N} images on emotional impact and narrative strength.",
	{domain.ModeEditing, domain.StyleTechnical}: "Give exact slider values and the order in which to apply them.",
	{domain.ModeEditing, domain.StyleEmotional}: "Explain how each adjustment serves the mood of the picture.",
}
