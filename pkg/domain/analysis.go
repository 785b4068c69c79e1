package domain

import "fmt"

// AnalysisSettings はユーザーが選ぶ講評条件の組なのだ。
type AnalysisSettings struct {
	Mode           AnalysisMode `json:"mode"`
	Style          ToneStyle    `json:"style"`
	SelectionCount int          `json:"selection_count"`
	Mentor         Mentor       `json:"mentor,omitempty"`
}

// DefaultSettings は CLI や初期状態で使う既定値です。
func DefaultSettings() AnalysisSettings {
	return AnalysisSettings{
		Mode:           ModeSingle,
		Style:          StyleTechnical,
		SelectionCount: DefaultSelectionCount,
	}
}

// AnalysisRequest は1回の講評依頼です。
type AnalysisRequest struct {
	Settings AnalysisSettings
	Images   ImageSet
}

// AnalysisResult はモデルの返したテキストと、それがどこから来たかを保持します。
type AnalysisResult struct {
	Text      string         `json:"text"`
	Model     string         `json:"model,omitempty"`
	FromCache bool           `json:"from_cache"`
	Blocks    []DisplayBlock `json:"blocks,omitempty"`
}

// ValidateImageCount はモードごとの枚数制約を検査するのだ。
// 送信前に呼ばれ、違反はバリデーションエラーとして返します。
func ValidateImageCount(settings AnalysisSettings, imageCount int) error {
	if imageCount == 0 {
		return NewValidationError("select at least one image", nil)
	}

	switch settings.Mode {
	case ModeSingle, ModeEditing:
		if imageCount != 1 {
			return NewValidationError(fmt.Sprintf("%s mode accepts exactly 1 image, got %d", settings.Mode, imageCount), nil)
		}
	case ModeCurator:
		if imageCount < settings.SelectionCount {
			return NewValidationError(fmt.Sprintf("curator mode needs at least %d images to select from, got %d", settings.SelectionCount, imageCount), nil)
		}
	case ModeProject:
	default:
		return NewValidationError(fmt.Sprintf("unknown mode %q", settings.Mode), nil)
	}
	return nil
}
