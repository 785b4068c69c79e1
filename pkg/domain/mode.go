package domain

import (
	"fmt"
	"strings"
)

// AnalysisMode は講評のワークフロー（単写真・プロジェクト・キュレーター・レタッチ）を表します。
type AnalysisMode string

const (
	ModeSingle  AnalysisMode = "single"
	ModeProject AnalysisMode = "project"
	ModeCurator AnalysisMode = "curator"
	ModeEditing AnalysisMode = "editing"
)

// AllModes は CLI の一覧表示やバリデーションで使う順序付きのモード一覧です。
var AllModes = []AnalysisMode{ModeSingle, ModeProject, ModeCurator, ModeEditing}

// ToneStyle は講評の語り口なのだ。
type ToneStyle string

const (
	StyleTechnical ToneStyle = "technical"
	StyleEmotional ToneStyle = "emotional"
)

var AllStyles = []ToneStyle{StyleTechnical, StyleEmotional}

const (
	MinSelectionCount     = 1
	MaxSelectionCount     = 20
	DefaultSelectionCount = 5
)

// ParseMode は文字列を AnalysisMode に変換します。大文字小文字は区別しません。
func ParseMode(s string) (AnalysisMode, error) {
	m := AnalysisMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModes {
		if m == known {
			return m, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown mode %q (supported: %s)", s, joinModes()), nil)
}

// ParseStyle は文字列を ToneStyle に変換します。
func ParseStyle(s string) (ToneStyle, error) {
	st := ToneStyle(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStyles {
		if st == known {
			return st, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown style %q (supported: technical, emotional)", s), nil)
}

// AllowsMultipleImages は複数枚の入力を受け付けるモードかを返すのだ。
func (m AnalysisMode) AllowsMultipleImages() bool {
	return m == ModeProject || m == ModeCurator
}

// ClampSelectionCount は選出枚数を [1,20] に収めます。
func ClampSelectionCount(n int) int {
	if n < MinSelectionCount {
		return MinSelectionCount
	}
	if n > MaxSelectionCount {
		return MaxSelectionCount
	}
	return n
}

func joinModes() string {
	names := make([]string, 0, len(AllModes))
	for _, m := range AllModes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
