package state

import (
	"slices"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

// Event は状態遷移のきっかけを表すマーカーインターフェースです。
type Event interface {
	isEvent()
}

type (
	ModeSelected   struct{ Mode domain.AnalysisMode }
	StyleSelected  struct{ Style domain.ToneStyle }
	MentorSelected struct{ Mentor domain.Mentor }
	// SelectionCountChanged は増減ボタン相当。Delta は +1 / -1 など。
	SelectionCountChanged struct{ Delta int }
	SelectionCountSet     struct{ Count int }
	ImagesSelected        struct{ Images domain.ImageSet }
	ImagesCleared         struct{}
	AnalysisStarted       struct{}
	AnalysisSucceeded     struct{ Result domain.AnalysisResult }
	AnalysisFailed        struct{ Err error }
	ErrorDismissed        struct{}
)

func (ModeSelected) isEvent()          {}
func (StyleSelected) isEvent()         {}
func (MentorSelected) isEvent()        {}
func (SelectionCountChanged) isEvent() {}
func (SelectionCountSet) isEvent()     {}
func (ImagesSelected) isEvent()        {}
func (ImagesCleared) isEvent()         {}
func (AnalysisStarted) isEvent()       {}
func (AnalysisSucceeded) isEvent()     {}
func (AnalysisFailed) isEvent()        {}
func (ErrorDismissed) isEvent()        {}

// Reduce は (状態, イベント) から次の状態を計算する純粋関数なのだ。
// 入力の状態は変更しません。
func Reduce(s AppState, ev Event) AppState {
	next := s
	next.Images = slices.Clone(s.Images)

	switch e := ev.(type) {
	case ModeSelected:
		next.Settings.Mode = e.Mode
		next.Result = nil
		next = clearError(next)
		// 1枚専用モードに切り替えたら、余分な画像は手放すのだ
		if !e.Mode.AllowsMultipleImages() && len(next.Images) > 1 {
			next.Images = next.Images[:1]
		}
	case StyleSelected:
		next.Settings.Style = e.Style
		next.Result = nil
		next = clearError(next)
	case MentorSelected:
		next.Settings.Mentor = e.Mentor
		next.Result = nil
		next = clearError(next)
	case SelectionCountChanged:
		next.Settings.SelectionCount = domain.ClampSelectionCount(s.Settings.SelectionCount + e.Delta)
		next.Result = nil
		next = clearError(next)
	case SelectionCountSet:
		next.Settings.SelectionCount = domain.ClampSelectionCount(e.Count)
		next.Result = nil
		next = clearError(next)
	case ImagesSelected:
		next.Images = slices.Clone(e.Images)
		next.Result = nil
		next = clearError(next)
	case ImagesCleared:
		next.Images = nil
		next.Result = nil
		next = clearError(next)
	case AnalysisStarted:
		next.Loading = true
		next.Result = nil
		next = clearError(next)
	case AnalysisSucceeded:
		res := e.Result
		next.Loading = false
		next.Result = &res
		next = clearError(next)
	case AnalysisFailed:
		// エラー時は必ずローディング表示を消すのだ
		next.Loading = false
		next.Result = nil
		next.Error = domain.UserMessage(e.Err)
		next.ErrorKind = domain.KindOf(e.Err)
	case ErrorDismissed:
		next = clearError(next)
	}
	return next
}

func clearError(s AppState) AppState {
	s.Error = ""
	s.ErrorKind = ""
	return s
}
