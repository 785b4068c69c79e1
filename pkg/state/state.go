package state

import (
	"github.com/shouni/go-photo-mentor/pkg/domain"
)

// AppState は講評セッションの状態をまとめた構造体です。
// 更新はすべて Reduce を通し、既存の値を書き換えずに新しい状態を返すのだ。
type AppState struct {
	Settings domain.AnalysisSettings
	Images   domain.ImageSet
	Loading  bool
	// Error は画面に出すメッセージ。空ならエラーなし。
	Error     string
	ErrorKind domain.ErrorKind
	Result    *domain.AnalysisResult
}

// Initial は既定の設定で初期状態を作ります。
func Initial() AppState {
	return AppState{Settings: domain.DefaultSettings()}
}

// CanAnalyze は講評ボタンを押せる状態かを返します。実行中は押せないのだ。
func (s AppState) CanAnalyze() bool {
	return !s.Loading && len(s.Images) > 0 && Validate(s) == nil
}

// Validate は送信前に枚数制約を検査します。
func Validate(s AppState) error {
	return domain.ValidateImageCount(s.Settings, len(s.Images))
}
