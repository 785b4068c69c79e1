package domain

import (
	"errors"
	"fmt"
)

// ErrorKind はアプリケーションエラーの分類です。
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConfiguration ErrorKind = "configuration"
	KindDecode        ErrorKind = "decode"
	KindTransient     ErrorKind = "transient"
	KindFatal         ErrorKind = "fatal"
	KindUnavailable   ErrorKind = "unavailable"
)

// fatalPrefix はサービス側の致命的エラーをユーザーに見せるときの接頭辞なのだ。
const fatalPrefix = "Analysis failed: "

// ErrAllModelsUnavailable は候補モデルをすべて使い切ったことを示します。
var ErrAllModelsUnavailable = errors.New("all models unavailable")

// Error は分類付きのアプリケーションエラーです。
type Error struct {
	Kind    ErrorKind
	Message string
	// Model はサービスエラーの発生したモデル名（該当する場合のみ）。
	Model string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError は入力枚数や設定値の不整合を表すエラーを作成します。
func NewValidationError(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Cause: cause}
}

// NewConfigurationError は API キー未設定などの構成エラーを作成します。
func NewConfigurationError(message string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Message: message, Cause: cause}
}

// NewDecodeError は画像の読み込み・デコード失敗を表すエラーを作成します。
func NewDecodeError(name string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: fmt.Sprintf("cannot decode image %q", name), Cause: cause}
}

// NewServiceError はモデル呼び出しの失敗を分類付きで包みます。
func NewServiceError(kind ErrorKind, model string, cause error) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf("model %s", model), Model: model, Cause: cause}
}

// NewUnavailableError は全モデル失敗時のエラーを作成します。last は最後に受け取ったエラーです。
func NewUnavailableError(attempts int, last error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf("%d models tried", attempts),
		Cause:   errors.Join(ErrAllModelsUnavailable, last),
	}
}

// IsKind は err のチェーン内に指定種別の *Error が含まれるかを判定するのだ。
func IsKind(err error, kind ErrorKind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// KindOf は err の分類を返します。分類できない場合は空文字です。
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// UserMessage は画面に出すためのメッセージを組み立てます。
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		return fatalPrefix + err.Error()
	}

	switch appErr.Kind {
	case KindValidation, KindConfiguration:
		return appErr.Message
	case KindDecode:
		return appErr.Message + ": the file is corrupt or in an unsupported format"
	case KindUnavailable:
		return "All models are currently unavailable, please try again later"
	case KindFatal:
		if appErr.Cause != nil {
			return fatalPrefix + appErr.Cause.Error()
		}
		return fatalPrefix + appErr.Message
	default:
		return fatalPrefix + appErr.Error()
	}
}
