package dispatcher

import (
	"context"
	"errors"
	"strings"
)

// ServiceClass はモデル呼び出しエラーの分類です。
type ServiceClass int

const (
	ClassUnknown ServiceClass = iota
	ClassTransient
	ClassFatal
)

func (c ServiceClass) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// TransientVocabulary は別モデルで再試行すれば解消しうるエラーの目印（小文字）なのだ。
var TransientVocabulary = []string{
	"429",
	"503",
	"rate limit",
	"ratelimit",
	"quota",
	"resource exhausted",
	"resource_exhausted",
	"overloaded",
	"unavailable",
	"temporarily",
	"try again later",
	"deadline exceeded",
	"not found for api version",
}

// FatalVocabulary は再試行しても解消しないエラーの目印（小文字）です。
var FatalVocabulary = []string{
	"400",
	"401",
	"403",
	"api key",
	"api_key",
	"unauthenticated",
	"permission denied",
	"permission_denied",
	"invalid argument",
	"invalid_argument",
	"malformed",
	"context canceled",
}

// Classify はエラーメッセージの部分一致で分類を決めます。大文字小文字は区別しないのだ。
// 一時的な目印を先に評価するので、両方に該当する場合は Transient になります。
func Classify(err error) ServiceClass {
	if err == nil {
		return ClassUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTransient
	}
	if errors.Is(err, context.Canceled) {
		return ClassFatal
	}

	msg := strings.ToLower(err.Error())
	if containsAny(msg, TransientVocabulary) {
		return ClassTransient
	}
	if containsAny(msg, FatalVocabulary) {
		return ClassFatal
	}
	return ClassUnknown
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
