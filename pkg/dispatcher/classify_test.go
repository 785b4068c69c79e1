package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ServiceClass
	}{
		{"nil", nil, ClassUnknown},
		{"レート制限", errors.New("Error 429: Too Many Requests"), ClassTransient},
		{"クォータ超過", errors.New("You exceeded your current QUOTA"), ClassTransient},
		{"過負荷", errors.New("The model is OVERLOADED. Please try again later."), ClassTransient},
		{"リソース枯渇", errors.New("rpc error: RESOURCE_EXHAUSTED"), ClassTransient},
		{"一時停止", errors.New("503 Service Unavailable"), ClassTransient},
		{"タイムアウト", fmt.Errorf("call failed: %w", context.DeadlineExceeded), ClassTransient},
		{"APIキー不正", errors.New("400 API key not valid. Please pass a valid API key."), ClassFatal},
		{"権限なし", errors.New("PERMISSION_DENIED"), ClassFatal},
		{"キャンセル", fmt.Errorf("wrapped: %w", context.Canceled), ClassFatal},
		{"両方該当なら一時的を優先", errors.New("400 quota exceeded"), ClassTransient},
		{"未知", errors.New("something odd happened"), ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestServiceClass_String(t *testing.T) {
	assert.Equal(t, "transient", ClassTransient.String())
	assert.Equal(t, "fatal", ClassFatal.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
}
