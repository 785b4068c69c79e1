package dispatcher

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var testModels = []string{"model-a", "model-b", "model-c"}

func TestNew(t *testing.T) {
	t.Run("nilチェック: aiClient がなければエラーなのだ", func(t *testing.T) {
		_, err := New(nil, Options{Models: testModels})
		assert.Error(t, err)
	})

	t.Run("空のモデル名は取り除かれ、全部空ならエラーなのだ", func(t *testing.T) {
		_, err := New(&mockAIClient{}, Options{Models: []string{" ", ""}})
		assert.Error(t, err)

		d, err := New(&mockAIClient{}, Options{Models: []string{" model-a ", "", "model-b"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"model-a", "model-b"}, d.Models())
	})
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	req := Request{
		Prompt: "critique this",
		Images: []domain.EncodedImagePart{
			{Data: base64.StdEncoding.EncodeToString([]byte("img-1")), MIMEType: "image/jpeg"},
			{Data: base64.StdEncoding.EncodeToString([]byte("img-2")), MIMEType: "image/png"},
		},
		SystemPrompt: "be kind",
	}

	t.Run("2回一時エラーの後3番目のモデルが成功するのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				if model != "model-c" {
					return nil, errors.New("503 The model is overloaded")
				}
				return textResponse("## Verdict"), nil
			},
		}
		d, err := New(ai, Options{Models: testModels})
		require.NoError(t, err)

		res, err := d.Dispatch(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "## Verdict", res.Text)
		assert.Equal(t, "model-c", res.Model)
		assert.Equal(t, 3, res.Attempts)
		assert.Equal(t, 3, ai.attempts())
		assert.Equal(t, testModels, ai.calledModels)
	})

	t.Run("致命的エラーは1回で中断するのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("401 API key not valid")
			},
		}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(ctx, req)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindFatal))
		assert.Equal(t, 1, ai.attempts())
	})

	t.Run("分類不能なエラーもフォールバックしないのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("weird failure")
			},
		}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(ctx, req)
		assert.True(t, domain.IsKind(err, domain.KindFatal))
		assert.Equal(t, 1, ai.attempts())
	})

	t.Run("全モデルが一時エラーなら AllModelsUnavailable なのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("429 rate limit exceeded")
			},
		}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAllModelsUnavailable)
		assert.True(t, domain.IsKind(err, domain.KindUnavailable))
		assert.Equal(t, 3, ai.attempts())
	})

	t.Run("画像が先、プロンプトが最後のパーツになるのだ", func(t *testing.T) {
		ai := &mockAIClient{}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(ctx, req)
		require.NoError(t, err)

		require.Len(t, ai.lastParts, 3)
		assert.Equal(t, []byte("img-1"), ai.lastParts[0].InlineData.Data)
		assert.Equal(t, "image/png", ai.lastParts[1].InlineData.MIMEType)
		assert.Equal(t, "critique this", ai.lastParts[2].Text)
		assert.Equal(t, "be kind", ai.lastOpts.SystemPrompt)
	})

	t.Run("テキストがない応答はプレースホルダーになるのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return &gemini.Response{RawResponse: &genai.GenerateContentResponse{}}, nil
			},
		}
		d, _ := New(ai, Options{Models: testModels})

		res, err := d.Dispatch(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, NoTextPlaceholder, res.Text)
	})

	t.Run("試行ごとのタイムアウトは一時エラー扱いで次へ進むのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				if model == "model-a" {
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return textResponse("fine"), nil
			},
		}
		d, _ := New(ai, Options{Models: testModels, Timeout: 20 * time.Millisecond})

		res, err := d.Dispatch(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "model-b", res.Model)
		assert.Equal(t, 2, ai.attempts())
	})

	t.Run("呼び出し元のキャンセルではフォールバックしないのだ", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				cancel()
				return nil, errors.New("503 unavailable")
			},
		}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(cctx, req)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, ai.attempts())
	})

	t.Run("壊れた Base64 は送信前に DecodeError なのだ", func(t *testing.T) {
		ai := &mockAIClient{}
		d, _ := New(ai, Options{Models: testModels})

		_, err := d.Dispatch(ctx, Request{Prompt: "p", Images: []domain.EncodedImagePart{{Data: "%%%"}}})
		assert.True(t, domain.IsKind(err, domain.KindDecode))
		assert.Equal(t, 0, ai.attempts())
	})
}
