package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/stretchr/testify/assert"
)

func TestTableComposer_Compose(t *testing.T) {
	c := NewTableComposer()

	t.Run("全テンプレートが埋め込まれているのだ", func(t *testing.T) {
		for _, m := range domain.AllModes {
			for _, s := range domain.AllStyles {
				assert.NotEmpty(t, strings.TrimSpace(templateTable[templateKey{m, s}]), "%s/%s", m, s)
				assert.NotEmpty(t, suffixTable[templateKey{m, s}], "%s/%s", m, s)
			}
		}
	})

	t.Run("curator 以外には {N} が残らないのだ", func(t *testing.T) {
		for _, m := range []domain.AnalysisMode{domain.ModeSingle, domain.ModeProject, domain.ModeEditing} {
			for _, s := range domain.AllStyles {
				got := c.Compose(m, s, 7, 3)
				assert.NotContains(t, got, CountPlaceholder, "%s/%s", m, s)
			}
		}
	})

	t.Run("curator は {N} をすべて置換するのだ", func(t *testing.T) {
		raw := templateTable[templateKey{domain.ModeCurator, domain.StyleTechnical}] +
			suffixTable[templateKey{domain.ModeCurator, domain.StyleTechnical}]
		placeholders := strings.Count(raw, CountPlaceholder)
		assert.Greater(t, placeholders, 1, "テンプレートに複数の {N} が必要なのだ")

		for _, s := range domain.AllStyles {
			got := c.Compose(domain.ModeCurator, s, 12, 30)
			assert.NotContains(t, got, CountPlaceholder)
			assert.Contains(t, got, "select exactly 12 images")
			assert.Contains(t, got, "Why These 12")
		}
	})

	t.Run("末尾にモード注記が付くのだ", func(t *testing.T) {
		got := c.Compose(domain.ModeProject, domain.StyleEmotional, 1, 4)
		assert.True(t, strings.HasSuffix(got, "[MODE: PROJECT — 4 images, emotional tone]"), got)

		got = c.Compose(domain.ModeCurator, domain.StyleTechnical, 3, 9)
		assert.True(t, strings.HasSuffix(got, "[MODE: CURATOR — select 3 of 9 images, technical tone]"), got)
	})

	t.Run("スタイルで本文が変わるのだ", func(t *testing.T) {
		tech := c.Compose(domain.ModeSingle, domain.StyleTechnical, 1, 1)
		emo := c.Compose(domain.ModeSingle, domain.StyleEmotional, 1, 1)
		assert.NotEqual(t, tech, emo)
	})

	t.Run("同じ入力なら同じ出力なのだ", func(t *testing.T) {
		a := c.Compose(domain.ModeEditing, domain.StyleTechnical, 1, 1)
		b := c.Compose(domain.ModeEditing, domain.StyleTechnical, 1, 1)
		assert.Equal(t, a, b)
	})
}

func TestSystemPrompt(t *testing.T) {
	for _, m := range domain.AllMentors {
		assert.NotEmpty(t, SystemPrompt(m), string(m))
	}
	assert.Empty(t, SystemPrompt(domain.MentorNone))
}
