package publisher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedFile struct {
	content     string
	contentType string
}

type mockWriter struct {
	files map[string]recordedFile
	err   error
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[path] = recordedFile{content: string(data), contentType: contentType}
	return nil
}

func sampleReport() Report {
	return Report{
		Settings: domain.AnalysisSettings{Mode: domain.ModeCurator, Style: domain.StyleEmotional, SelectionCount: 2, Mentor: domain.MentorCartier},
		Images:   []string{"a.jpg", "b.jpg", "c.jpg"},
		Result:   domain.AnalysisResult{Text: "## Selection\n* **Photo n. 1** opens the show", Model: "gemini-test"},
	}
}

func TestCritiquePublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Markdown と HTML を GCS パスに書き出すのだ", func(t *testing.T) {
		w := &mockWriter{files: map[string]recordedFile{}}
		p, err := NewCritiquePublisher(w)
		require.NoError(t, err)

		res, err := p.Publish(ctx, sampleReport(), Options{OutputDir: "gs://bucket/reports"})
		require.NoError(t, err)

		assert.Equal(t, "gs://bucket/reports/critique.md", res.MarkdownPath)
		assert.Equal(t, "gs://bucket/reports/critique.html", res.HTMLPath)

		md := w.files[res.MarkdownPath]
		assert.Equal(t, "text/markdown; charset=utf-8", md.contentType)
		assert.Contains(t, md.content, "- selection: 2")
		assert.Contains(t, md.content, "- mentor: cartier")
		assert.Contains(t, md.content, "- photo 3: c.jpg")

		htmlFile := w.files[res.HTMLPath]
		assert.Contains(t, htmlFile.content, "<h2>Selection</h2>")
		assert.Contains(t, htmlFile.content, "<strong>Photo n. 1</strong>")
	})

	t.Run("SkipHTML なら Markdown だけなのだ", func(t *testing.T) {
		w := &mockWriter{files: map[string]recordedFile{}}
		p, _ := NewCritiquePublisher(w)

		res, err := p.Publish(ctx, sampleReport(), Options{OutputDir: "out", SkipHTML: true})
		require.NoError(t, err)
		assert.Empty(t, res.HTMLPath)
		assert.Len(t, w.files, 1)
	})

	t.Run("書き込み失敗はラップして返すのだ", func(t *testing.T) {
		p, _ := NewCritiquePublisher(&mockWriter{err: errors.New("denied")})
		_, err := p.Publish(ctx, sampleReport(), Options{OutputDir: "out"})
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "denied"))
	})

	t.Run("writer は必須なのだ", func(t *testing.T) {
		_, err := NewCritiquePublisher(nil)
		assert.Error(t, err)
	})
}

func TestLocalWriter(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "critique.md")

	require.NoError(t, LocalWriter{}.Write(context.Background(), p, strings.NewReader("hello"), "text/markdown"))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestResolveOutputPath(t *testing.T) {
	got, err := ResolveOutputPath("gs://bucket/dir", "critique.md")
	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/dir/critique.md", got)

	got, err = ResolveOutputPath("output", "critique.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "critique.md"), got)

	assert.True(t, IsRemote("GS://bucket"))
	assert.False(t, IsRemote("/tmp"))
}
