package publisher

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/yuin/goldmark"
)

// Writer は成果物を保存するためのインターフェースです。remoteio.OutputWriter がそのまま満たすのだ。
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	// SkipHTML が true なら Markdown だけを書き出します。
	SkipHTML bool
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string
	HTMLPath     string
}

// Report は保存対象の講評一式です。
type Report struct {
	Settings domain.AnalysisSettings
	Images   []string
	Result   domain.AnalysisResult
}

const (
	defaultReportName = "critique.md"
	reportTitle       = "Photo Critique"
)

// CritiquePublisher は講評レポートの永続化とHTML変換を担います。
type CritiquePublisher struct {
	writer   Writer
	markdown goldmark.Markdown
}

// NewCritiquePublisher は writer を使う CritiquePublisher を返します。
func NewCritiquePublisher(writer Writer) (*CritiquePublisher, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer is required")
	}
	return &CritiquePublisher{
		writer:   writer,
		markdown: goldmark.New(),
	}, nil
}

// Publish は Markdown の構築と書き出し、HTML変換を一括で行い、生成されたファイル情報を返すのだ。
func (p *CritiquePublisher) Publish(ctx context.Context, report Report, opts Options) (PublishResult, error) {
	result := PublishResult{}

	mdPath, err := ResolveOutputPath(opts.OutputDir, defaultReportName)
	if err != nil {
		return result, err
	}

	content := BuildMarkdown(report)
	if err := p.writer.Write(ctx, mdPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = mdPath

	if opts.SkipHTML {
		return result, nil
	}

	htmlDoc, err := p.renderHTML(content)
	if err != nil {
		return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
	}

	htmlPath := strings.TrimSuffix(mdPath, ".md") + ".html"
	if err := p.writer.Write(ctx, htmlPath, htmlDoc, "text/html; charset=utf-8"); err != nil {
		return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
	}
	result.HTMLPath = htmlPath

	slog.InfoContext(ctx, "講評レポートを保存したのだ", "markdown", result.MarkdownPath, "html", result.HTMLPath)
	return result, nil
}

// BuildMarkdown はメタ情報と講評本文を1つの Markdown にまとめます。
func BuildMarkdown(report Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", reportTitle)
	fmt.Fprintf(&sb, "- mode: %s\n", report.Settings.Mode)
	fmt.Fprintf(&sb, "- style: %s\n", report.Settings.Style)
	if report.Settings.Mode == domain.ModeCurator {
		fmt.Fprintf(&sb, "- selection: %d\n", report.Settings.SelectionCount)
	}
	if report.Settings.Mentor != domain.MentorNone {
		fmt.Fprintf(&sb, "- mentor: %s\n", report.Settings.Mentor)
	}
	if report.Result.Model != "" {
		fmt.Fprintf(&sb, "- model: %s\n", report.Result.Model)
	}
	for i, name := range report.Images {
		fmt.Fprintf(&sb, "- photo %d: %s\n", i+1, name)
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(strings.TrimSpace(report.Result.Text))
	sb.WriteString("\n")
	return sb.String()
}

func (p *CritiquePublisher) renderHTML(content string) (io.Reader, error) {
	var body bytes.Buffer
	if err := p.markdown.Convert([]byte(content), &body); err != nil {
		return nil, err
	}

	var doc bytes.Buffer
	fmt.Fprintf(&doc, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(reportTitle))
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return &doc, nil
}
