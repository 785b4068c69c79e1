package loader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"golang.org/x/sync/errgroup"
)

// HTTPClient は URL から画像を取得するためのインターフェースです。httpkit のクライアントが満たすのだ。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Opener は gs:// などのリモートストレージを開くためのインターフェースです。
type Opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Loader は画像参照（ローカルパス / gs:// / http(s)://）を ImageInput に変換します。
type Loader struct {
	httpClient HTTPClient
	opener     Opener
}

// New は Loader を初期化します。どちらも nil 可で、その場合は該当スキームを扱えないのだ。
func New(httpClient HTTPClient, opener Opener) *Loader {
	return &Loader{httpClient: httpClient, opener: opener}
}

// LoadAll は全参照を並列に読み込み、入力順に並べて返します。
func (l *Loader) LoadAll(ctx context.Context, refs []string) (domain.ImageSet, error) {
	images := make(domain.ImageSet, len(refs))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, ref := range refs {
		eg.Go(func() error {
			img, err := l.Load(egCtx, ref)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// Load は1つの参照を読み込みます。
func (l *Loader) Load(ctx context.Context, ref string) (domain.ImageInput, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.ImageInput{}, domain.NewValidationError("empty image reference", nil)
	}

	switch scheme := schemeOf(ref); scheme {
	case "gs":
		return l.loadRemote(ctx, ref)
	case "http", "https":
		return l.loadURL(ctx, ref)
	default:
		return loadLocal(ref)
	}
}

func loadLocal(p string) (domain.ImageInput, error) {
	info, err := os.Stat(p)
	if err != nil {
		return domain.ImageInput{}, domain.NewValidationError(fmt.Sprintf("cannot read %s", p), err)
	}
	if info.IsDir() {
		return domain.ImageInput{}, domain.NewValidationError(fmt.Sprintf("%s is a directory", p), nil)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return domain.ImageInput{}, domain.NewValidationError(fmt.Sprintf("cannot read %s", p), err)
	}

	return newInput(filepath.Base(p), data, info.ModTime().UTC())
}

func (l *Loader) loadRemote(ctx context.Context, uri string) (domain.ImageInput, error) {
	if l.opener == nil {
		return domain.ImageInput{}, domain.NewConfigurationError("remote storage is not configured", nil)
	}
	rc, err := l.opener.Open(ctx, uri)
	if err != nil {
		return domain.ImageInput{}, fmt.Errorf("failed to open %s: %w", uri, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.ImageInput{}, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return newInput(uri, data, time.Time{})
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (domain.ImageInput, error) {
	if l.httpClient == nil {
		return domain.ImageInput{}, domain.NewConfigurationError("http client is not configured", nil)
	}
	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return domain.ImageInput{}, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	return newInput(rawURL, data, time.Time{})
}

// newInput は中身から MIME タイプを決め、画像でなければ DecodeError にするのだ。
// リモートの画像は更新時刻を持たないので、同名の別オブジェクトと区別できるよう URI 全体を名前にします。
func newInput(name string, data []byte, modTime time.Time) (domain.ImageInput, error) {
	mimeType := detectMIMEType(baseName(name), data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageInput{}, domain.NewDecodeError(name, fmt.Errorf("unsupported content type %s", mimeType))
	}
	return domain.ImageInput{
		Name:     name,
		Data:     data,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		ModTime:  modTime,
	}, nil
}

// detectMIMEType は中身を優先し、判定できないときだけ拡張子を見るのだ。
func detectMIMEType(name string, data []byte) string {
	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return detected
}

func schemeOf(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

func baseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return u.Host
	}
	return name
}
