package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	"github.com/shouni/gemini-image-kit/pkg/imgutil"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultResizeThreshold を超える画像は縮小・再エンコードの対象になります。
	DefaultResizeThreshold int64 = 2 << 20
	DefaultMaxEdge               = 1920
	DefaultJPEGQuality           = 88
	// DefaultMaxPixels を超える画素数の画像は展開せずに拒否します。
	DefaultMaxPixels int64 = 100_000_000

	jpegMIMEType = "image/jpeg"
)

// Options は縮小処理のパラメータです。ゼロ値の項目は既定値で補われます。
type Options struct {
	ResizeThreshold int64
	MaxEdge         int
	Quality         int
	MaxPixels       int64
}

// Encoder は ImageInput を送信用の EncodedImagePart に変換するのだ。
type Encoder struct {
	opts Options
}

// New は Encoder を初期化します。
func New(opts Options) *Encoder {
	if opts.ResizeThreshold <= 0 {
		opts.ResizeThreshold = DefaultResizeThreshold
	}
	if opts.MaxEdge <= 0 {
		opts.MaxEdge = DefaultMaxEdge
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultJPEGQuality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	return &Encoder{opts: opts}
}

// Encode は1枚の画像をエンコードします。
// 閾値を超える画像は長辺を MaxEdge 以下に縮小した JPEG に置き換え、それ以外は元のバイト列をそのまま使うのだ。
func (e *Encoder) Encode(ctx context.Context, img domain.ImageInput) (domain.EncodedImagePart, error) {
	if err := ctx.Err(); err != nil {
		return domain.EncodedImagePart{}, err
	}
	if len(img.Data) == 0 {
		return domain.EncodedImagePart{}, domain.NewDecodeError(img.Name, fmt.Errorf("empty image data"))
	}

	size := img.Size
	if size <= 0 {
		size = int64(len(img.Data))
	}

	if size <= e.opts.ResizeThreshold {
		// 小さい画像もデコード可能かだけは確かめておくのだ
		if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
			return domain.EncodedImagePart{}, domain.NewDecodeError(img.Name, err)
		}
		return domain.EncodedImagePart{
			Data:     base64.StdEncoding.EncodeToString(img.Data),
			MIMEType: mimeTypeOf(img),
		}, nil
	}

	data, err := e.shrink(img)
	if err != nil {
		return domain.EncodedImagePart{}, domain.NewDecodeError(img.Name, err)
	}

	slog.DebugContext(ctx, "画像を縮小して再エンコードしたのだ",
		"name", img.Name,
		"original_bytes", size,
		"encoded_bytes", len(data),
	)

	return domain.EncodedImagePart{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: jpegMIMEType,
		Resized:  true,
	}, nil
}

// EncodeAll は全画像を並列にエンコードし、入力と同じ順序で返します。
// 1枚でも失敗した場合は最初のエラーを返すのだ。
func (e *Encoder) EncodeAll(ctx context.Context, images domain.ImageSet) ([]domain.EncodedImagePart, error) {
	parts := make([]domain.EncodedImagePart, len(images))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, img := range images {
		eg.Go(func() error {
			part, err := e.Encode(egCtx, img)
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// shrink は長辺が MaxEdge を超える場合のみ縮小し、JPEG で書き出します。
func (e *Encoder) shrink(img domain.ImageInput) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, err
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > e.opts.MaxPixels {
		return nil, fmt.Errorf("image is %dx%d, exceeding the %d pixel limit", cfg.Width, cfg.Height, e.opts.MaxPixels)
	}

	if cfg.Width <= e.opts.MaxEdge && cfg.Height <= e.opts.MaxEdge {
		return imgutil.CompressToJPEG(img.Data, e.opts.Quality)
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, Resize(src, e.opts.MaxEdge), &jpeg.Options{Quality: e.opts.Quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

func mimeTypeOf(img domain.ImageInput) string {
	if img.MIMEType != "" {
		return img.MIMEType
	}
	return http.DetectContentType(img.Data)
}
