package publisher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalWriter はローカルファイルシステムに書き出す Writer です。GCS を使わないときの既定なのだ。
type LocalWriter struct{}

// Write は親ディレクトリを作成してからファイルを書き出します。contentType は使いません。
func (LocalWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
