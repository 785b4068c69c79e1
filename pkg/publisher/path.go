package publisher

import (
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// IsRemote は出力先が GCS かどうかを返すのだ。
func IsRemote(baseDir string) bool {
	return strings.HasPrefix(strings.ToLower(baseDir), "gs://")
}
