package cache

import (
	"strconv"
	"strings"

	"github.com/shouni/go-photo-mentor/pkg/domain"
)

const (
	fieldSeparator = "|"
	imageSeparator = ";"
)

// Fingerprint は画像群から順序を保ったキャッシュキーを作ります。
// 各画像は name|size|modtime(ミリ秒) で表し、入力順に連結するのだ。
func Fingerprint(images domain.ImageSet) string {
	entries := make([]string, len(images))
	for i, img := range images {
		var modTime int64
		if !img.ModTime.IsZero() {
			modTime = img.ModTime.UnixMilli()
		}
		entries[i] = strings.Join([]string{
			img.Name,
			strconv.FormatInt(img.Size, 10),
			strconv.FormatInt(modTime, 10),
		}, fieldSeparator)
	}
	return strings.Join(entries, imageSeparator)
}

// Key は画像の指紋に講評条件を加えたキーです。
// モードやスタイルを変えたときに別の結果を返すため、条件ごとにキーを分けるのだ。
func Key(images domain.ImageSet, settings domain.AnalysisSettings) string {
	count := 0
	if settings.Mode == domain.ModeCurator {
		count = settings.SelectionCount
	}
	return strings.Join([]string{
		Fingerprint(images),
		string(settings.Mode),
		string(settings.Style),
		strconv.Itoa(count),
		string(settings.Mentor),
	}, "#")
}
