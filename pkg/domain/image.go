package domain

import "time"

// ImageInput はユーザーが選択した画像そのものです。永続化はしません。
type ImageInput struct {
	Name     string
	Data     []byte
	MIMEType string
	Size     int64
	ModTime  time.Time
}

// EncodedImagePart は送信用に Base64 化された画像なのだ。
type EncodedImagePart struct {
	Data     string
	MIMEType string
	// Resized は縮小・再エンコードを経たかどうか。
	Resized bool
}

// ImageSet は順序付きの入力画像群です。
type ImageSet []ImageInput

// Names は画像名を順番通りに返すのだ。
func (s ImageSet) Names() []string {
	names := make([]string, len(s))
	for i, img := range s {
		names[i] = img.Name
	}
	return names
}

// TotalSize は全画像の合計バイト数です。
func (s ImageSet) TotalSize() int64 {
	var total int64
	for _, img := range s {
		total += img.Size
	}
	return total
}
