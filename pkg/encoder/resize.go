package encoder

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FitWithin はアスペクト比を保ったまま長辺を maxEdge に収めたサイズを返すのだ。
// すでに収まっている場合は元のサイズを返します。
func FitWithin(width, height, maxEdge int) (int, int) {
	if width <= maxEdge && height <= maxEdge {
		return width, height
	}
	if width >= height {
		h := height * maxEdge / width
		return maxEdge, max(h, 1)
	}
	w := width * maxEdge / height
	return max(w, 1), maxEdge
}

// Resize は src を長辺 maxEdge 以下に縮小します。
// JPEG は透過を持てないため、背景を白で塗ってから描画するのだ。
func Resize(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxEdge)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
