package canvas

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/photo-normalizer/pkg/types"
)

// TargetSize returns the dimensions that make the longest side equal maxSize
// while keeping the aspect ratio. The other side is truncated toward zero.
// A square counts as portrait: height is the controlled side.
func TargetSize(width, height, maxSize int) (int, int) {
	if width <= 0 || height <= 0 || maxSize <= 0 {
		return 0, 0
	}
	aspect := float64(width) / float64(height)

	var w, h int
	if width > height {
		w = maxSize
		h = int(float64(maxSize) / aspect)
	} else {
		h = maxSize
		w = int(float64(maxSize) * aspect)
	}
	// imaging treats a zero side as "keep aspect", which would undo the bound.
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// FitLongestSide scales img so its longest side is exactly maxSize using
// Lanczos resampling. Smaller images are enlarged.
func FitLongestSide(img image.Image, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), maxSize)
	if w == 0 || h == 0 {
		return imaging.Clone(img)
	}
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Offset centers a length of n inside a length of total using floor
// division. The result is negative when n exceeds total.
func Offset(total, n int) int {
	d := total - n
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}

// Compose pastes subject onto a solid canvas of the given size, centered.
// The paste is an opaque overwrite. A subject larger than the canvas is
// clipped on the overflowing axis.
func Compose(subject image.Image, size types.Size, bg types.Color) *image.NRGBA {
	dst := imaging.New(size.Width, size.Height, bg.NRGBA())
	b := subject.Bounds()
	pos := image.Pt(Offset(size.Width, b.Dx()), Offset(size.Height, b.Dy()))
	return imaging.Paste(dst, subject, pos)
}
