package vision

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// SampleCorner returns the top-left pixel of img as non-premultiplied RGBA.
// An empty image yields the zero color.
func SampleCorner(img image.Image) color.NRGBA {
	b := img.Bounds()
	if b.Empty() {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(img.At(b.Min.X, b.Min.Y)).(color.NRGBA)
}

// Difference returns the per-channel absolute difference between img and a
// uniform reference image of the same size filled with ref.
func Difference(img image.Image, ref color.NRGBA) *image.NRGBA {
	src := asNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	refPx := [4]uint8{ref.R, ref.G, ref.B, ref.A}

	for y := 0; y < h; y++ {
		si := y * src.Stride
		di := y * dst.Stride
		for x := 0; x < w*4; x++ {
			dst.Pix[di+x] = absDiff(src.Pix[si+x], refPx[x%4])
		}
	}
	return dst
}

// DifferenceBounds finds the smallest rectangle enclosing every pixel that
// differs from ref on any channel. The rectangle is relative to an origin at
// (0,0) and its max is exclusive. ok is false when no pixel differs.
//
// There is no tolerance: a single off-by-one pixel extends the box.
func DifferenceBounds(img image.Image, ref color.NRGBA) (bounds image.Rectangle, ok bool) {
	src := asNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1

	for y := 0; y < h; y++ {
		i := y * src.Stride
		for x := 0; x < w; x++ {
			px := src.Pix[i : i+4 : i+4]
			if px[0] != ref.R || px[1] != ref.G || px[2] != ref.B || px[3] != ref.A {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// asNRGBA returns img as an *image.NRGBA anchored at (0,0), copying only when needed.
func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
