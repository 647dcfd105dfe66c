// Package background cleans up the background of product photos.
//
// Normalization runs in two passes:
//
//  1. Grey suppression: every pixel whose red, green and blue channels are all
//     at or above a threshold is repainted with a replacement color. The test
//     is per pixel with no connectivity, so light-grey pixels inside the
//     subject are repainted as well.
//  2. Flattening: images that can carry transparency are composited over a
//     solid background using their own alpha channel. Everything else simply
//     loses its alpha.
//
// The result is always fully opaque.
package background

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/photo-normalizer/pkg/types"
)

// Options controls background normalization.
type Options struct {
	GreyThreshold   types.Color
	ReplaceColor    types.Color
	BackgroundColor types.Color
}

// DefaultOptions whitens anything at or above (200,200,200) and flattens onto white.
func DefaultOptions() Options {
	return Options{
		GreyThreshold:   types.Color{R: 200, G: 200, B: 200},
		ReplaceColor:    types.White,
		BackgroundColor: types.White,
	}
}

// Normalize suppresses light-grey pixels and then removes transparency.
func Normalize(img image.Image, opts Options) *image.NRGBA {
	mode := types.ModeOf(img)
	suppressed := SuppressGrey(img, opts.GreyThreshold, opts.ReplaceColor)
	return Flatten(suppressed, mode, opts.BackgroundColor)
}

// SuppressGrey returns a copy of img where each pixel with R, G and B at or
// above threshold has its color channels replaced. Alpha is left untouched.
func SuppressGrey(img image.Image, threshold, replace types.Color) *image.NRGBA {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	for y := 0; y < h; y++ {
		i := y * dst.Stride
		for x := 0; x < w; x++ {
			px := dst.Pix[i : i+4 : i+4]
			if threshold.AtLeast(px[0], px[1], px[2]) {
				px[0] = replace.R
				px[1] = replace.G
				px[2] = replace.B
			}
			i += 4
		}
	}
	return dst
}

// Flatten drops the alpha channel of img. When mode carries transparency the
// pixels are first blended over bg: out = a*fg + (1-a)*bg.
func Flatten(img *image.NRGBA, mode types.Mode, bg types.Color) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	blend := mode.HasAlpha()

	for y := 0; y < h; y++ {
		si := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		di := y * dst.Stride
		for x := 0; x < w; x++ {
			r, g, b, a := img.Pix[si], img.Pix[si+1], img.Pix[si+2], img.Pix[si+3]
			if blend && a != 255 {
				r = mix(r, bg.R, a)
				g = mix(g, bg.G, a)
				b = mix(b, bg.B, a)
			}
			dst.Pix[di+0] = r
			dst.Pix[di+1] = g
			dst.Pix[di+2] = b
			dst.Pix[di+3] = 255
			si += 4
			di += 4
		}
	}
	return dst
}

// mix blends fg over bg with 8-bit alpha a, rounding to nearest.
func mix(fg, bg, a uint8) uint8 {
	v := uint32(fg)*uint32(a) + uint32(bg)*(255-uint32(a))
	return uint8((v + 127) / 255)
}
