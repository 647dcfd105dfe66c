package cropper

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/menta2k/photo-normalizer/pkg/types"
	"github.com/menta2k/photo-normalizer/pkg/vision"
)

// Trim removes uniform padding around the subject.
//
// When border is nil the border color is sampled from the top-left pixel.
// If every pixel matches the border color the image is returned unchanged,
// since a blank image has no subject to crop to.
func Trim(img image.Image, border *types.Color) *image.NRGBA {
	rect, ok := Bounds(img, border)
	if !ok {
		return imaging.Clone(img)
	}
	return imaging.Crop(img, rect.Add(img.Bounds().Min))
}

// Bounds reports the subject rectangle Trim would crop to, relative to the
// image origin. ok is false for a uniform image.
func Bounds(img image.Image, border *types.Color) (image.Rectangle, bool) {
	return vision.DifferenceBounds(img, referenceColor(img, border))
}

func referenceColor(img image.Image, border *types.Color) color.NRGBA {
	if border == nil {
		return vision.SampleCorner(img)
	}
	return border.NRGBA()
}
