package background

import (
	"image"
	"image/color"
	"testing"

	"github.com/menta2k/photo-normalizer/pkg/types"
)

// createTestImage creates a uniform NRGBA image
func createTestImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func assertUniform(t *testing.T, img *image.NRGBA, want color.NRGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.GreyThreshold != (types.Color{R: 200, G: 200, B: 200}) {
		t.Errorf("GreyThreshold = %v, want (200,200,200)", opts.GreyThreshold)
	}
	if opts.ReplaceColor != types.White {
		t.Errorf("ReplaceColor = %v, want white", opts.ReplaceColor)
	}
	if opts.BackgroundColor != types.White {
		t.Errorf("BackgroundColor = %v, want white", opts.BackgroundColor)
	}
}

func TestNormalize_LightPixelsBecomeReplaceColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(200 + x%56),
				G: uint8(200 + y%56),
				B: uint8(255 - (x+y)%56),
				A: 255,
			})
		}
	}

	opts := DefaultOptions()
	opts.ReplaceColor = types.Color{R: 250, G: 240, B: 230}
	out := Normalize(img, opts)

	if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 48 {
		t.Fatalf("size changed: got %v", out.Bounds())
	}
	assertUniform(t, out, color.NRGBA{250, 240, 230, 255})
}

func TestNormalize_FullyTransparentBecomesBackground(t *testing.T) {
	img := createTestImage(30, 20, color.NRGBA{10, 20, 30, 0})

	opts := DefaultOptions()
	opts.BackgroundColor = types.Color{R: 0, G: 128, B: 255}
	out := Normalize(img, opts)

	assertUniform(t, out, color.NRGBA{0, 128, 255, 255})
}

func TestNormalize_PalettedTransparency(t *testing.T) {
	palette := color.Palette{color.NRGBA{0, 0, 0, 0}, color.NRGBA{200, 0, 0, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 10, 10), palette)
	img.SetColorIndex(5, 5, 1)

	if mode := types.ModeOf(img); mode != types.ModePaletteTransparent {
		t.Fatalf("ModeOf = %v, want %v", mode, types.ModePaletteTransparent)
	}

	out := Normalize(img, DefaultOptions())
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("transparent pixel = %v, want white", got)
	}
	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{200, 0, 0, 255}) {
		t.Errorf("subject pixel = %v, want opaque red", got)
	}
}

func TestNormalize_OutputIsOpaque(t *testing.T) {
	img := createTestImage(8, 8, color.NRGBA{50, 60, 70, 128})
	out := Normalize(img, DefaultOptions())

	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, out.Pix[i])
		}
	}
}

func TestSuppressGrey_ThresholdIsInclusive(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 200, 200, 255})
	img.SetNRGBA(1, 0, color.NRGBA{199, 255, 255, 255})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 199, 255})

	out := SuppressGrey(img, types.Color{R: 200, G: 200, B: 200}, types.White)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("(200,200,200) = %v, want replaced", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{199, 255, 255, 255}) {
		t.Errorf("(199,255,255) = %v, want unchanged", got)
	}
	if got := out.NRGBAAt(2, 0); got != (color.NRGBA{255, 255, 199, 255}) {
		t.Errorf("(255,255,199) = %v, want unchanged", got)
	}
}

func TestSuppressGrey_KeepsAlpha(t *testing.T) {
	img := createTestImage(2, 2, color.NRGBA{210, 215, 220, 100})
	out := SuppressGrey(img, types.Color{R: 200, G: 200, B: 200}, types.White)

	assertUniform(t, out, color.NRGBA{255, 255, 255, 100})
}

func TestSuppressGrey_DoesNotModifyInput(t *testing.T) {
	img := createTestImage(2, 2, color.NRGBA{220, 220, 220, 255})
	SuppressGrey(img, types.Color{R: 200, G: 200, B: 200}, types.White)

	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{220, 220, 220, 255}) {
		t.Errorf("input was modified: %v", got)
	}
}

func TestFlatten_BlendsPartialAlpha(t *testing.T) {
	img := createTestImage(1, 1, color.NRGBA{0, 0, 0, 128})
	out := Flatten(img, types.ModeRGBA, types.White)

	// (0*128 + 255*127 + 127) / 255 = 127
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{127, 127, 127, 255}) {
		t.Errorf("blended pixel = %v, want (127,127,127,255)", got)
	}
}

func TestFlatten_OpaqueModeDropsAlpha(t *testing.T) {
	img := createTestImage(1, 1, color.NRGBA{10, 20, 30, 0})
	out := Flatten(img, types.ModeRGB, types.White)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v, want color kept with alpha 255", got)
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		fg, bg, a, want uint8
	}{
		{0, 255, 0, 255},
		{0, 255, 255, 0},
		{100, 200, 255, 100},
		{255, 0, 128, 128},
	}
	for _, tt := range tests {
		if got := mix(tt.fg, tt.bg, tt.a); got != tt.want {
			t.Errorf("mix(%d,%d,%d) = %d, want %d", tt.fg, tt.bg, tt.a, got, tt.want)
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	img := createTestImage(2000, 1500, color.NRGBA{220, 220, 220, 255})
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Normalize(img, opts)
	}
}
