package types

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB color. It is used both as a threshold
// (inclusive lower bound per channel) and as a fill value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common colors
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// NRGBA returns the color as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// AtLeast reports whether every channel of (r, g, b) is >= the matching channel of c.
func (c Color) AtLeast(r, g, b uint8) bool {
	return r >= c.R && g >= c.G && b >= c.B
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts "#rrggbb", "rrggbb" or "r,g,b".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("invalid color %q: expected r,g,b", s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			ch[i] = uint8(v)
		}
		return Color{ch[0], ch[1], ch[2]}, nil
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// MarshalText implements encoding.TextMarshaler so colors read as #rrggbb in JSON.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Decode implements envconfig.Decoder.
func (c *Color) Decode(value string) error {
	return c.UnmarshalText([]byte(value))
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String formats the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize accepts "WxH" or a single integer for a square.
func ParseSize(s string) (Size, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	parts := strings.Split(s, "x")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return Size{Width: w, Height: h}, nil
}

// Decode implements envconfig.Decoder.
func (s *Size) Decode(value string) error {
	parsed, err := ParseSize(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Mode classifies how an image stores color and transparency.
type Mode int

const (
	ModeOther Mode = iota
	ModeRGB
	ModeRGBA
	ModePaletteTransparent
)

func (m Mode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	case ModePaletteTransparent:
		return "P+transparency"
	default:
		return "other"
	}
}

// HasAlpha reports whether images of this mode may carry transparency.
func (m Mode) HasAlpha() bool {
	return m == ModeRGBA || m == ModePaletteTransparent
}

// ModeOf derives the mode from the concrete image type, not from pixel data.
func ModeOf(img image.Image) Mode {
	switch im := img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return ModeRGBA
	case *image.Paletted:
		for _, c := range im.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return ModePaletteTransparent
			}
		}
		return ModeRGB
	case *image.YCbCr, *image.CMYK:
		return ModeRGB
	default:
		return ModeOther
	}
}
