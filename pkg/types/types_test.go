package types

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", White},
		{"ffffff", White},
		{"#102030", Color{0x10, 0x20, 0x30}},
		{"200,200,200", Color{200, 200, 200}},
		{" 1, 2 ,3 ", Color{1, 2, 3}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "1,2", "256,0,0", "red", "1,2,x"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestColor_String(t *testing.T) {
	if got := (Color{255, 0, 16}).String(); got != "#ff0010" {
		t.Errorf("String() = %q, want #ff0010", got)
	}
}

func TestColor_AtLeast(t *testing.T) {
	c := Color{200, 200, 200}
	if !c.AtLeast(200, 200, 200) {
		t.Error("threshold should be inclusive")
	}
	if c.AtLeast(255, 199, 255) {
		t.Error("one channel below threshold should fail")
	}
}

func TestColor_JSON(t *testing.T) {
	var v struct {
		C Color `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"c":"#0a0b0c"}`), &v); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if v.C != (Color{10, 11, 12}) {
		t.Errorf("decoded %v, want (10,11,12)", v.C)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != `{"c":"#0a0b0c"}` {
		t.Errorf("encoded %s", data)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"1000x1000", Size{1000, 1000}},
		{"800X600", Size{800, 600}},
		{"512", Size{512, 512}},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if err != nil {
			t.Errorf("ParseSize(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "axb", "1x2x3"} {
		if _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q) expected error", in)
		}
	}
}

func TestModeOf(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)
	tests := []struct {
		name string
		img  image.Image
		want Mode
	}{
		{"nrgba", image.NewNRGBA(rect), ModeRGBA},
		{"rgba", image.NewRGBA(rect), ModeRGBA},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), ModeRGB},
		{"gray", image.NewGray(rect), ModeOther},
		{"opaque palette", image.NewPaletted(rect, color.Palette{color.Black, color.White}), ModeRGB},
		{"transparent palette", image.NewPaletted(rect, color.Palette{color.Transparent, color.White}), ModePaletteTransparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeOf(tt.img); got != tt.want {
				t.Errorf("ModeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMode_HasAlpha(t *testing.T) {
	if !ModeRGBA.HasAlpha() || !ModePaletteTransparent.HasAlpha() {
		t.Error("RGBA and transparent palette modes carry alpha")
	}
	if ModeRGB.HasAlpha() || ModeOther.HasAlpha() {
		t.Error("RGB and other modes carry no alpha")
	}
}
