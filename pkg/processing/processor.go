package processing

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/menta2k/photo-normalizer/pkg/analyzer"
	"github.com/menta2k/photo-normalizer/pkg/background"
	"github.com/menta2k/photo-normalizer/pkg/canvas"
	"github.com/menta2k/photo-normalizer/pkg/cropper"
	"github.com/menta2k/photo-normalizer/pkg/types"
)

// OutputExt is the extension of every file the processor writes.
const OutputExt = ".webp"

// Errors returned by ProcessFile, distinguishable with errors.Is.
var (
	ErrDecode = analyzer.ErrDecode
	ErrEncode = errors.New("encode webp")
	ErrWrite  = errors.New("write output")
)

// Options configures the per-image pipeline.
type Options struct {
	MaxSize         int
	CanvasSize      types.Size
	BackgroundColor types.Color
	GreyThreshold   types.Color
	ReplaceColor    types.Color
	Quality         int
}

// DefaultOptions returns the stock product-photo settings.
func DefaultOptions() Options {
	bg := background.DefaultOptions()
	return Options{
		MaxSize:         500,
		CanvasSize:      types.Size{Width: 1000, Height: 1000},
		BackgroundColor: bg.BackgroundColor,
		GreyThreshold:   bg.GreyThreshold,
		ReplaceColor:    bg.ReplaceColor,
		Quality:         85,
	}
}

// Processor handles image processing operations
type Processor struct {
	opts     Options
	analyzer *analyzer.ImageAnalyzer
	log      zerolog.Logger
}

// NewProcessor creates a new image processor
func NewProcessor(opts Options, logger zerolog.Logger) *Processor {
	return &Processor{
		opts:     opts,
		analyzer: analyzer.New(),
		log:      logger.With().Str("component", "PROCESSOR").Logger(),
	}
}

// Options returns the options the processor was built with.
func (p *Processor) Options() Options {
	return p.opts
}

// LoadImage loads an image from a file path
func (p *Processor) LoadImage(path string) (image.Image, error) {
	img, err := p.analyzer.LoadImage(path)
	if err != nil {
		return nil, err
	}
	if err := p.analyzer.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// NormalizeImage runs the full chain on a decoded image: background cleanup,
// trim, resize and centering. The result is exactly CanvasSize.
func (p *Processor) NormalizeImage(img image.Image) *image.NRGBA {
	// Force four channels first so flattening always sees an alpha channel.
	rgba := imaging.Clone(img)

	flat := background.Normalize(rgba, background.Options{
		GreyThreshold:   p.opts.GreyThreshold,
		ReplaceColor:    p.opts.ReplaceColor,
		BackgroundColor: p.opts.BackgroundColor,
	})
	trimmed := cropper.Trim(flat, nil)
	resized := canvas.FitLongestSide(trimmed, p.opts.MaxSize)
	return canvas.Compose(resized, p.opts.CanvasSize, p.opts.BackgroundColor)
}

// EncodeWebP writes img as lossy WebP at the configured quality.
func (p *Processor) EncodeWebP(w io.Writer, img image.Image) error {
	opts := &webp.Options{Lossless: false, Quality: float32(p.opts.Quality)}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// SaveImage encodes img to path. A partially written file is removed.
func (p *Processor) SaveImage(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return p.EncodeWebP(f, img)
}

// OutputPath places the base name of input in outputDir with a .webp extension.
func OutputPath(input, outputDir string) string {
	return filepath.Join(outputDir, withOutputExt(filepath.Base(input)))
}

func withOutputExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + OutputExt
}

// ProcessFile normalizes one photo and writes it next to outputPath with its
// extension replaced by .webp. It returns the path actually written.
func (p *Processor) ProcessFile(inputPath, outputPath string) (string, error) {
	img, err := p.LoadImage(inputPath)
	if err != nil {
		return "", err
	}

	final := p.NormalizeImage(img)

	dest := withOutputExt(outputPath)
	if err := p.SaveImage(final, dest); err != nil {
		return "", err
	}
	return dest, nil
}
