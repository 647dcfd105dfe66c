// Package photonormalizer turns raw product photos into uniform catalog
// images.
//
// Every photo goes through the same fixed chain:
//
//  1. Background (pkg/background): near-white and light-grey pixels become
//     pure white and transparency is flattened onto the background color.
//  2. Trim (pkg/cropper, pkg/vision): uniform padding around the subject is
//     cut away, using the top-left pixel as the border color.
//  3. Resize (pkg/canvas): the subject is scaled with Lanczos resampling so
//     its longest side equals MaxSize.
//  4. Compose (pkg/canvas): the subject is centered on a solid canvas of
//     CanvasSize.
//  5. Export (pkg/processing): the canvas is written as lossy WebP.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		photonormalizer "github.com/menta2k/photo-normalizer"
//	)
//
//	func main() {
//		n := photonormalizer.New()
//		res, err := n.ProcessFolder("photos", "catalog")
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("%d written, %d failed", len(res.Processed), len(res.Failed))
//	}
//
// Files are processed one after another. A file that cannot be decoded or
// written is logged and skipped; the rest of the folder is still processed.
package photonormalizer

import (
	"image"
	"os"

	"github.com/rs/zerolog"

	"github.com/menta2k/photo-normalizer/pkg/analyzer"
	"github.com/menta2k/photo-normalizer/pkg/processing"
)

// Version of the photo normalizer library
const Version = "1.0.0"

// Normalizer provides a high-level interface to the normalization pipeline
type Normalizer struct {
	analyzer  *analyzer.ImageAnalyzer
	processor *processing.Processor
}

// New creates a Normalizer with default options that logs to stderr
func New() *Normalizer {
	return NewWithConfig(processing.DefaultOptions(), zerolog.New(os.Stderr).With().Timestamp().Logger())
}

// NewWithConfig creates a Normalizer with custom options and logger
func NewWithConfig(opts processing.Options, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		analyzer:  analyzer.New(),
		processor: processing.NewProcessor(opts, logger),
	}
}

// LoadImage loads an image from file
func (n *Normalizer) LoadImage(path string) (image.Image, error) {
	return n.processor.LoadImage(path)
}

// GetImageInfo returns basic information about an image
func (n *Normalizer) GetImageInfo(img image.Image) analyzer.ImageInfo {
	return n.analyzer.GetImageInfo(img)
}

// NormalizeImage runs the in-memory chain and returns the final canvas
func (n *Normalizer) NormalizeImage(img image.Image) *image.NRGBA {
	return n.processor.NormalizeImage(img)
}

// SaveImage writes img as WebP to path
func (n *Normalizer) SaveImage(img image.Image, path string) error {
	return n.processor.SaveImage(img, path)
}

// ProcessFile normalizes one photo; the output extension becomes .webp
func (n *Normalizer) ProcessFile(inputPath, outputPath string) (string, error) {
	return n.processor.ProcessFile(inputPath, outputPath)
}

// ProcessFolder normalizes every image in inputDir into outputDir
func (n *Normalizer) ProcessFolder(inputDir, outputDir string) (processing.BatchResult, error) {
	return n.processor.ProcessFolder(inputDir, outputDir)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
