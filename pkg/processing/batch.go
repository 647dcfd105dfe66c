package processing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/photo-normalizer/internal/utils"
)

// BatchResult summarizes a folder run.
type BatchResult struct {
	Processed []string // output paths written
	Failed    []string // input paths that could not be processed
	Skipped   int      // entries ignored because they are not image files
}

// ProcessFolder normalizes every image file directly inside inputDir and
// writes the results into outputDir, creating it if needed.
//
// Files are handled one at a time. A failing file is logged and skipped; it
// never stops the batch. The returned error only reports that the folders
// themselves could not be used.
func (p *Processor) ProcessFolder(inputDir, outputDir string) (BatchResult, error) {
	var result BatchResult

	if err := utils.EnsureDir(outputDir); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return result, fmt.Errorf("failed to read input directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !utils.IsImageFile(entry.Name()) {
			result.Skipped++
			continue
		}

		inputPath := filepath.Join(inputDir, entry.Name())
		written, err := p.ProcessFile(inputPath, filepath.Join(outputDir, entry.Name()))
		if err != nil {
			p.log.Error().Err(err).Str("input", inputPath).Msg("error processing image")
			result.Failed = append(result.Failed, inputPath)
			continue
		}

		event := p.log.Info().Str("input", inputPath).Str("output", written)
		if info, err := os.Stat(written); err == nil {
			event = event.Str("size", utils.FormatFileSize(info.Size()))
		}
		event.Msg("processed and saved")
		result.Processed = append(result.Processed, written)
	}

	p.log.Info().
		Int("processed", len(result.Processed)).
		Int("failed", len(result.Failed)).
		Int("skipped", result.Skipped).
		Msg("batch finished")

	return result, nil
}
