package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	photonormalizer "github.com/menta2k/photo-normalizer"
	"github.com/menta2k/photo-normalizer/internal/config"
	"github.com/menta2k/photo-normalizer/internal/utils"
	"github.com/menta2k/photo-normalizer/pkg/types"
)

func main() {
	var in, outDir, configPath string
	var maxSize, quality int
	var canvasSize, bg, grey, replace string
	var logFormat, logLevel string
	var showVersion bool
	var dumpConfig string

	flag.StringVar(&in, "in", "", "input folder with png/jpg/jpeg/bmp/gif/webp images")
	flag.StringVar(&outDir, "out", "out", "output folder (created if missing)")
	flag.StringVar(&configPath, "config", "", "JSON config file (default ~/.config/photo-normalizer/config.json if present)")

	flag.IntVar(&maxSize, "max-size", 500, "longest side of the subject after resizing (px)")
	flag.StringVar(&canvasSize, "canvas", "1000x1000", "final canvas size WxH")
	flag.StringVar(&bg, "bg", "#ffffff", "canvas and flattening background color (#rrggbb or r,g,b)")
	flag.StringVar(&grey, "grey-threshold", "200,200,200", "pixels at or above this color on every channel are replaced")
	flag.StringVar(&replace, "replace", "#ffffff", "replacement color for light-grey pixels")
	flag.IntVar(&quality, "quality", 85, "WebP output quality (1-100)")

	flag.StringVar(&logFormat, "log-format", "console", "log format: console|json")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&dumpConfig, "dump-config", "", "write the effective configuration to this JSON file and exit")

	flag.Parse()

	if showVersion {
		fmt.Println(photonormalizer.GetVersion())
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags given explicitly win over file and environment.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "out":
			cfg.Output.OutputDir = outDir
		case "max-size":
			cfg.Pipeline.MaxSize = maxSize
		case "quality":
			cfg.Output.Quality = quality
		case "canvas":
			cfg.Pipeline.CanvasSize, flagErr = types.ParseSize(canvasSize)
		case "bg":
			cfg.Pipeline.BackgroundColor, flagErr = types.ParseColor(bg)
		case "grey-threshold":
			cfg.Pipeline.GreyThreshold, flagErr = types.ParseColor(grey)
		case "replace":
			cfg.Pipeline.ReplaceColor, flagErr = types.ParseColor(replace)
		case "log-format":
			cfg.Log.Format = logFormat
		case "log-level":
			cfg.Log.Level = logLevel
		}
		if flagErr != nil {
			flagErr = fmt.Errorf("-%s: %w", f.Name, flagErr)
		}
	})
	if flagErr != nil {
		fmt.Fprintln(os.Stderr, flagErr)
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dumpConfig != "" {
		if err := cfg.SaveToFile(dumpConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", dumpConfig)
		return
	}

	if in == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -in input_folder [-out output_folder] [-config config.json] [-max-size 500] [-canvas 1000x1000] [-bg #ffffff]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	logger := newLogger(cfg.Log).With().Str("run", ksuid.New().String()).Logger()

	if !utils.DirExists(in) {
		logger.Fatal().Str("component", "MAIN").Str("input", in).Msg("input folder does not exist")
	}

	logger.Info().Str("component", "MAIN").
		Str("input", in).
		Str("output", cfg.Output.OutputDir).
		Int("max_size", cfg.Pipeline.MaxSize).
		Str("canvas", cfg.Pipeline.CanvasSize.String()).
		Str("background", cfg.Pipeline.BackgroundColor.String()).
		Msg("starting batch")

	normalizer := photonormalizer.NewWithConfig(cfg.ProcessingOptions(), logger)
	if _, err := normalizer.ProcessFolder(in, cfg.Output.OutputDir); err != nil {
		logger.Fatal().Err(err).Str("component", "MAIN").Msg("batch could not run")
	}
	// Individual file failures are logged by the processor and do not change the exit code.
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path == "" {
		if _, err := os.Stat(config.GetConfigPath()); err == nil {
			path = config.GetConfigPath()
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
