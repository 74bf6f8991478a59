package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadDeck           = errors.New("failed to read deck file")
	ErrWriteArtifact      = errors.New("failed to write output file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidExtension   = errors.New("deck file must have .json, .yaml or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidFlag        = errors.New("invalid flag value")
	ErrNoDeckFiles        = errors.New("no deck files found")
)

// conversionParams groups settings shared by every file of a batch.
type conversionParams struct {
	format     deckgen.Format // empty = whatever each deck file asks for
	outputDir  string
	htmlOutput bool
	htmlOnly   bool
}

// runConvertCmd runs the convert command and returns an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx = withLogger(ctx, newLogger(env.Stderr, logLevel(flags.common)))
	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	if err := validateWorkers(flags.gen.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	params, err := buildConversionParams(flags, cfg)
	if err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: pass a deck file or directory", ErrNoInput)
	}
	inputPath := positionalArgs[0]

	files, err := discoverFiles(inputPath, params.outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDeckFiles, inputPath)
	}

	opts, poolSize, err := buildGeneratorOptions(flags.gen, cfg, logger)
	if err != nil {
		return err
	}
	if poolSize > len(files) {
		poolSize = len(files)
	}
	logger.Debug("starting conversion", "files", len(files), "workers", poolSize)

	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)
	if failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d of %d conversions failed: %w", failed, len(results), firstError(results))
	}
	return nil
}

// buildConversionParams merges convert flags over the loaded config.
func buildConversionParams(flags *convertFlags, cfg *config.Config) (*conversionParams, error) {
	params := &conversionParams{
		outputDir:  cfg.Output.DefaultDir,
		htmlOutput: flags.outputMode.html,
		htmlOnly:   flags.outputMode.htmlOnly,
	}
	if flags.output != "" {
		params.outputDir = flags.output
	}

	format := cfg.Output.Format
	if flags.format != "" {
		format = flags.format
	}
	if format != "" {
		f, err := deckgen.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		params.format = f
	}

	// An explicit output file name implies its format
	if params.format == "" && hasArtifactExtension(params.outputDir) {
		f, err := deckgen.ParseFormat(strings.TrimPrefix(filepath.Ext(params.outputDir), "."))
		if err != nil {
			return nil, err
		}
		params.format = f
	}
	return params, nil
}

// buildGeneratorOptions turns generation flags and config into generator
// options and a pool size. Flags win over config.
func buildGeneratorOptions(flags generationFlags, cfg *config.Config, logger *log.Logger) ([]deckgen.Option, int, error) {
	timeout, err := resolveTimeout(flags.timeout, cfg.Capture.Timeout)
	if err != nil {
		return nil, 0, err
	}

	page, err := buildPageSettings(flags.page, cfg.Page)
	if err != nil {
		return nil, 0, err
	}

	opts := []deckgen.Option{
		deckgen.WithLogger(logger),
		deckgen.WithPageSettings(page),
	}
	if timeout > 0 {
		opts = append(opts, deckgen.WithTimeout(timeout))
	}

	style := cfg.Style
	if flags.assets.style != "" {
		style = flags.assets.style
	}
	if style != "" {
		opts = append(opts, deckgen.WithStyle(style))
	}

	assetPath := cfg.Assets.BasePath
	if flags.assets.assetPath != "" {
		assetPath = flags.assets.assetPath
	}
	if assetPath != "" {
		opts = append(opts, deckgen.WithAssetPath(assetPath))
	}

	workers := cfg.Capture.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}
	return opts, deckgen.ResolvePoolSize(workers), nil
}

// buildPageSettings starts from the defaults (A4 landscape, 0.5in) and
// applies config then flags.
func buildPageSettings(flags pageFlags, cfg config.PageConfig) (*deckgen.PageSettings, error) {
	page := deckgen.DefaultPageSettings()

	if cfg.Size != "" {
		page.Size = cfg.Size
	}
	if cfg.Orientation != "" {
		page.Orientation = cfg.Orientation
	}
	if cfg.Margin > 0 {
		page.Margin = cfg.Margin
	}

	if flags.size != "" {
		page.Size = flags.size
	}
	if flags.orientation != "" {
		page.Orientation = flags.orientation
	}
	if flags.margin > 0 {
		page.Margin = flags.margin
	}

	page.Size = strings.ToLower(page.Size)
	page.Orientation = strings.ToLower(page.Orientation)
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// firstError returns the error of the first failed result.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// elapsed rounds a duration for display.
func elapsed(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
