package main

// Notes:
// - runConvert: we test the full flow with a fake pool (format override,
//   directory batches, failures) and once with the real PPTX writer.
// - buildConversionParams: we test flag/config precedence and format
//   inference from an output file name.
// - buildGeneratorOptions/buildPageSettings: we test precedence, defaults
//   and validation. Options are opaque, so we only count them.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunConvert - End-to-end conversion with a fake pool
// ---------------------------------------------------------------------------

func TestRunConvert_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.json", validJSONDeck)

	gen := &fakeGenerator{data: []byte("PK-fake")}
	pool := &fakePool{gen: gen}
	var size int
	env, stdout, _ := testEnv(poolFactory(pool, &size))

	err := runConvert(context.Background(), []string{input}, &convertFlags{}, env)
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	out := filepath.Join(dir, "review.pptx")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "PK-fake" {
		t.Errorf("output = %q, want PK-fake", data)
	}
	if size != 1 {
		t.Errorf("pool size = %d, want 1 (capped at file count)", size)
	}
	if !pool.closed {
		t.Error("pool was not closed")
	}
	if !strings.Contains(stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q, want Created line", stdout.String())
	}
}

func TestRunConvert_FormatFlagOverridesDeck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "roadmap.yaml", validYAMLDeck)
	outDir := filepath.Join(dir, "out")

	gen := &fakeGenerator{data: []byte("%PDF-fake")}
	env, _, _ := testEnv(poolFactory(&fakePool{gen: gen}, nil))

	flags := &convertFlags{format: "pdf", output: outDir}
	if err := runConvert(context.Background(), []string{input}, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "roadmap.pdf")); err != nil {
		t.Errorf("expected roadmap.pdf in output dir: %v", err)
	}
	if len(gen.requests) != 1 || gen.requests[0].Format != deckgen.FormatPDF {
		t.Errorf("requests = %+v, want one PDF request", gen.requests)
	}
}

func TestRunConvert_DeckFormatUsedWithoutFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "board.yaml", pdfYAMLDeck)

	gen := &fakeGenerator{data: []byte("%PDF-fake")}
	env, _, _ := testEnv(poolFactory(&fakePool{gen: gen}, nil))

	if err := runConvert(context.Background(), []string{input}, &convertFlags{}, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "board.pdf")); err != nil {
		t.Errorf("expected board.pdf next to input: %v", err)
	}
}

func TestRunConvert_OutputFileImpliesFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.json", validJSONDeck)
	out := filepath.Join(dir, "final", "deck.pdf")

	gen := &fakeGenerator{data: []byte("%PDF-fake")}
	env, _, _ := testEnv(poolFactory(&fakePool{gen: gen}, nil))

	flags := &convertFlags{output: out}
	if err := runConvert(context.Background(), []string{input}, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s: %v", out, err)
	}
	if gen.requests[0].Format != deckgen.FormatPDF {
		t.Errorf("Format = %q, want pdf", gen.requests[0].Format)
	}
}

func TestRunConvert_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "board.yaml", pdfYAMLDeck)

	gen := &fakeGenerator{data: []byte("%PDF-fake")}
	env, stdout, _ := testEnv(poolFactory(&fakePool{gen: gen}, nil))

	flags := &convertFlags{outputMode: outputFlags{htmlOnly: true}}
	if err := runConvert(context.Background(), []string{input}, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	htmlPath := filepath.Join(dir, "board.html")
	if _, err := os.Stat(htmlPath); err != nil {
		t.Errorf("expected %s: %v", htmlPath, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "board.pdf")); !os.IsNotExist(err) {
		t.Errorf("board.pdf should not exist in html-only mode, stat err = %v", err)
	}
	if !gen.requests[0].HTMLOnly {
		t.Error("request HTMLOnly = false, want true")
	}
	if !strings.Contains(stdout.String(), htmlPath) {
		t.Errorf("stdout = %q, want to name %s", stdout.String(), htmlPath)
	}
}

func TestRunConvert_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "decks")
	writeFile(t, in, "a.json", validJSONDeck)
	writeFile(t, in, "nested/b.yml", validYAMLDeck)
	writeFile(t, in, "notes.txt", "not a deck")
	outDir := filepath.Join(dir, "out")

	gen := &fakeGenerator{data: []byte("PK")}
	pool := &fakePool{gen: gen, size: 2}
	var size int
	env, stdout, _ := testEnv(poolFactory(pool, &size))

	flags := &convertFlags{output: outDir, gen: generationFlags{workers: 4}}
	if err := runConvert(context.Background(), []string{in}, flags, env); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	for _, p := range []string{"a.pptx", filepath.Join("nested", "b.pptx")} {
		if _, err := os.Stat(filepath.Join(outDir, p)); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
	if size != 2 {
		t.Errorf("pool size = %d, want 2 (workers capped at file count)", size)
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", stdout.String())
	}
}

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) []string
		flags   *convertFlags
		genErr  error
		wantErr error
	}{
		{
			name:    "no input",
			setup:   func(*testing.T, string) []string { return nil },
			flags:   &convertFlags{},
			wantErr: ErrNoInput,
		},
		{
			name: "missing file",
			setup: func(_ *testing.T, dir string) []string {
				return []string{filepath.Join(dir, "missing.json")}
			},
			flags:   &convertFlags{},
			wantErr: os.ErrNotExist,
		},
		{
			name: "wrong extension",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.md", "# nope")}
			},
			flags:   &convertFlags{},
			wantErr: ErrInvalidExtension,
		},
		{
			name: "empty directory",
			setup: func(t *testing.T, dir string) []string {
				writeFile(t, dir, "readme.txt", "nothing")
				return []string{dir}
			},
			flags:   &convertFlags{},
			wantErr: ErrNoDeckFiles,
		},
		{
			name: "invalid structure",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.json", `{"slides": []}`)}
			},
			flags:   &convertFlags{},
			wantErr: deckgen.ErrInvalidStructure,
		},
		{
			name: "bad format flag",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.json", validJSONDeck)}
			},
			flags:   &convertFlags{format: "docx"},
			wantErr: deckgen.ErrUnsupportedFormat,
		},
		{
			name: "generation failure",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.json", validJSONDeck)}
			},
			flags:   &convertFlags{},
			genErr:  deckgen.ErrBrowserConnect,
			wantErr: deckgen.ErrBrowserConnect,
		},
		{
			name: "invalid page size",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.json", validJSONDeck)}
			},
			flags:   &convertFlags{gen: generationFlags{page: pageFlags{size: "tabloid"}}},
			wantErr: deckgen.ErrInvalidPageSize,
		},
		{
			name: "negative workers",
			setup: func(t *testing.T, dir string) []string {
				return []string{writeFile(t, dir, "deck.json", validJSONDeck)}
			},
			flags:   &convertFlags{gen: generationFlags{workers: -1}},
			wantErr: ErrInvalidWorkerCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := tt.setup(t, t.TempDir())
			gen := &fakeGenerator{data: []byte("PK"), err: tt.genErr}
			env, _, _ := testEnv(poolFactory(&fakePool{gen: gen}, nil))

			err := runConvert(context.Background(), args, tt.flags, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runConvert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunConvert_RealGenerator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "roadmap.yaml", validYAMLDeck)

	env, _, stderr := testEnv(nil)
	if err := runConvert(context.Background(), []string{input}, &convertFlags{}, env); err != nil {
		t.Fatalf("runConvert() error = %v (stderr: %s)", err, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "roadmap.pptx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) < 4 || string(data[:2]) != "PK" {
		t.Errorf("output does not look like a zip package: % x", data[:min(len(data), 4)])
	}
}

// ---------------------------------------------------------------------------
// TestBuildConversionParams - Flag and config merge
// ---------------------------------------------------------------------------

func TestBuildConversionParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flags      *convertFlags
		cfg        *config.Config
		wantFormat deckgen.Format
		wantDir    string
		wantErr    error
	}{
		{
			name:  "defaults",
			flags: &convertFlags{},
			cfg:   config.DefaultConfig(),
		},
		{
			name:       "config format and dir",
			flags:      &convertFlags{},
			cfg:        &config.Config{Output: config.OutputConfig{DefaultDir: "/cfg", Format: "pdf"}},
			wantFormat: deckgen.FormatPDF,
			wantDir:    "/cfg",
		},
		{
			name:       "flags win",
			flags:      &convertFlags{output: "/flag", format: "PPTX"},
			cfg:        &config.Config{Output: config.OutputConfig{DefaultDir: "/cfg", Format: "pdf"}},
			wantFormat: deckgen.FormatPPTX,
			wantDir:    "/flag",
		},
		{
			name:       "output file implies format",
			flags:      &convertFlags{output: "/tmp/deck.pdf"},
			cfg:        config.DefaultConfig(),
			wantFormat: deckgen.FormatPDF,
			wantDir:    "/tmp/deck.pdf",
		},
		{
			name:    "unknown format",
			flags:   &convertFlags{format: "key"},
			cfg:     config.DefaultConfig(),
			wantErr: deckgen.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildConversionParams(tt.flags, tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("buildConversionParams() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildConversionParams() unexpected error: %v", err)
			}
			if got.format != tt.wantFormat {
				t.Errorf("format = %q, want %q", got.format, tt.wantFormat)
			}
			if got.outputDir != tt.wantDir {
				t.Errorf("outputDir = %q, want %q", got.outputDir, tt.wantDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPageSettings - Defaults, config, flags
// ---------------------------------------------------------------------------

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   pageFlags
		cfg     config.PageConfig
		want    deckgen.PageSettings
		wantErr error
	}{
		{
			name: "defaults",
			want: deckgen.PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5},
		},
		{
			name: "config applied",
			cfg:  config.PageConfig{Size: "Letter", Orientation: "portrait", Margin: 1},
			want: deckgen.PageSettings{Size: "letter", Orientation: "portrait", Margin: 1},
		},
		{
			name:  "flags win",
			flags: pageFlags{size: "legal", margin: 2},
			cfg:   config.PageConfig{Size: "letter", Margin: 1},
			want:  deckgen.PageSettings{Size: "legal", Orientation: "landscape", Margin: 2},
		},
		{
			name:    "invalid orientation",
			flags:   pageFlags{orientation: "sideways"},
			wantErr: deckgen.ErrInvalidOrientation,
		},
		{
			name:    "margin too large",
			flags:   pageFlags{margin: 5},
			wantErr: deckgen.ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildPageSettings(tt.flags, tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("buildPageSettings() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildPageSettings() unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("buildPageSettings() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildGeneratorOptions - Option assembly
// ---------------------------------------------------------------------------

func TestBuildGeneratorOptions(t *testing.T) {
	t.Parallel()

	logger := log.New(&strings.Builder{})

	t.Run("minimal", func(t *testing.T) {
		t.Parallel()

		opts, size, err := buildGeneratorOptions(generationFlags{workers: 2}, config.DefaultConfig(), logger)
		if err != nil {
			t.Fatalf("buildGeneratorOptions() error = %v", err)
		}
		// logger and page settings
		if len(opts) != 2 {
			t.Errorf("len(opts) = %d, want 2", len(opts))
		}
		if size != 2 {
			t.Errorf("pool size = %d, want 2", size)
		}
	})

	t.Run("all set", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style = "corporate"
		cfg.Capture = config.CaptureConfig{Timeout: time.Minute, Workers: 3}
		flags := generationFlags{assets: assetFlags{assetPath: "/assets"}}

		opts, size, err := buildGeneratorOptions(flags, cfg, logger)
		if err != nil {
			t.Fatalf("buildGeneratorOptions() error = %v", err)
		}
		// logger, page, timeout, style, asset path
		if len(opts) != 5 {
			t.Errorf("len(opts) = %d, want 5", len(opts))
		}
		if size != 3 {
			t.Errorf("pool size = %d, want 3 (from config)", size)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildGeneratorOptions(generationFlags{timeout: "later"}, config.DefaultConfig(), logger)
		if !errors.Is(err, ErrInvalidFlag) {
			t.Errorf("buildGeneratorOptions() error = %v, want ErrInvalidFlag", err)
		}
	})
}
