package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds PDF page flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds theme and asset directory flags.
type assetFlags struct {
	style     string // theme name, CSS file path or raw CSS
	assetPath string // override asset directory
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // write the rendered page markup alongside the PDF
	htmlOnly bool // write the markup only, skip capture
}

// generationFlags holds flags shared by every command that generates decks.
type generationFlags struct {
	workers int
	timeout string
	page    pageFlags
	assets  assetFlags
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	format     string
	gen        generationFlags
	outputMode outputFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
	gen    generationFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addGenerationFlags adds pool, timeout, page and asset flags to a FlagSet.
func addGenerationFlags(fs *flag.FlagSet, f *generationFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent generations (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-deck timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.page.size, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.page.orientation, "orientation", "", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.page.margin, "margin", 0, "PDF margin in inches (0.25-3.0)")
	fs.StringVar(&f.assets.style, "style", "", "PDF theme name or CSS file path")
	fs.StringVar(&f.assets.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write page markup alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write page markup only, skip PDF capture")
}

// newConvertFlagSet registers every convert flag into f.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: pptx, pdf (default: from deck file)")
	addCommonFlags(fs, &f.common)
	addGenerationFlags(fs, &f.gen)
	addOutputFlags(fs, &f.outputMode)
	return fs
}

// newServeFlagSet registers every serve flag into f.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&f.addr, "addr", "", "listen address (default: :8080)")
	addCommonFlags(fs, &f.common)
	addGenerationFlags(fs, &f.gen)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
