package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Generate PPTX or PDF decks from JSON/YAML deck files")
	fmt.Fprintln(w, "  serve       Run the HTTP generation API")
	fmt.Fprintln(w, "  doctor      Check system configuration for PDF output")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'deckgen help <command>' for details on a specific command.")
}

// printGenerationUsage prints the flags shared by convert and serve.
func printGenerationUsage(w io.Writer) {
	fmt.Fprintln(w, "Generation:")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent generations (0 = auto, max 8)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-deck timeout (e.g., 30s, 2m; default: none)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal (default: a4)")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape (default: landscape)")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0, default: 0.5)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           PDF theme name or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/, templates/)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate slide decks from deck files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Deck file (.json, .yaml, .yml) or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (.pptx, .pdf) or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: pptx, pdf (default: from deck file, else pptx)")
	fmt.Fprintln(w, "      --html                Also write the PDF page markup")
	fmt.Fprintln(w, "      --html-only           Write the PDF page markup only, skip capture")
	fmt.Fprintln(w)
	printGenerationUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DECKGEN_CONFIG, DECKGEN_STYLE, DECKGEN_TIMEOUT, DECKGEN_OUTPUT_DIR,")
	fmt.Fprintln(w, "  DECKGEN_FORMAT, DECKGEN_WORKERS")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  POST /api/generate-ppt    Deck request (JSON or YAML) -> PPTX or PDF")
	fmt.Fprintln(w, "  GET  /healthz             Liveness probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: :8080)")
	fmt.Fprintln(w)
	printGenerationUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DECKGEN_CONFIG, DECKGEN_STYLE, DECKGEN_TIMEOUT, DECKGEN_WORKERS, DECKGEN_ADDR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: deckgen doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container and temp directory setup for PDF output.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: deckgen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: deckgen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
