package main

// Notes:
// - discoverFiles: we test single files, recursive directories and filtering
//   of non-deck files.
// - resolveOutputPath/artifactPath: we test that extensions are only added
//   once the format is known and that an explicit output file is kept.
// - validateWorkers: we test the bounds.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	deckgen "github.com/alnah/go-deckgen"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input scanning
// ---------------------------------------------------------------------------

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "deck.yaml", validYAMLDeck)

	files, err := discoverFiles(input, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if files[0].OutputPath != filepath.Join(dir, "deck") {
		t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, filepath.Join(dir, "deck"))
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", validJSONDeck)
	writeFile(t, dir, "sub/b.YAML", validYAMLDeck)
	writeFile(t, dir, "sub/c.yml", validYAMLDeck)
	writeFile(t, dir, "sub/readme.md", "# not a deck")
	out := filepath.Join(t.TempDir(), "out")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.OutputPath)
	}
	sort.Strings(got)
	want := []string{
		filepath.Join(out, "a"),
		filepath.Join(out, "sub", "b"),
		filepath.Join(out, "sub", "c"),
	}
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := writeFile(t, dir, "notes.md", "# notes")

	if _, err := discoverFiles(md, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(.md) error = %v, want ErrInvalidExtension", err)
	}
	if _, err := discoverFiles(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("discoverFiles(missing) error = nil, want error")
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output naming
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to input", "/decks/q3.json", "", "", "/decks/q3"},
		{"into directory", "/decks/q3.json", "/out", "", "/out/q3"},
		{"explicit pptx file", "/decks/q3.json", "/out/final.pptx", "", "/out/final.pptx"},
		{"explicit pdf file", "/decks/q3.yaml", "/out/final.PDF", "", "/out/final.PDF"},
		{"keeps relative dirs", "/decks/team/q3.yml", "/out", "/decks", "/out/team/q3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(filepath.FromSlash(tt.input), filepath.FromSlash(tt.outputDir), filepath.FromSlash(tt.baseDir))
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("resolveOutputPath() = %q, want %q", got, filepath.FromSlash(tt.want))
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		format deckgen.Format
		want   string
	}{
		{"out/q3", deckgen.FormatPPTX, "out/q3.pptx"},
		{"out/q3", deckgen.FormatPDF, "out/q3.pdf"},
		{"out/final.pdf", deckgen.FormatPDF, "out/final.pdf"},
		{"out/final.pptx", deckgen.FormatPDF, "out/final.pptx"},
	}

	for _, tt := range tests {
		if got := artifactPath(tt.path, tt.format); got != tt.want {
			t.Errorf("artifactPath(%q, %q) = %q, want %q", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	if got := htmlOutputPath("out/q3.pdf"); got != "out/q3.html" {
		t.Errorf("htmlOutputPath() = %q, want out/q3.html", got)
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, deckgen.MaxPoolSize} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, deckgen.MaxPoolSize + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}
