package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	deckgen "github.com/alnah/go-deckgen"
)

// deckExtensions lists the file extensions treated as deck files.
var deckExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// FileToConvert represents a single file to process.
// OutputPath has no extension unless the user named an output file; the
// extension is chosen once the deck's format is known.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all deck files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDeckExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isDeckFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path (without extension) for a
// deck file. An outputDir ending in .pptx or .pdf names the output file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if hasArtifactExtension(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base)
		}
	}

	return filepath.Join(outputDir, base)
}

// artifactPath adds the format extension unless the path already names an
// output file.
func artifactPath(outputPath string, f deckgen.Format) string {
	if hasArtifactExtension(outputPath) {
		return outputPath
	}
	return outputPath + "." + f.Extension()
}

// hasArtifactExtension reports whether path ends in .pptx or .pdf.
func hasArtifactExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pptx", ".pdf":
		return true
	}
	return false
}

// isDeckFile reports whether path has a deck file extension.
func isDeckFile(path string) bool {
	return deckExtensions[strings.ToLower(filepath.Ext(path))]
}

// validateDeckExtension checks that the file has a deck file extension.
func validateDeckExtension(path string) error {
	if !isDeckFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > deckgen.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, deckgen.MaxPoolSize)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to an output path.
func htmlOutputPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".html"
}
