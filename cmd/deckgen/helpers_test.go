package main

// Notes:
// - This file contains fakes and fixtures shared by the command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const validJSONDeck = `{
  "title": "Quarterly Review",
  "slides": [
    {"title": "Welcome", "content": "Q3 results", "type": "title"},
    {"title": "Highlights", "content": "Revenue up\nCosts down", "type": "content"}
  ]
}`

const validYAMLDeck = `title: Roadmap
slides:
  - title: Next steps
    content: "Hire, Ship, Measure"
    type: content
`

const pdfYAMLDeck = `title: Board Update
format: pdf
slides:
  - title: Summary
    content: All green
    type: content
`

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// testEnv returns an Environment writing to buffers, with newPool as its
// pool factory (nil keeps the real generator pool).
func testEnv(newPool func(size int, opts ...deckgen.Option) Pool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout:  stdout,
		Stderr:  stderr,
		NewPool: newGeneratorPool,
	}
	if newPool != nil {
		env.NewPool = newPool
	}
	return env, stdout, stderr
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// fakeGenerator returns a fixed result or error and records requests.
type fakeGenerator struct {
	mu       sync.Mutex
	err      error
	data     []byte
	requests []deckgen.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req deckgen.Request) (*deckgen.Result, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}
	format, err := deckgen.ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	res := &deckgen.Result{
		Format:    format,
		MediaType: format.MediaType(),
		Filename:  deckgen.Filename(req.Title, format),
		Slides:    len(req.Slides),
		Data:      g.data,
	}
	if format == deckgen.FormatPDF {
		res.HTML = []byte("<html>" + req.Title + "</html>")
		if req.HTMLOnly {
			res.Data = nil
		}
	}
	return res, nil
}

// fakePool hands out one shared generator.
type fakePool struct {
	gen        DeckGenerator
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire(_ context.Context) (DeckGenerator, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.gen, nil
}

func (p *fakePool) Release(DeckGenerator) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int {
	if p.size < 1 {
		return 1
	}
	return p.size
}

func (p *fakePool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// poolFactory returns an Environment.NewPool that always yields p and
// records the requested size.
func poolFactory(p *fakePool, gotSize *int) func(int, ...deckgen.Option) Pool {
	return func(size int, _ ...deckgen.Option) Pool {
		if gotSize != nil {
			*gotSize = size
		}
		return p
	}
}
