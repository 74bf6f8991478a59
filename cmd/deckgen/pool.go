package main

import (
	"context"
	"fmt"

	deckgen "github.com/alnah/go-deckgen"
)

// DeckGenerator is the part of deckgen.Generator the CLI uses.
type DeckGenerator interface {
	Generate(ctx context.Context, req deckgen.Request) (*deckgen.Result, error)
}

// Compile-time interface implementation check.
var _ DeckGenerator = (*deckgen.Generator)(nil)

// Pool abstracts generator pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (DeckGenerator, error)
	Release(DeckGenerator)
	Size() int
	Close() error
}

// poolAdapter exposes a *deckgen.GeneratorPool as a Pool.
type poolAdapter struct {
	pool *deckgen.GeneratorPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newGeneratorPool is the production Environment.NewPool.
func newGeneratorPool(size int, opts ...deckgen.Option) Pool {
	return &poolAdapter{pool: deckgen.NewGeneratorPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (DeckGenerator, error) {
	gen, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// Release panics when given a generator this pool did not hand out.
func (a *poolAdapter) Release(g DeckGenerator) {
	gen, ok := g.(*deckgen.Generator)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", g))
	}
	a.pool.Release(gen)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// pooledGenerator runs each Generate call on a generator borrowed from pool,
// so concurrent callers (HTTP handlers) are bounded by the pool size.
type pooledGenerator struct {
	pool Pool
}

func (p *pooledGenerator) Generate(ctx context.Context, req deckgen.Request) (*deckgen.Result, error) {
	gen, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(gen)
	return gen.Generate(ctx, req)
}
