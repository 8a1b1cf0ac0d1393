// Package idgen provides ID generators. Generators are plain values that are
// passed to whoever needs them; there is no process-wide instance.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator can generate IDs.
type Generator interface {
	// Generate an ID.
	Generate() string
}

// NewSequential returns a generator whose first emitted ID is "1". IDs are
// deterministic for a deterministic call order.
func NewSequential() Generator {
	return &sequentialGenerator{}
}

// NewParallel returns a generator that produces globally unique IDs without
// coordination. The IDs are not deterministic.
func NewParallel() Generator {
	return parallelGenerator{}
}

// WithPrefix decorates a generator so that every ID starts with prefix.
func WithPrefix(g Generator, prefix string) Generator {
	return prefixedGenerator{inner: g, prefix: prefix}
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type parallelGenerator struct{}

func (parallelGenerator) Generate() string {
	return xid.New().String()
}

type prefixedGenerator struct {
	inner  Generator
	prefix string
}

func (g prefixedGenerator) Generate() string {
	return g.prefix + g.inner.Generate()
}
