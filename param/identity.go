package param

import "github.com/sarchlab/partwright/idgen"

// Identity is the (name, symbol) pair that identifies a parameter.
type Identity struct {
	Name   string
	Symbol string
}

func (id Identity) String() string {
	return id.Name + " (" + id.Symbol + ")"
}

// An IdentityGenerator hands out unique identities for parameters created
// without one. Create one per process (or per test) and pass it around.
type IdentityGenerator struct {
	ids idgen.Generator
}

// NewIdentityGenerator creates a generator backed by a sequential ID source.
func NewIdentityGenerator() *IdentityGenerator {
	return &IdentityGenerator{ids: idgen.NewSequential()}
}

// NewIdentityGeneratorWith creates a generator backed by ids.
func NewIdentityGeneratorWith(ids idgen.Generator) *IdentityGenerator {
	return &IdentityGenerator{ids: ids}
}

// Next returns a fresh identity such as {"Parameter3", "P3"}.
func (g *IdentityGenerator) Next() Identity {
	n := g.ids.Generate()

	return Identity{
		Name:   "Parameter" + n,
		Symbol: "P" + n,
	}
}
