package component

import (
	"github.com/sarchlab/partwright/hooking"
	"github.com/sarchlab/partwright/idgen"
	"github.com/sarchlab/partwright/param"
)

// PartBuilder can build parts.
type PartBuilder struct {
	env      Environment
	category string
	spec     *param.Container
	chain    ChainFactory
}

// MakePartBuilder creates a new part builder.
func MakePartBuilder() PartBuilder {
	return PartBuilder{}
}

// WithEnvironment sets the environment.
func (b PartBuilder) WithEnvironment(env Environment) PartBuilder {
	b.env = env
	return b
}

// WithCategory sets the category.
func (b PartBuilder) WithCategory(category string) PartBuilder {
	b.category = category
	return b
}

// WithSpecification sets the specification the part follows.
func (b PartBuilder) WithSpecification(spec *param.Container) PartBuilder {
	b.spec = spec
	return b
}

// WithChain sets how the stage chain is created.
func (b PartBuilder) WithChain(f ChainFactory) PartBuilder {
	b.chain = f
	return b
}

// Build creates the part and connects it to every parameter of its
// specification. Build does not schedule a recompute.
func (b PartBuilder) Build(name string) *Part {
	if b.env.Scheduler == nil {
		panic("component: part built without scheduler")
	}

	if b.chain == nil {
		panic("component: part built without chain")
	}

	spec := b.spec
	if spec == nil {
		spec = param.NewContainer()
	}

	params := param.NewContainer()
	params.Link(spec)

	p := &Part{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		category:     b.category,
		env:          b.env,
		spec:         spec,
		params:       params,
		chain:        b.chain,
		recomputeIDs: idgen.WithPrefix(idgen.NewSequential(), name+".Recompute"),
	}

	for _, h := range b.env.Hooks {
		p.AcceptHook(h)
	}

	p.connect()

	return p
}
