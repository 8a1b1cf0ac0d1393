package component

import (
	"sync"

	"github.com/sarchlab/partwright/scheduling"
)

// An Assembly groups nodes. A node may belong to several assemblies.
type Assembly struct {
	name     string
	category string

	lock     sync.RWMutex
	children []Node
}

// NewAssembly creates an empty assembly.
func NewAssembly(name, category string) *Assembly {
	return &Assembly{name: name, category: category}
}

// Name returns the name of the assembly.
func (a *Assembly) Name() string {
	return a.name
}

// Category returns the category of the assembly.
func (a *Assembly) Category() string {
	return a.category
}

// Add appends children, keeping their order. Adding a node that is the
// assembly itself, or an assembly that already contains it at any depth,
// panics.
func (a *Assembly) Add(children ...Node) {
	for _, c := range children {
		if a.reachableFrom(c) {
			panic("component: assembly cannot contain itself")
		}
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	a.children = append(a.children, children...)
}

func (a *Assembly) reachableFrom(n Node) bool {
	if n == Node(a) {
		return true
	}

	sub, ok := n.(*Assembly)
	if !ok {
		return false
	}

	for _, c := range sub.Children() {
		if a.reachableFrom(c) {
			return true
		}
	}

	return false
}

// Children returns the direct children in the order they were added.
func (a *Assembly) Children() []Node {
	a.lock.RLock()
	defer a.lock.RUnlock()

	children := make([]Node, len(a.children))
	copy(children, a.children)

	return children
}

// RequestUpdate schedules a recompute of every component in the tree and
// returns their handles.
func (a *Assembly) RequestUpdate() []*scheduling.Handle[Artifact] {
	var handles []*scheduling.Handle[Artifact]

	a.Walk(func(n Node, _ int) bool {
		if c, ok := n.(Component); ok {
			handles = append(handles, c.RequestUpdate())
		}

		return true
	})

	return handles
}

// Walk visits the children depth first, in order. The depth of the direct
// children is 1. Returning false from fn skips the subtree of the node.
func (a *Assembly) Walk(fn func(n Node, depth int) bool) {
	a.walk(fn, 1)
}

func (a *Assembly) walk(fn func(n Node, depth int) bool, depth int) {
	for _, c := range a.Children() {
		if !fn(c, depth) {
			continue
		}

		if sub, ok := c.(*Assembly); ok {
			sub.walk(fn, depth+1)
		}
	}
}
