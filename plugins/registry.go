package plugins

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/equation"
	"github.com/sarchlab/partwright/param"
)

// ErrDesignerNotFound is returned when no loaded plugin provides the
// requested designer.
var ErrDesignerNotFound = errors.New("component designer not found")

// A Registry holds the designers of a set of modules. It does not change after
// it is built.
type Registry struct {
	modules   []*Module
	designers map[string]component.Designer
	providers map[string]*Module
	equations *equation.Registry
}

// BuildRegistry aggregates the designers and equations of the modules. When
// two modules provide a designer with the same name, the later module wins.
func BuildRegistry(logger *slog.Logger, modules ...*Module) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		designers: make(map[string]component.Designer),
		providers: make(map[string]*Module),
	}

	var equations []*equation.Registry

	for _, m := range modules {
		api := m.API()
		r.modules = append(r.modules, m)

		logger.Info("plugin loaded",
			"name", api.PluginName(),
			"version", api.PluginVersion(),
			"path", m.Path())

		for _, d := range api.Designers() {
			if prev, ok := r.providers[d.Name()]; ok {
				logger.Warn("component designer replaced",
					"designer", d.Name(),
					"previous", prev.API().PluginName(),
					"plugin", api.PluginName())
			}

			r.designers[d.Name()] = d
			r.providers[d.Name()] = m
		}

		if p, ok := api.(EquationProvider); ok {
			equations = append(equations, p.Equations())
		}
	}

	r.equations = equation.Merge(equations...)

	logger.Info(fmt.Sprintf("%d component designers in %d plugin(s) loaded",
		len(r.designers), len(r.modules)))

	return r
}

// Designer returns the designer with the given name.
func (r *Registry) Designer(name string) (component.Designer, error) {
	d, ok := r.designers[name]
	if !ok {
		return nil, fmt.Errorf("%w: requested component designer: %s",
			ErrDesignerNotFound, name)
	}

	return d, nil
}

// Provider returns the module that provides the named designer.
func (r *Registry) Provider(name string) (*Module, bool) {
	m, ok := r.providers[name]
	return m, ok
}

// Designers returns all the designers sorted by name.
func (r *Registry) Designers() []component.Designer {
	designers := make([]component.Designer, 0, len(r.designers))
	for _, d := range r.designers {
		designers = append(designers, d)
	}

	sort.Slice(designers, func(i, j int) bool {
		return designers[i].Name() < designers[j].Name()
	})

	return designers
}

// Modules returns the modules in load order.
func (r *Registry) Modules() []*Module {
	modules := make([]*Module, len(r.modules))
	copy(modules, r.modules)

	return modules
}

// Equations returns the equations of all the modules.
func (r *Registry) Equations() *equation.Registry {
	return r.equations
}

// ConstructComponent builds a component with the named designer. When env has
// no equations, the equations of the registry are used.
func (r *Registry) ConstructComponent(
	env component.Environment,
	name string,
	spec *param.Container,
) (component.Component, error) {
	d, err := r.Designer(name)
	if err != nil {
		return nil, err
	}

	if env.Equations == nil {
		env.Equations = r.equations
	}

	return d.ConstructComponent(env, spec)
}
