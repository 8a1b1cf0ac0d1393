// Package plugins discovers component plugins and aggregates their designers
// into a registry.
package plugins

import (
	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/equation"
)

// LoaderSymbol is the name of the function every plugin must export. The
// function must have the type func() plugins.API.
const LoaderSymbol = "LoadPlugin"

// DefaultDirName is the directory, relative to the working directory, that
// plugins are discovered in by default.
const DefaultDirName = "ComponentPlugins"

// API is what a plugin exposes.
type API interface {
	PluginName() string
	PluginVersion() string
	Designers() []component.Designer
}

// EquationProvider is implemented by plugins that contribute equations.
type EquationProvider interface {
	Equations() *equation.Registry
}

// Loader returns the API of a plugin.
type Loader func() API
