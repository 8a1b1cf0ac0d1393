package plugins

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"sort"
)

// ErrPluginLoadingFailed is returned when the plugin directory cannot be read
// or a plugin cannot be opened.
var ErrPluginLoadingFailed = errors.New("plugin loading failed")

// A Module is a loaded plugin. The underlying shared object stays open for the
// lifetime of the process, so the designers of the module remain valid.
type Module struct {
	path   string
	api    API
	handle *plugin.Plugin
}

// StaticModule wraps a loader linked into the program.
func StaticModule(path string, load Loader) *Module {
	return &Module{path: path, api: load()}
}

// Open loads the plugin at path.
func Open(path string) (*Module, error) {
	handle, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPluginLoadingFailed, path, err)
	}

	sym, err := handle.Lookup(LoaderSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPluginLoadingFailed, path, err)
	}

	load, ok := sym.(func() API)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s has type %T",
			ErrPluginLoadingFailed, path, LoaderSymbol, sym)
	}

	api := load()
	if api == nil {
		return nil, fmt.Errorf("%w: %s: %s returned nil",
			ErrPluginLoadingFailed, path, LoaderSymbol)
	}

	return &Module{path: path, api: api, handle: handle}, nil
}

// Path returns where the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// API returns the API of the module.
func (m *Module) API() API {
	return m.api
}

// Discover loads every plugin found directly in dir, in file name order.
// Symbolic links and directories are skipped. Files that are not valid
// plugins are skipped with a debug message.
func Discover(dir string, logger *slog.Logger) ([]*Module, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPluginLoadingFailed, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var modules []*Module
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, e.Name())

		m, err := Open(path)
		if err != nil {
			logger.Debug("skipping file", "path", path, "error", err)
			continue
		}

		modules = append(modules, m)
	}

	return modules, nil
}

// DefaultPluginDir returns the ComponentPlugins directory under the working
// directory.
func DefaultPluginDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(cwd, DefaultDirName), nil
}
