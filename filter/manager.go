package filter

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Manager holds named filter presets, e.g. the filter section of the config file
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers several filters. Nothing is registered unless every
// expression compiles; all compilation errors are reported together.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(filters)) {
		filter, err := m.compiler.Compile(filters[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to compile filter '%s': %w", name, err))
			continue
		}
		compiled[name] = filter
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the preset called nameOrExpr when there is one, and otherwise
// compiles nameOrExpr as an expression. A leading '@' forces a preset lookup.
func (m *Manager) Resolve(nameOrExpr string) (CompiledFilter, error) {
	if name, ok := strings.CutPrefix(nameOrExpr, "@"); ok {
		filter, exists := m.GetFilter(name)
		if !exists {
			return nil, &UnknownPresetError{Name: name}
		}
		return filter, nil
	}
	if filter, exists := m.GetFilter(nameOrExpr); exists {
		return filter, nil
	}
	return m.compiler.Compile(nameOrExpr)
}
