package clipmap

import (
	"sync"

	"github.com/gogpu/clipmap/internal/materialparam"
)

// Pass identifies which clipmap a layer or material participates in.
type Pass int

const (
	// PassBase is the geometry clipmap: height, normal, and hole data.
	PassBase Pass = iota
	// PassDetail is the material clipmap: albedo, specular, and the
	// host's own packed format.
	PassDetail
)

func (p Pass) String() string {
	if p == PassBase {
		return "Base"
	}
	return "Detail"
}

// Material is the opaque handle the compositor binds before drawing a
// layer. Its only observable surface is the capability set spec.md §6
// requires: whether it participates in a pass, and typed parameter
// access. Host implementations may share one Material across several
// layers; edits through one layer's reference are visible to every
// other layer sharing it (spec.md §4.3 — documented and relied upon).
type Material interface {
	// Contains reports whether the material has an effect for pass.
	Contains(pass Pass) bool

	// Parameter returns the raw value stored for name under pass, and
	// whether it was set. GetParameter is the typed convenience wrapper
	// callers should prefer.
	Parameter(pass Pass, name string) (any, bool)

	// SetParameter stores value for name under pass. Kind mismatches
	// against a previously-set value are the caller's responsibility;
	// GetParameter reports them as a failed type assertion.
	SetParameter(pass Pass, name string, value any)
}

// GetParameter retrieves a typed parameter from m, replacing the
// source's reflection-based `try_get_parameter<T>` (spec.md §9). ok is
// false both when the name is unset and when it holds a value of a
// different type.
func GetParameter[T any](m Material, pass Pass, name string) (value T, ok bool) {
	raw, found := m.Parameter(pass, materialparam.Fold(name))
	if !found {
		return value, false
	}
	value, ok = raw.(T)
	return value, ok
}

// SetParameter stores a typed parameter on m.
func SetParameter[T any](m Material, pass Pass, name string, value T) {
	m.SetParameter(pass, materialparam.Fold(name), value)
}

// BasicMaterial is the default Material implementation: a per-pass set
// of named parameters behind a mutex, the shareable handle spec.md §9
// calls for in place of a reference-counted interior-mutable cell.
// Go's garbage collector already gives BasicMaterial pointer semantics
// for free, so sharing is just passing the same *BasicMaterial around;
// the mutex exists only to guard concurrent SetParameter calls, which
// spec.md §5 already says is undefined behavior during a compositor
// pass — it is here purely so tests that do call it concurrently fail
// by race detector rather than by data corruption.
type BasicMaterial struct {
	mu     sync.Mutex
	passes map[Pass]map[string]any
}

// NewBasicMaterial creates a material participating in the given passes.
func NewBasicMaterial(passes ...Pass) *BasicMaterial {
	m := &BasicMaterial{passes: make(map[Pass]map[string]any, len(passes))}
	for _, p := range passes {
		m.passes[p] = make(map[string]any)
	}
	return m
}

func (m *BasicMaterial) Contains(pass Pass) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.passes[pass]
	return ok
}

func (m *BasicMaterial) Parameter(pass Pass, name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	params, ok := m.passes[pass]
	if !ok {
		return nil, false
	}
	v, ok := params[name]
	return v, ok
}

func (m *BasicMaterial) SetParameter(pass Pass, name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	params, ok := m.passes[pass]
	if !ok {
		params = make(map[string]any)
		m.passes[pass] = params
	}
	params[name] = value
}
