package backend

import (
	"errors"

	"github.com/gogpu/clipmap"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Known backend names.
const (
	BackendSoftware = "software"
	BackendGoGPU    = "gogpu"
)

// Backend wraps a [clipmap.RasterBackend] with lifecycle management.
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	clipmap.RasterBackend

	// Name returns the backend identifier (e.g. "software", "gogpu").
	Name() string

	// Init initializes the backend. Called before any rendering
	// operations.
	Init() error

	// Close releases all backend resources. The backend must not be
	// used after Close is called.
	Close() error
}
