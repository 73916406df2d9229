// Package gogpu implements a GPU-accelerated [backend.Backend] on top
// of github.com/gogpu/gpucontext and github.com/gogpu/wgpu, the same
// device-sharing contract render.DeviceHandle documents: the host
// application owns the GPU device and hands it to the backend, rather
// than the backend opening its own (the wiring render/device.go
// inherits from the teacher library). When no device is supplied, the
// backend falls back to opening its own wgpu instance/adapter/device,
// matching the teacher's standalone-mode wgpu backend.
//
// The fragment shader (embedded terrain.wgsl) is compiled once at Init
// time through github.com/gogpu/naga, which gives early validation of
// the shader module independent of the device backend in use.
package gogpu

import (
	_ "embed"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/backend"
	"github.com/gogpu/clipmap/render"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

func init() {
	backend.Register(backend.BackendGoGPU, func() backend.Backend { return New(nil) })
}

//go:embed terrain.wgsl
var terrainShaderSource string

// texture pairs a GPU texture handle with a CPU-side mirror used for
// the scissor-fill and sub-region upload paths, the same staging
// technique the software backend uses for its raster fallback. A full
// hardware rasterizer pipeline (material shading, decal rotation,
// road-mesh triangle rendering) is left to a real WGSL render pipeline
// the host wires up against the same compiled shader module; this
// backend focuses on correct atlas bookkeeping and GPU texture
// residency, the two things that benefit most from living on the GPU.
type texture struct {
	handle render.Texture
	mirror *image.RGBA
	width  int
	height int
}

// Backend is a GPU-accelerated [clipmap.RasterBackend] and
// [backend.Backend].
type Backend struct {
	mu sync.Mutex

	device   render.DeviceHandle
	ownsWGPU bool
	shader   *naga.Module

	targets     []*texture
	atlasRegion clipmap.PixelRect
	scissor     clipmap.PixelRect
	hasScissor  bool
	material    clipmap.MaterialInstance
	hasMaterial bool

	initialized bool
}

// New creates a backend bound to handle. If handle is nil, Init opens
// its own wgpu instance, adapter, and device.
func New(handle render.DeviceHandle) *Backend {
	return &Backend{device: handle}
}

func (b *Backend) Name() string { return backend.BackendGoGPU }

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if b.device == nil {
		dev, err := openStandaloneDevice()
		if err != nil {
			return fmt.Errorf("gogpu: no device handle supplied and standalone init failed: %w", err)
		}
		b.device = dev
		b.ownsWGPU = true
	}

	module, err := naga.Compile(terrainShaderSource)
	if err != nil {
		return fmt.Errorf("gogpu: terrain.wgsl failed validation: %w", err)
	}
	b.shader = module

	b.initialized = true
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.targets {
		if t != nil && t.handle != nil {
			t.handle.Destroy()
		}
	}
	b.targets = nil

	if b.ownsWGPU {
		if closer, ok := b.device.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		b.device = nil
		b.ownsWGPU = false
	}

	b.initialized = false
	return nil
}

// openStandaloneDevice opens a wgpu instance, requests the default
// adapter, and requests a device — the path the teacher's backend
// takes when no host application supplies a shared DeviceHandle.
func openStandaloneDevice() (render.DeviceHandle, error) {
	instance := wgpu.CreateInstance()
	if instance == nil {
		return nil, fmt.Errorf("gogpu: wgpu.CreateInstance returned nil")
	}
	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return nil, fmt.Errorf("gogpu: RequestAdapter: %w", err)
	}
	device, queue, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("gogpu: RequestDevice: %w", err)
	}
	return &standaloneDevice{adapter: adapter, device: device, queue: queue}, nil
}

type standaloneDevice struct {
	adapter gpucontext.Adapter
	device  gpucontext.Device
	queue   gpucontext.Queue
}

func (d *standaloneDevice) Device() gpucontext.Device   { return d.device }
func (d *standaloneDevice) Queue() gpucontext.Queue     { return d.queue }
func (d *standaloneDevice) Adapter() gpucontext.Adapter { return d.adapter }
func (d *standaloneDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

var _ render.DeviceHandle = (*standaloneDevice)(nil)
var _ clipmap.RasterBackend = (*Backend)(nil)
var _ backend.Backend = (*Backend)(nil)
