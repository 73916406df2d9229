// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between the clipmap
// engine and GPU frameworks.
//
// # Key Principle
//
// A RasterBackend RECEIVES a GPU device from the host application, it
// does NOT create its own. This follows the Vello/femtovg/Skia pattern
// where the rendering library is injected with GPU resources rather
// than managing them itself — backend/gogpu falls back to opening its
// own device only when the host supplies none.
//
// # Core Interfaces
//
//   - DeviceHandle: GPU device access from the host application,
//     handed to backend/gogpu.
//   - RenderTarget: Where pixel output lives (Pixmap, Texture, Surface).
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target; backs mip 0 of every
//     atlas texture backend/software creates.
//   - TextureTarget: GPU texture target (stub pending a full pipeline).
//   - SurfaceTarget: Window surface from the host (stub).
//
// # Usage
//
// A host application shares its GPU device with backend/gogpu:
//
//	type hostDevice struct{ ctx *myapp.Context }
//
//	func (h *hostDevice) Device() gpucontext.Device   { return h.ctx.Device }
//	func (h *hostDevice) Queue() gpucontext.Queue     { return h.ctx.Queue }
//	func (h *hostDevice) Adapter() gpucontext.Adapter { return h.ctx.Adapter }
//	func (h *hostDevice) SurfaceFormat() gputypes.TextureFormat {
//	    return h.ctx.SurfaceFormat
//	}
//
//	b := gogpu.New(&hostDevice{ctx: ctx})
//	b.Init()
//
// Headless or GPU-less hosts use backend/software instead, which needs
// no DeviceHandle at all:
//
//	b := software.New()
//	b.Init()
//	img, _ := software.Image(tex) // inspect the rendered atlas
//
// # Thread Safety
//
// DeviceHandle implementations are not required to be safe for
// concurrent use beyond what the underlying GPU API guarantees; the
// clipmap compositor drives a single RasterBackend from one goroutine
// per frame.
package render
