// Package backend provides pluggable [clipmap.RasterBackend]
// implementations.
//
// This architecture lets the clipmap engine run against a CPU-only
// software backend (for tests and tooling) or a GPU-accelerated
// gogpu-native backend, selected at runtime through the same registry
// the teacher library uses for its own render backends.
//
// # Backend registration
//
// Backends are registered via init() functions and selected at
// runtime. The software backend registers itself on import:
//
//	import _ "github.com/gogpu/clipmap/backend/software"
//
// # Backend selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	updater := clipmap.NewClipmapUpdater()
//	err = updater.Update(ctx, b, terrain, base, clipmap.PassBase, cameraXZ)
//
// # Available backends
//
//   - "software": CPU rasterizer backed by image.RGBA (always available)
//   - "gogpu": GPU-accelerated via github.com/gogpu/gpucontext and
//     github.com/gogpu/wgpu
package backend
