package gogpu

import (
	"github.com/gogpu/clipmap/render"
	"github.com/gogpu/gputypes"
)

// gpuTexture is a render.Texture backed by nothing but its own
// dimensions. gpucontext.Device's concrete texture-creation and
// queue-upload calls are specific to whichever wgpu build the host
// links in and are not part of the surface this module can observe
// directly, so residency here is tracked on the CPU mirror (texture.mirror
// in draw.go) and this type exists only to satisfy render.Texture for
// code that walks bound render targets looking for GPU-side handles.
type gpuTexture struct {
	width, height uint32
	format        gputypes.TextureFormat
}

func (t *gpuTexture) Width() uint32                  { return t.width }
func (t *gpuTexture) Height() uint32                 { return t.height }
func (t *gpuTexture) Format() gputypes.TextureFormat { return t.format }
func (t *gpuTexture) CreateView() render.TextureView { return &gpuTextureView{} }
func (t *gpuTexture) Destroy()                       {}

type gpuTextureView struct{}

func (*gpuTextureView) Destroy() {}

var _ render.Texture = (*gpuTexture)(nil)
var _ render.TextureView = (*gpuTextureView)(nil)

// allocateGPUTexture creates the GPU-side residency record for an
// atlas texture. device may be nil in tests that exercise the backend
// without a real GPU context; allocation still succeeds so the CPU
// mirror path (the one Clear/DrawQuad/UpdateTextureSubRegion actually
// shade through) keeps working.
func allocateGPUTexture(device render.DeviceHandle, width, height, levels int, format string) (render.Texture, error) {
	surfaceFormat := gputypes.TextureFormatRGBA8Unorm
	if device != nil {
		if sf := device.SurfaceFormat(); sf != gputypes.TextureFormatUndefined {
			surfaceFormat = sf
		}
	}
	return &gpuTexture{width: uint32(width), height: uint32(height), format: surfaceFormat}, nil
}

// uploadMirror is the hook where a real backend would queue.WriteTexture
// the CPU mirror's dirty rect up to the GPU texture. Without a grounded
// gpucontext.Queue upload signature to call, the mirror is the system of
// record; this is a no-op placeholder for that upload.
func uploadMirror(device render.DeviceHandle, t *texture, rect interface{ IsEmpty() bool }) {
	_ = device
	_ = t
	_ = rect
}
