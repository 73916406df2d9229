// Package clipmaptest provides a recording [clipmap.RasterBackend] fake
// for property-based tests of the compositor's testable properties
// (disjointness, containment dominance, toroidal correctness, fade-band
// skip, draw ordering, idempotence) without needing a real GPU or the
// CPU software backend's pixel-fill semantics — it only ever records
// what was called, never computes pixels.
package clipmaptest

import (
	"context"
	"sync"

	"github.com/gogpu/clipmap"
	"github.com/gogpu/clipmap/internal/parallel"
)

// EventKind tags which RasterBackend method produced an Event.
type EventKind int

const (
	EventCreateTexture EventKind = iota
	EventSetRenderTargets
	EventSetScissor
	EventClear
	EventBindMaterial
	EventDrawQuad
	EventDrawSubmesh
	EventUpdateTextureSubRegion
)

func (k EventKind) String() string {
	switch k {
	case EventCreateTexture:
		return "CreateTexture2D"
	case EventSetRenderTargets:
		return "SetRenderTargets"
	case EventSetScissor:
		return "SetScissor"
	case EventClear:
		return "Clear"
	case EventBindMaterial:
		return "BindMaterial"
	case EventDrawQuad:
		return "DrawQuad"
	case EventDrawSubmesh:
		return "DrawSubmesh"
	case EventUpdateTextureSubRegion:
		return "UpdateTextureSubRegion"
	default:
		return "Unknown"
	}
}

// Event is one recorded RasterBackend call. Not every field is
// populated for every Kind — Rect is meaningful for SetScissor, Clear
// (the scissor rect current at the call), DrawQuad, and
// UpdateTextureSubRegion; Pass and Opacity are only set
// by BindMaterial.
type Event struct {
	Kind    EventKind
	Texture clipmap.TextureHandle
	Level   int
	Rect    clipmap.PixelRect
	Pass    clipmap.Pass
	Opacity float64
}

// Backend is a [clipmap.RasterBackend] that records every call instead
// of drawing anything, the same minimal-fake shape as
// backend/software's Backend but with no pixel buffer at all.
//
// Alongside the event log, it keeps one [parallel.DirtyRegion] per
// texture, sized in texels (one "tile" per texel via a 1x1 MarkRect
// call), so property tests can ask exactly which atlas texels a frame
// touched without having to re-derive it from the Rect field of every
// Clear/DrawQuad/UpdateTextureSubRegion event themselves.
type Backend struct {
	mu sync.Mutex

	nextTexture  int
	events       []Event
	boundTex     []clipmap.TextureHandle
	currentLevel int
	scissor      clipmap.PixelRect
	regions      map[clipmap.TextureHandle]*parallel.DirtyRegion
}

var _ clipmap.RasterBackend = (*Backend)(nil)

// New creates an empty recording backend.
func New() *Backend {
	return &Backend{regions: make(map[clipmap.TextureHandle]*parallel.DirtyRegion)}
}

// Reset clears the recorded event log and every texture's touched-texel
// tracking, for tests that drive several frames and want to assert
// properties per-frame rather than over the whole run.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
	for _, r := range b.regions {
		r.Clear()
	}
}

// touch marks rect as drawn-to in every currently bound render target's
// dirty region. Does nothing for targets that (being pre-existing
// handles not created through this Backend) have no tracked region.
func (b *Backend) touch(rect clipmap.PixelRect) {
	for _, tex := range b.boundTex {
		if r, ok := b.regions[tex]; ok {
			r.MarkRect(rect.X, rect.Y, rect.W, rect.H, 1, 1)
		}
	}
}

// TouchedTileCount returns the number of texels of tex's atlas that
// have been drawn to (via Clear, DrawQuad, or UpdateTextureSubRegion)
// since the backend was created or last Reset. Returns 0 for a handle
// this backend never allocated.
func (b *Backend) TouchedTileCount(tex clipmap.TextureHandle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[tex]
	if !ok {
		return 0
	}
	return r.Count()
}

// IsClean reports whether tex has had zero texels touched since the
// backend was created or last Reset — the idempotence property's
// per-texture counterpart to checking the event log for draw calls.
func (b *Backend) IsClean(tex clipmap.TextureHandle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[tex]
	if !ok {
		return true
	}
	return r.IsEmpty()
}

// Events returns a snapshot of every call recorded since the last Reset.
func (b *Backend) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

func (b *Backend) record(e Event) {
	b.events = append(b.events, e)
}

func (b *Backend) CreateTexture2D(_ context.Context, width, height, _ int, _ string) (clipmap.TextureHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextTexture++
	handle := b.nextTexture
	if region := parallel.NewDirtyRegion(width, height); region != nil {
		b.regions[handle] = region
	}
	b.record(Event{Kind: EventCreateTexture, Texture: handle})
	return handle, nil
}

func (b *Backend) SetRenderTargets(targets []clipmap.TextureHandle, _ clipmap.PixelRect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.boundTex = append([]clipmap.TextureHandle(nil), targets...)
	b.record(Event{Kind: EventSetRenderTargets})
	return nil
}

func (b *Backend) SetScissor(rect clipmap.PixelRect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scissor = rect
	b.record(Event{Kind: EventSetScissor, Rect: rect})
	return nil
}

func (b *Backend) Clear([4]clipmap.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.touch(b.scissor)
	b.record(Event{Kind: EventClear, Rect: b.scissor})
	return nil
}

func (b *Backend) BindMaterial(instance clipmap.MaterialInstance) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Event{Kind: EventBindMaterial, Pass: instance.Pass, Opacity: instance.Opacity})
	return nil
}

func (b *Backend) DrawQuad(pixelRect clipmap.PixelRect, _, _ clipmap.Vec2) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.touch(pixelRect)
	b.record(Event{Kind: EventDrawQuad, Rect: pixelRect})
	return nil
}

func (b *Backend) DrawSubmesh(mesh clipmap.SubmeshHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Event{Kind: EventDrawSubmesh})
	return nil
}

func (b *Backend) UpdateTextureSubRegion(tex clipmap.TextureHandle, level int, rect clipmap.PixelRect, _ []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.regions[tex]; ok {
		r.MarkRect(rect.X, rect.Y, rect.W, rect.H, 1, 1)
	}
	b.record(Event{Kind: EventUpdateTextureSubRegion, Texture: tex, Level: level, Rect: rect})
	return nil
}

// Rects filters Events() down to the Rect field of every event of the
// given kind, in call order — the slice property-based tests check for
// pairwise disjointness (e.g. SetScissor rects within one level's
// invalidation pass).
func Rects(events []Event, kind EventKind) []clipmap.PixelRect {
	var out []clipmap.PixelRect
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e.Rect)
		}
	}
	return out
}

// Overlap reports whether a and b share any pixel.
func Overlap(a, b clipmap.PixelRect) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Disjoint reports whether every pair of rects in rects is
// non-overlapping — the property §8 requires of a level's invalid
// region list once clip_against has run.
func Disjoint(rects []clipmap.PixelRect) bool {
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if Overlap(rects[i], rects[j]) {
				return false
			}
		}
	}
	return true
}
