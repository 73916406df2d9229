// Package helpers provides the offline/edit-time terrain authoring
// operations spec.md §4.7 describes: heightfield smoothing, mipmap
// chain generation, normal synthesis, and road carving. None of these
// run during compositing — [ClipmapUpdater] never imports this
// package — they prepare the texture data a host uploads through
// [clipmap.RasterBackend.UpdateTextureSubRegion] before the next
// frame's Update call.
//
// Every helper that processes more than one row of an image or
// heightfield does so in parallel across a [clipmap.WorkerPool],
// joined with golang.org/x/sync/errgroup so the first row-level
// failure (an unsupported format, a malformed road path) aborts the
// whole operation instead of silently emitting partial data — spec.md
// §7 calls this out explicitly: "helpers never silently degrade."
package helpers
