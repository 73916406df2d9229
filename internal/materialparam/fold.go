// Package materialparam implements the declarative case-folded name
// lookup spec.md §9 calls for in place of reflection-based enumeration
// parsing: material parameter names and known parameter-kind tags are
// matched case-insensitively against a fixed map, never through runtime
// reflection.
package materialparam

import (
	"golang.org/x/text/cases"

	"github.com/gogpu/clipmap/cache"
)

// Kind enumerates the parameter kinds a Material may expose, replacing
// the source's dynamic property bag (spec.md §9).
type Kind int

const (
	KindFloat Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindInt
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindInt:
		return "int"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

var folder = cases.Fold()

// nameCache memoizes case-folded parameter names. Entries are always
// recomputable from the key, so LRU eviction under memory pressure is
// safe — a cache miss just re-folds the string.
var nameCache = cache.NewSharded[string, string](cache.DefaultCapacity, cache.StringHasher)

// Fold returns the case-folded form of a parameter name, the key used
// for lookups in a Material's parameter table so "Tint", "tint", and
// "TINT" all address the same slot.
func Fold(name string) string {
	return nameCache.GetOrCreate(name, func() string {
		return folder.String(name)
	})
}

// known is the declarative map from case-folded parameter name to its
// kind, used by Material implementations that expose a fixed set of
// well-known parameters (tile size, diffuse color, specular power, and
// so on) without reflecting over struct fields.
var known = map[string]Kind{
	folder.String("TileSize"):      KindFloat,
	folder.String("DiffuseColor"):  KindVec4,
	folder.String("SpecularPower"): KindFloat,
	folder.String("NormalStrength"): KindFloat,
	folder.String("BlendThreshold"): KindFloat,
	folder.String("BlendRange"):     KindFloat,
	folder.String("BlendChannel"):   KindInt,
	folder.String("HeightMask"):     KindFloat,
	folder.String("SlopeMask"):      KindFloat,
	folder.String("NoiseInfluence"): KindFloat,
	folder.String("AlbedoTexture"):  KindTexture,
	folder.String("NormalTexture"):  KindTexture,
	folder.String("RoughnessTexture"): KindTexture,
	folder.String("Tiling"):         KindVec2,
}

// KindOf reports the declared kind of a well-known parameter name, case
// insensitively. ok is false for names the caller must declare itself
// (user-defined material parameters outside the built-in set).
func KindOf(name string) (kind Kind, ok bool) {
	kind, ok = known[Fold(name)]
	return kind, ok
}
