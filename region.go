package clipmap

// Coalesce drops every rectangle in regions that is fully contained by
// another rectangle in the same list. It is the cheap O(n²) pass spec.md
// §4.1 calls for before the more expensive disjointness sweep; n is
// bounded by the number of layers with local AABBs plus external
// invalidations, typically small (≤ 64 per spec.md).
func Coalesce(regions []AABB) []AABB {
	out := make([]AABB, 0, len(regions))
	for i, r := range regions {
		contained := false
		for j, other := range regions {
			if i == j {
				continue
			}
			if other.Contains(r) && (i > j || !r.Contains(other)) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, r)
		}
	}
	return out
}

// ClipSweep makes regions pairwise disjoint: each rectangle is clipped
// against every rectangle that precedes it in the accumulated disjoint
// set, splitting it into up to four non-overlapping pieces as needed
// (spec.md §4.1's "sweep each new rectangle against all existing ones").
// The union of the result equals the union of the input.
func ClipSweep(regions []AABB) []AABB {
	var disjoint []AABB
	for _, r := range regions {
		pieces := []AABB{r}
		for _, existing := range disjoint {
			var next []AABB
			for _, p := range pieces {
				next = append(next, p.ClipAgainst(existing)...)
			}
			pieces = next
			if len(pieces) == 0 {
				break
			}
		}
		disjoint = append(disjoint, pieces...)
	}
	return disjoint
}

// CombinedAABB returns the union of every rectangle in regions, or an
// empty AABB if regions is empty.
func CombinedAABB(regions []AABB) AABB {
	combined := EmptyAABB()
	for _, r := range regions {
		combined = combined.Union(r)
	}
	return combined
}

// regionList is the insertion-rule list shared by Terrain's invalid_base
// and invalid_detail region tracking (spec.md §3's invalid_base_regions /
// invalid_detail_regions, §4.4's insertion rule).
//
// clipped is advisory only (spec.md §9's open question on
// AreInvalidBaseRegionsClipped): it records whether the list happened to
// have ≤ 1 element right after the last insertion, not whether it is
// actually disjoint now. The compositor always re-runs ClipSweep before
// treating the list as the frame's dirt, regardless of this flag.
type regionList struct {
	regions []AABB
	clipped bool
}

// insert applies spec.md §4.4's insertion rule: if any existing region
// already contains r, the list is left unchanged; otherwise r is appended
// and clipped is refreshed to reflect whether the list is trivially
// disjoint (0 or 1 elements) right now.
func (l *regionList) insert(r AABB) {
	for _, existing := range l.regions {
		if existing.Contains(r) {
			return
		}
	}
	l.regions = append(l.regions, r)
	l.clipped = len(l.regions) <= 1
}

// reset clears the list back to empty.
func (l *regionList) reset() {
	l.regions = l.regions[:0]
	l.clipped = true
}

// drain returns the list's disjoint set (running Coalesce then ClipSweep)
// and empties the list, per spec.md §4.4: "Terrain's own lists are
// emptied only after the compositor has translated them into per-level
// rectangles."
func (l *regionList) drain() []AABB {
	disjoint := ClipSweep(Coalesce(l.regions))
	l.reset()
	return disjoint
}
