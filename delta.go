package grasp

import (
	"iter"
	"slices"
)

// DeltaSet tracks entity membership across two consecutive snapshots and
// reports what was added, what is current and what was removed by the last
// Update. Views are sorted by entity so callers iterate deterministically.
type DeltaSet struct {
	added   []Entity
	current []Entity
	removed []Entity
}

// Update replaces the current membership with the entities yielded by next.
// Duplicates are ignored.
func (d *DeltaSet) Update(next iter.Seq[Entity]) {
	fresh := slices.Sorted(next)
	fresh = slices.Compact(fresh)

	added := d.added[:0:0]
	for _, id := range fresh {
		if !d.Contains(id) {
			added = append(added, id)
		}
	}
	removed := d.removed[:0:0]
	for _, id := range d.current {
		if _, ok := slices.BinarySearch(fresh, id); !ok {
			removed = append(removed, id)
		}
	}

	d.added = added
	d.removed = removed
	d.current = fresh
}

// UpdateSlice is Update over a slice.
func (d *DeltaSet) UpdateSlice(next []Entity) {
	d.Update(slices.Values(next))
}

// Added returns entities that joined on the last Update. The returned slice
// MUST NOT be mutated.
func (d *DeltaSet) Added() []Entity { return d.added }

// Current returns the membership as of the last Update. The returned slice
// MUST NOT be mutated.
func (d *DeltaSet) Current() []Entity { return d.current }

// Removed returns entities that left on the last Update. The returned slice
// MUST NOT be mutated.
func (d *DeltaSet) Removed() []Entity { return d.removed }

// Contains reports whether id is in the current membership.
func (d *DeltaSet) Contains(id Entity) bool {
	_, ok := slices.BinarySearch(d.current, id)
	return ok
}

// WasAdded reports whether id joined on the last Update.
func (d *DeltaSet) WasAdded(id Entity) bool {
	_, ok := slices.BinarySearch(d.added, id)
	return ok
}

// WasRemoved reports whether id left on the last Update.
func (d *DeltaSet) WasRemoved(id Entity) bool {
	_, ok := slices.BinarySearch(d.removed, id)
	return ok
}
