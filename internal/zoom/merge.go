package zoom

import "sort"

// Merge combines synthesized and manually authored regions. Manual regions
// always win: an auto region overlapping any manual region is dropped. The
// result is ordered by start time.
func Merge(auto, manual []Region) []Region {
	out := make([]Region, 0, len(auto)+len(manual))
	for _, a := range auto {
		if !overlapsAny(a, manual) {
			out = append(out, a)
		}
	}
	out = append(out, manual...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMs < out[j].StartMs
	})
	return out
}

func overlapsAny(r Region, others []Region) bool {
	for _, o := range others {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
