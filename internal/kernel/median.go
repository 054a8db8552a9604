package kernel

// quickselect returns the k-th order statistic (0-indexed) of samples using
// a Lomuto partition with the middle element as pivot, exactly as
// spec.md §4.1 specifies ("pivot = middle element, linear average time").
// Pinning the pivot choice (rather than e.g. a random pivot) is what makes
// repeated runs over the same input byte-identical, per spec.md §5's
// determinism exception for the median filter. samples is partitioned
// in place; callers must not rely on its order afterward.
func quickselect(samples []uint8, k int) uint8 {
	lo, hi := 0, len(samples)-1
	for lo < hi {
		p := partition(samples, lo, hi)
		switch {
		case k == p:
			return samples[p]
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
	return samples[lo]
}

// partition does a Lomuto partition around the value at the middle index,
// returning the pivot's final resting index.
func partition(a []uint8, lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := a[mid]
	a[mid], a[hi] = a[hi], a[mid]

	store := lo
	for i := lo; i < hi; i++ {
		if a[i] < pivot {
			a[i], a[store] = a[store], a[i]
			store++
		}
	}
	a[store], a[hi] = a[hi], a[store]
	return store
}
