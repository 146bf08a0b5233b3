package heap

import "github.com/twmb/murmur3"

// @Author KHighness
// @Update 2023-07-02

// Equal reports whether two heaps hold identical backing sequences,
// position by position. This is deliberately not multiset equality: two
// heaps holding the same elements inserted in a different order may compare
// unequal when their internal layouts differ.
func Equal[E comparable](a, b *MinMax[E]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, x := range a.elems {
		if x != b.elems[i] {
			return false
		}
	}
	return true
}

// Sum64 hashes the heap by streaming marshal(e) for every element, in
// backing order, through murmur3. Consistent with Equal: heaps that compare
// equal hash equal, and the same layout always produces the same sum.
func Sum64[E any](h *MinMax[E], marshal func(E) []byte) uint64 {
	d := murmur3.New64()
	for _, e := range h.elems {
		d.Write(marshal(e))
	}
	return d.Sum64()
}
