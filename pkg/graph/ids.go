package graph

import "math/rand"

// idAllocator produces caller-facing node ids in the editor's own style:
// unique, irregular, intentionally non-sequential. Files whose nodes are
// numbered 1, 2, 3 stand out against anything the editor saved itself.
type idAllocator struct {
	rng  *rand.Rand
	last int
}

func newIDAllocator(seed uint64) *idAllocator {
	return &idAllocator{
		rng:  rand.New(rand.NewSource(int64(seed))),
		last: 70,
	}
}

// next returns a fresh id not present in used. Strides between ids are
// randomized within the band observed in editor-saved files.
func (a *idAllocator) next(used map[int]bool) int {
	for {
		a.last += 30 + a.rng.Intn(190)
		if !used[a.last] {
			return a.last
		}
	}
}
