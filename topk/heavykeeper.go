package topk

import (
	"math"
	"sort"

	"github.com/twmb/murmur3"
	"golang.org/x/exp/rand"

	"github.com/algokits/dpq/heap"
)

// @Author KHighness
// @Update 2023-07-09

const DecayTableLen = 1 << 8

// HeavyKeeper algorithm structure.
//
// The top-k candidate set lives in a min-max heap: the coldest candidate is
// evicted from the min end while the hottest stays readable at the max end.
// Counts only ever grow between fades, and the heap carries no per-key
// handles, so an update to a tracked key rebuilds the k-element heap in O(k),
// the same cost as the candidate scan it replaces.
//
// See: https://www.usenix.org/system/files/conference/atc18/atc18-gong.pdf
type HeavyKeeper struct {
	k           uint32
	width       uint32
	depth       uint32
	decay       float64
	lookupTable []float64
	minCount    uint32

	r        *rand.Rand
	buckets  [][]bucket
	counts   map[string]uint32
	cands    *heap.MinMax[Item]
	expelled chan Item
	total    uint64
}

// bucket structure.
type bucket struct {
	fingerprint uint32 // hash fingerprint
	count       uint32
}

// itemLess orders candidates by count, breaking ties toward the larger key so
// that eviction order is deterministic.
func itemLess(a, b Item) bool {
	return a.Count < b.Count || (a.Count == b.Count && a.Key > b.Key)
}

// NewHeavyKeeper creates a new HeavyKeeper instance.
func NewHeavyKeeper(k, width, depth uint32, decay float64, minCount uint32) TopK {
	lookupTable := make([]float64, DecayTableLen)
	for i := 0; i < DecayTableLen; i++ {
		lookupTable[i] = math.Pow(decay, float64(i))
	}

	buckets := make([][]bucket, depth)
	for i := range buckets {
		buckets[i] = make([]bucket, width)
	}

	return &HeavyKeeper{
		k:           k,
		width:       width,
		depth:       depth,
		decay:       decay,
		lookupTable: lookupTable,
		minCount:    minCount,

		r:        rand.New(rand.NewSource(0)),
		buckets:  buckets,
		counts:   make(map[string]uint32, k),
		cands:    heap.NewFunc(itemLess),
		expelled: make(chan Item, 32),
	}
}

func (hk *HeavyKeeper) Add(item string, incr uint32) (string, bool) {
	itemBytes := []byte(item)
	itemFingerprint := murmur3.Sum32(itemBytes)

	var maxCount uint32

	for i, row := range hk.buckets {
		bucketNo := murmur3.SeedSum32(uint32(i), itemBytes) % hk.width
		bucketFingerprint := row[bucketNo].fingerprint
		bucketCount := row[bucketNo].count

		if bucketCount == 0 { // The bucket is initial.
			row[bucketNo].fingerprint = itemFingerprint
			row[bucketNo].count = incr
			maxCount = maxOf(maxCount, incr)

		} else if bucketFingerprint == itemFingerprint { // Fingerprints match, do increment.
			row[bucketNo].count += incr
			maxCount = maxOf(maxCount, row[bucketNo].count)

		} else { // Fingerprints do not match, handle hash conflict.
			for localIncr := incr; localIncr > 0; localIncr-- {
				curCount := row[bucketNo].count

				var decay float64
				if curCount < DecayTableLen {
					decay = hk.lookupTable[curCount]
				} else {
					decay = hk.lookupTable[DecayTableLen-1]
				}

				if hk.r.Float64() < decay {
					row[bucketNo].count--
					if row[bucketNo].count == 0 {
						row[bucketNo].fingerprint = itemFingerprint
						row[bucketNo].count = localIncr
						maxCount = maxOf(maxCount, localIncr)
						break
					}
				}
			}
		}
	}

	hk.total += uint64(incr)

	if maxCount < hk.minCount {
		return "", false
	}

	if cur, tracked := hk.counts[item]; tracked {
		if maxCount > cur {
			hk.counts[item] = maxCount
			hk.rebuild()
		}
		return "", true
	}

	if uint32(hk.cands.Len()) >= hk.k {
		coldest, _ := hk.cands.PeekMin()
		if maxCount < coldest.Count {
			return "", false
		}
		evicted, _ := hk.cands.TakeMin()
		delete(hk.counts, evicted.Key)
		hk.counts[item] = maxCount
		hk.cands.Push(Item{Key: item, Count: maxCount})
		hk.expel(evicted)
		return evicted.Key, true
	}

	hk.counts[item] = maxCount
	hk.cands.Push(Item{Key: item, Count: maxCount})
	return "", true
}

func (hk *HeavyKeeper) List() []Item {
	result := hk.cands.Unordered()
	sort.Slice(result, func(i, j int) bool {
		return itemLess(result[j], result[i])
	})
	return result
}

func (hk *HeavyKeeper) Total() uint64 {
	return hk.total
}

func (hk *HeavyKeeper) MinCount() uint32 {
	coldest, ok := hk.cands.PeekMin()
	if !ok {
		return 0
	}
	return coldest.Count
}

func (hk *HeavyKeeper) MaxCount() uint32 {
	hottest, ok := hk.cands.PeekMax()
	if !ok {
		return 0
	}
	return hottest.Count
}

func (hk *HeavyKeeper) Expelled() <-chan Item {
	return hk.expelled
}

func (hk *HeavyKeeper) Fading() {
	for _, row := range hk.buckets {
		for i := range row {
			row[i].count >>= 1
		}
	}
	for key := range hk.counts {
		hk.counts[key] >>= 1
	}
	hk.rebuild()
	hk.total >>= 1
}

// rebuild re-homes the candidate map into a fresh heap, O(k) bulk build.
func (hk *HeavyKeeper) rebuild() {
	items := make([]Item, 0, len(hk.counts))
	for key, count := range hk.counts {
		items = append(items, Item{Key: key, Count: count})
	}
	hk.cands = heap.NewFunc(itemLess, items...)
}

func (hk *HeavyKeeper) expel(item Item) {
	select {
	case hk.expelled <- item:
	default:
	}
}

func maxOf(a, b uint32) uint32 {
	if a < b {
		return b
	}
	return a
}
