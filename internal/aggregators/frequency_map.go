package aggregators

import (
	"sort"

	"serverlog-analyser/internal/models"
)

// FrequencyMap counts occurrences per key and remembers the order in which keys were first seen.
// Rankings break count ties by that order, so results are deterministic across runs.
type FrequencyMap struct {
	index  map[string]int
	keys   []string
	counts []int64
}

func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{index: make(map[string]int)}
}

// Inc adds one occurrence of key.
func (f *FrequencyMap) Inc(key string) {
	if i, ok := f.index[key]; ok {
		f.counts[i]++
		return
	}
	f.index[key] = len(f.keys)
	f.keys = append(f.keys, key)
	f.counts = append(f.counts, 1)
}

// Count returns the number of occurrences of key.
func (f *FrequencyMap) Count(key string) int64 {
	if i, ok := f.index[key]; ok {
		return f.counts[i]
	}
	return 0
}

// Len returns the number of distinct keys.
func (f *FrequencyMap) Len() int {
	return len(f.keys)
}

// Total returns the sum of all counts.
func (f *FrequencyMap) Total() int64 {
	var total int64
	for _, c := range f.counts {
		total += c
	}
	return total
}

// ToMap copies the counts into a plain map.
func (f *FrequencyMap) ToMap() map[string]int64 {
	out := make(map[string]int64, len(f.keys))
	for i, k := range f.keys {
		out[k] = f.counts[i]
	}
	return out
}

// MostCommon returns at most n entries, highest count first, ties in first-seen order.
// A non-positive n yields an empty ranking.
func (f *FrequencyMap) MostCommon(n int) []models.RankedCount {
	if n <= 0 {
		return []models.RankedCount{}
	}

	ranked := make([]models.RankedCount, len(f.keys))
	for i, k := range f.keys {
		ranked[i] = models.RankedCount{Key: k, Count: f.counts[i]}
	}
	// entries start in first-seen order; a stable sort keeps it for equal counts
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
