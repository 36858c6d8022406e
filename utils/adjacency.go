package utils

import "fmt"

// AdjacencyList is an irregular 2D mapping stored as a flat array plus an
// offsets array: the links of node i are Array[Offsets[i]:Offsets[i+1]].
// len(Offsets) is always NumNodes()+1.
type AdjacencyList struct {
	Array   []int
	Offsets []int
}

// NewAdjacencyList builds a list from per-node link slices
func NewAdjacencyList(links [][]int) (al *AdjacencyList) {
	var (
		total int
	)
	for _, l := range links {
		total += len(l)
	}
	al = &AdjacencyList{
		Array:   make([]int, 0, total),
		Offsets: make([]int, len(links)+1),
	}
	for i, l := range links {
		al.Array = append(al.Array, l...)
		al.Offsets[i+1] = len(al.Array)
	}
	return
}

// NewAdjacencyListFromOffsets wraps existing flat storage, checking that the
// offsets are monotone and cover the array exactly
func NewAdjacencyListFromOffsets(array, offsets []int) (al *AdjacencyList, err error) {
	if len(offsets) == 0 {
		err = fmt.Errorf("offsets must have at least one entry")
		return
	}
	if offsets[0] != 0 || offsets[len(offsets)-1] != len(array) {
		err = fmt.Errorf("offsets must span [0,%d], have [%d,%d]",
			len(array), offsets[0], offsets[len(offsets)-1])
		return
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			err = fmt.Errorf("offsets must be non-decreasing, offsets[%d] = %d < offsets[%d] = %d",
				i, offsets[i], i-1, offsets[i-1])
			return
		}
	}
	al = &AdjacencyList{Array: array, Offsets: offsets}
	return
}

// NumNodes is the number of nodes (rows) in the list
func (al *AdjacencyList) NumNodes() int { return len(al.Offsets) - 1 }

// NumLinks is the number of links of node i
func (al *AdjacencyList) NumLinks(i int) int { return al.Offsets[i+1] - al.Offsets[i] }

// Links returns a view of the links of node i, which must not be modified
func (al *AdjacencyList) Links(i int) []int {
	return al.Array[al.Offsets[i]:al.Offsets[i+1]]
}

// Invert returns the transposed mapping, where numTargets is one more than the
// largest link value. Links of each target are ascending in source order.
func (al *AdjacencyList) Invert(numTargets int) (inv *AdjacencyList) {
	var (
		counts = make([]int, numTargets+1)
	)
	for _, tgt := range al.Array {
		counts[tgt+1]++
	}
	for i := 1; i <= numTargets; i++ {
		counts[i] += counts[i-1]
	}
	inv = &AdjacencyList{
		Array:   make([]int, len(al.Array)),
		Offsets: make([]int, numTargets+1),
	}
	copy(inv.Offsets, counts)
	fill := counts[:numTargets]
	for src := 0; src < al.NumNodes(); src++ {
		for _, tgt := range al.Links(src) {
			inv.Array[fill[tgt]] = src
			fill[tgt]++
		}
	}
	return
}

func (al *AdjacencyList) String() string {
	return fmt.Sprintf("AdjacencyList{nodes: %d, links: %d}", al.NumNodes(), len(al.Array))
}
