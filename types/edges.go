package types

import (
	"fmt"
	"math"
)

// EdgeKey packs the two vertex ids of an edge, smaller id in the low word, so
// both orientations of an edge give the same key
type EdgeKey uint64

func NewEdgeKey(verts [2]int) EdgeKey {
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || uint64(hi) > math.MaxUint32 {
		panic(fmt.Errorf("edge vertices %v do not fit in 32 bits each", verts))
	}
	return EdgeKey(uint64(lo) | uint64(hi)<<32)
}

// GetVertices returns the vertices ascending, or descending when rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts = [2]int{int(ek & math.MaxUint32), int(ek >> 32)}
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// EdgeNumbering hands out consecutive ids to mesh edges in first-seen order
type EdgeNumbering struct {
	ids   map[EdgeKey]int
	edges []EdgeKey
}

func NewEdgeNumbering() *EdgeNumbering {
	return &EdgeNumbering{ids: make(map[EdgeKey]int)}
}

// Index returns the id of the edge, numbering it if it is new
func (en *EdgeNumbering) Index(verts [2]int) (id int) {
	var (
		ek = NewEdgeKey(verts)
		ok bool
	)
	if id, ok = en.ids[ek]; !ok {
		id = len(en.edges)
		en.ids[ek] = id
		en.edges = append(en.edges, ek)
	}
	return
}

func (en *EdgeNumbering) Len() int { return len(en.edges) }

// Edge returns the sorted vertices of edge id
func (en *EdgeNumbering) Edge(id int) [2]int { return en.edges[id].GetVertices(false) }
