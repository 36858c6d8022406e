package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/utils"
)

// ReadMeshFile picks the reader from the file extension; only SU2 is read
func ReadMeshFile(filename string) (*Mesh, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".su2" {
		return nil, fmt.Errorf("%s: unsupported mesh format %q", filename, ext)
	}
	return ReadSU2(filename)
}

func ReadSU2(filename string) (msh *Mesh, err error) {
	var f *os.File
	if f, err = os.Open(filename); err != nil {
		return
	}
	defer f.Close()
	if msh, err = ParseSU2(f); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

// su2ElementTypeMap takes SU2 (VTK) type ids to shapes
var su2ElementTypeMap = map[int]utils.ElementType{
	3:  utils.Line,     // VTK_LINE
	5:  utils.Triangle, // VTK_TRIANGLE
	9:  utils.Quad,     // VTK_QUAD
	10: utils.Tet,      // VTK_TETRA
	12: utils.Hex,      // VTK_HEXAHEDRON
	13: utils.Prism,    // VTK_WEDGE
	14: utils.Pyramid,  // VTK_PYRAMID
}

// vtkToTensor turns counter-clockwise quad faces into tensor order:
// tensor[i] = vtk[perm[i]]
var vtkToTensor = map[utils.ElementType][]int{
	utils.Quad:    {0, 1, 3, 2},
	utils.Hex:     {0, 1, 3, 2, 4, 5, 7, 6},
	utils.Pyramid: {0, 1, 3, 2, 4},
}

func reorder(etype utils.ElementType, nodes []int) []int {
	perm, ok := vtkToTensor[etype]
	if !ok {
		return nodes
	}
	out := make([]int, len(nodes))
	for i, p := range perm {
		out[i] = nodes[p]
	}
	return out
}

// su2Reader walks an SU2 file section by section
type su2Reader struct {
	scanner *bufio.Scanner
	lineNum int
	msh     *Mesh
}

// next returns the next line holding data, with % comments removed
func (r *su2Reader) next() (line string, err error) {
	for r.scanner.Scan() {
		r.lineNum++
		line, _, _ = strings.Cut(r.scanner.Text(), "%")
		if line = strings.TrimSpace(line); line != "" {
			return
		}
	}
	if err = r.scanner.Err(); err == nil {
		err = io.EOF
	}
	return
}

func (r *su2Reader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("su2 line %d: %s", r.lineNum, fmt.Sprintf(format, args...))
}

// keyword splits "KEY= value" lines, the value being the first field after '='
func keyword(line string) (key, value string, ok bool) {
	if key, value, ok = strings.Cut(line, "="); !ok {
		return
	}
	key = strings.TrimSpace(key)
	if fields := strings.Fields(value); len(fields) > 0 {
		value = fields[0]
	}
	return
}

// count reads the next line as "key= n"
func (r *su2Reader) count(key string) (n int, err error) {
	var line string
	if line, err = r.next(); err != nil {
		return 0, r.errorf("looking for %s=: %v", key, err)
	}
	k, v, ok := keyword(line)
	if !ok || k != key {
		return 0, r.errorf("expected %s=, got %q", key, line)
	}
	if n, err = strconv.Atoi(v); err != nil || n < 0 {
		return 0, r.errorf("bad %s count %q", key, v)
	}
	return
}

func (r *su2Reader) readPoints(npoin int) (err error) {
	gdim := r.msh.GDim
	r.msh.Vertices = make([]geometry.Point, npoin)
	for i := range r.msh.Vertices {
		var line string
		if line, err = r.next(); err != nil {
			return r.errorf("point %d of %d: %v", i, npoin, err)
		}
		fields := strings.Fields(line)
		if len(fields) < gdim {
			return r.errorf("point %d has %d coordinates, want %d", i, len(fields), gdim)
		}
		// a trailing point id is implied by position and ignored
		for j := 0; j < gdim; j++ {
			if r.msh.Vertices[i][j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return r.errorf("point %d: %v", i, err)
			}
		}
	}
	return
}

func (r *su2Reader) readCells(nelem int) (err error) {
	for i := 0; i < nelem; i++ {
		var (
			line  string
			shape utils.ElementType
			nodes []int
		)
		if line, err = r.next(); err != nil {
			return r.errorf("cell %d of %d: %v", i, nelem, err)
		}
		if shape, nodes, err = parseElementLine(line, su2ElementTypeMap); err != nil {
			return r.errorf("cell %d: %v", i, err)
		}
		for _, n := range nodes {
			if n < 0 || n >= r.msh.NumVertices() {
				return r.errorf("cell %d: point %d out of range [0,%d)", i, n, r.msh.NumVertices())
			}
		}
		r.msh.AddCell(shape, reorder(shape, nodes)...)
	}
	return
}

func (r *su2Reader) readMarkers(nmark int) (err error) {
	for i := 0; i < nmark; i++ {
		var (
			line      string
			tag       string
			ok        bool
			numFacets int
		)
		if line, err = r.next(); err != nil {
			return r.errorf("marker %d of %d: %v", i, nmark, err)
		}
		var k string
		if k, _, ok = keyword(line); !ok || k != "MARKER_TAG" {
			return r.errorf("expected MARKER_TAG=, got %q", line)
		}
		_, tag, _ = strings.Cut(line, "=")
		tag = strings.TrimSpace(tag)
		if numFacets, err = r.count("MARKER_ELEMS"); err != nil {
			return
		}
		for j := 0; j < numFacets; j++ {
			var (
				shape utils.ElementType
				nodes []int
			)
			if line, err = r.next(); err != nil {
				return r.errorf("marker %s facet %d: %v", tag, j, err)
			}
			if shape, nodes, err = parseElementLine(line, su2ElementTypeMap); err != nil {
				return r.errorf("marker %s: %v", tag, err)
			}
			if shape.GetDimension() >= r.msh.GDim {
				return r.errorf("marker %s: a %s is not a facet of a %dD mesh", tag, shape, r.msh.GDim)
			}
			r.msh.Boundaries[tag] = append(r.msh.Boundaries[tag],
				BoundaryElement{ElementType: shape, Nodes: reorder(shape, nodes)})
		}
	}
	return
}

// ParseSU2 reads SU2 native format from r. NDIME must come before NPOIN,
// and both are required.
func ParseSU2(rd io.Reader) (msh *Mesh, err error) {
	var (
		r       = &su2Reader{scanner: bufio.NewScanner(rd), msh: NewMesh(0)}
		hasPoin bool
		line    string
	)
	for {
		if line, err = r.next(); err == io.EOF {
			err = nil
			break
		} else if err != nil {
			return nil, r.errorf("%v", err)
		}
		key, value, ok := keyword(line)
		if !ok {
			continue
		}
		var n int
		switch key {
		case "NDIME", "NPOIN", "NELEM", "NMARK":
			if n, err = strconv.Atoi(value); err != nil || n < 0 {
				return nil, r.errorf("bad %s count %q", key, value)
			}
		default:
			continue
		}
		switch key {
		case "NDIME":
			if n != 2 && n != 3 {
				return nil, r.errorf("NDIME=%d, only 2D and 3D meshes are supported", n)
			}
			r.msh.GDim = n
		case "NPOIN":
			if r.msh.GDim == 0 {
				return nil, r.errorf("NPOIN= before NDIME=")
			}
			hasPoin = true
			err = r.readPoints(n)
		case "NELEM":
			err = r.readCells(n)
		case "NMARK":
			err = r.readMarkers(n)
		}
		if err != nil {
			return nil, err
		}
	}
	switch {
	case r.msh.GDim == 0:
		return nil, fmt.Errorf("su2: missing NDIME= section")
	case !hasPoin:
		return nil, fmt.Errorf("su2: missing NPOIN= section")
	}
	return r.msh, nil
}

// parseElementLine reads "vtkType n0 n1 ...", ignoring any trailing id
func parseElementLine(line string, typeMap map[int]utils.ElementType) (shape utils.ElementType, nodes []int, err error) {
	var (
		fields  = strings.Fields(line)
		vtkType int
		ok      bool
	)
	if len(fields) == 0 {
		return utils.Unknown, nil, fmt.Errorf("empty element line")
	}
	if vtkType, err = strconv.Atoi(fields[0]); err != nil {
		return utils.Unknown, nil, fmt.Errorf("element type %q: %w", fields[0], err)
	}
	if shape, ok = typeMap[vtkType]; !ok {
		return utils.Unknown, nil, fmt.Errorf("unknown VTK element type %d", vtkType)
	}
	nv := shape.GetNumVertices()
	if len(fields)-1 < nv {
		return utils.Unknown, nil, fmt.Errorf("a %s needs %d points, line has %d fields", shape, nv, len(fields)-1)
	}
	nodes = make([]int, nv)
	for j := range nodes {
		if nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			return utils.Unknown, nil, fmt.Errorf("point index %q: %w", fields[1+j], err)
		}
	}
	return
}
