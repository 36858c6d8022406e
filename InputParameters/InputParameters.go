package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/types"
	"github.com/notargets/gompc/utils"
)

// MeshParameters either names a mesh file or describes a structured mesh
type MeshParameters struct {
	File  string    `json:"File" toml:"File"`
	Shape string    `json:"Shape" toml:"Shape"`
	N     []int     `json:"N" toml:"N"`     // cells per direction
	Min   []float64 `json:"Min" toml:"Min"` // lower corner
	Max   []float64 `json:"Max" toml:"Max"` // upper corner
}

// ConstraintParameters describe a periodic point constraint
type ConstraintParameters struct {
	Marker string    `json:"Marker" toml:"Marker"` // boundary marker holding the slaves
	Shift  []float64 `json:"Shift" toml:"Shift"`   // slave location + Shift = master location
}

// Parameters obtained from the YAML or TOML query file
type QueryParameters struct {
	Title      string               `json:"Title" toml:"Title"`
	Query      string               `json:"Query" toml:"Query"`
	Mesh       MeshParameters       `json:"Mesh" toml:"Mesh"`
	Degree     int                  `json:"Degree" toml:"Degree"`
	BlockSize  int                  `json:"BlockSize" toml:"BlockSize"`
	Points     [][]float64          `json:"Points" toml:"Points"`
	Cell       int                  `json:"Cell" toml:"Cell"`
	Dofs       []int                `json:"Dofs" toml:"Dofs"`
	Threads    int                  `json:"Threads" toml:"Threads"`
	Constraint ConstraintParameters `json:"Constraint" toml:"Constraint"`
}

func NewQueryParameters() *QueryParameters {
	return &QueryParameters{Degree: 1, BlockSize: 1, Threads: 1}
}

// Parse reads YAML data
func (qp *QueryParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, qp)
}

// ParseTOML reads TOML data
func (qp *QueryParameters) ParseTOML(data []byte) (err error) {
	_, err = toml.Decode(string(data), qp)
	return
}

// ReadFile parses a query file, choosing the format from the extension
func (qp *QueryParameters) ReadFile(filename string) (err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = qp.Parse(data)
	case ".toml":
		err = qp.ParseTOML(data)
	default:
		err = fmt.Errorf("unsupported query file format: %s", ext)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func (qp *QueryParameters) Kind() (types.QueryKind, error) {
	return types.NewQueryKind(qp.Query)
}

// GetPoints pads the query points to three coordinates
func (qp *QueryParameters) GetPoints() (pts []geometry.Point, err error) {
	for i, p := range qp.Points {
		if len(p) == 0 || len(p) > 3 {
			err = fmt.Errorf("point %d has %d coordinates", i, len(p))
			return
		}
		pts = append(pts, geometry.NewPoint(p...))
	}
	return
}

// NewMesh reads or builds the mesh the query runs on
func (qp *QueryParameters) NewMesh() (m *mesh.Mesh, err error) {
	mp := qp.Mesh
	if mp.File != "" {
		return mesh.ReadMeshFile(mp.File)
	}
	var shape utils.ElementType
	if shape, err = utils.NewElementType(mp.Shape); err != nil {
		return
	}
	dim := shape.GetDimension()
	if len(mp.N) != dim || len(mp.Min) != dim || len(mp.Max) != dim {
		err = fmt.Errorf("a %s mesh needs %d entries in N, Min and Max", shape, dim)
		return
	}
	switch dim {
	case 1:
		if mp.N[0] < 1 {
			err = fmt.Errorf("interval mesh needs at least one cell")
			return
		}
		m = mesh.NewIntervalMesh(mp.N[0], mp.Min[0], mp.Max[0])
	case 2:
		m, err = mesh.NewRectangleMesh(mp.N[0], mp.N[1], mp.Min[0], mp.Min[1], mp.Max[0], mp.Max[1], shape)
	case 3:
		m, err = mesh.NewBoxMesh(mp.N[0], mp.N[1], mp.N[2],
			geometry.NewPoint(mp.Min...), geometry.NewPoint(mp.Max...), shape)
	}
	return
}

func (qp *QueryParameters) Print() { qp.Fprint(os.Stdout) }

func (qp *QueryParameters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", qp.Title)
	fmt.Fprintf(w, "[%s]\t\t= Query\n", qp.Query)
	if qp.Mesh.File != "" {
		fmt.Fprintf(w, "[%s]\t= Mesh File\n", qp.Mesh.File)
	} else {
		fmt.Fprintf(w, "[%s] N=%v Min=%v Max=%v\t= Mesh\n", qp.Mesh.Shape, qp.Mesh.N, qp.Mesh.Min, qp.Mesh.Max)
	}
	fmt.Fprintf(w, "[%d]\t\t\t= Polynomial Order\n", qp.Degree)
	fmt.Fprintf(w, "[%d]\t\t\t= Block Size\n", qp.BlockSize)
	if len(qp.Points) > 0 {
		fmt.Fprintf(w, "%v\t= Points\n", qp.Points)
	}
	if len(qp.Dofs) > 0 {
		fmt.Fprintf(w, "%v\t= Dofs\n", qp.Dofs)
	}
	if qp.Constraint.Marker != "" {
		fmt.Fprintf(w, "[%s] Shift=%v\t= Constraint\n", qp.Constraint.Marker, qp.Constraint.Shift)
	}
}
