/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/notargets/gompc/constraint"
	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/sparsity"
	"github.com/notargets/gompc/types"
	"github.com/spf13/cobra"
)

var ConstrainCmd = &cobra.Command{
	Use:   "constrain",
	Short: "Build a periodic constraint and the sparsity pattern it needs",
	Long: `Every dof on the Constraint Marker becomes a slave of the dofs of the cell
holding its location moved by Shift. Prints the constraint, the cells holding
slaves, and the standard and augmented sparsity pattern sizes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueryCmd(cmd, types.Query_Constrain)
	},
}

func init() {
	rootCmd.AddCommand(ConstrainCmd)
	addQueryFlags(ConstrainCmd)
}

func RunConstrain(w io.Writer, q *Query) (err error) {
	var (
		cp     = q.Params.Constraint
		V      = q.Space
		bs     = V.BlockSize
		verts  []int
		slaves []int
		c      *constraint.Constraint
		p      *sparsity.Pattern
	)
	if cp.Marker == "" {
		return fmt.Errorf("constrain query needs a Constraint Marker")
	}
	if len(cp.Shift) > 3 {
		return fmt.Errorf("shift %v has more than three coordinates", cp.Shift)
	}
	if verts, err = q.Mesh.BoundaryVertices(cp.Marker); err != nil {
		return
	}
	for _, v := range verts {
		for comp := 0; comp < bs; comp++ {
			slaves = append(slaves, v*bs+comp)
		}
	}
	shift := geometry.NewPoint(cp.Shift...)
	if c, err = constraint.CreatePointConstraint(V, q.Tree, slaves, func(x geometry.Point) geometry.Point {
		return x.Add(shift)
	}); err != nil {
		return
	}
	fmt.Fprint(w, c.String())
	cells, _, err := c.CellToSlaves(V)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "slave cells %v\n", cells)

	form := fem.NewBilinearForm(V, V)
	if p, err = sparsity.BuildStandardPattern(form); err != nil {
		return
	}
	nnz := p.NNZ()
	if err = constraint.AugmentPattern(p, form, V, c); err != nil {
		return
	}
	nr, nc := p.Dims()
	fmt.Fprintf(w, "pattern %dx%d: nnz %d standard, %d augmented\n", nr, nc, nnz, p.NNZ())
	if c.NumSlaves() > 0 {
		K, kerr := constraint.TransformationMatrix(V.NumDofs(), c)
		if kerr != nil {
			return kerr
		}
		_, nred := K.Dims()
		fmt.Fprintf(w, "reduced system %d -> %d dofs\n", V.NumDofs(), nred)
	}
	return
}
