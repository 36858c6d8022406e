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

	"github.com/notargets/gompc/basis"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/types"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var BasisCmd = &cobra.Command{
	Use:   "basis",
	Short: "Evaluate the basis functions of a cell at the query points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueryCmd(cmd, types.Query_Basis)
	},
}

func init() {
	rootCmd.AddCommand(BasisCmd)
	addQueryFlags(BasisCmd)
}

// RunBasis prints one row per local dof of Cell, one column per value component
func RunBasis(w io.Writer, q *Query) (err error) {
	var (
		pts    []geometry.Point
		cell   = q.Params.Cell
		values *mat.Dense
	)
	if pts, err = q.Params.GetPoints(); err != nil {
		return
	}
	for i, p := range pts {
		if values, err = basis.GetBasisFunctions(q.Space, p, cell); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
		dofs := q.Space.CellDofs(cell)
		fmt.Fprintf(w, "point %d %v cell %d:\n", i, p, cell)
		nr, nc := values.Dims()
		for l := 0; l < nr; l++ {
			fmt.Fprintf(w, "  dof %d:", dofs[l])
			for j := 0; j < nc; j++ {
				fmt.Fprintf(w, " %.6g", values.At(l, j))
			}
			fmt.Fprintln(w)
		}
	}
	return
}
