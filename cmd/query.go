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

	"github.com/notargets/gompc/InputParameters"
	"github.com/notargets/gompc/fem"
	"github.com/notargets/gompc/mesh"
	"github.com/notargets/gompc/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Query is a parsed query file together with the mesh and function space it runs on
type Query struct {
	Params *InputParameters.QueryParameters
	Kind   types.QueryKind
	Mesh   *mesh.Mesh
	Space  *fem.FunctionSpace
	Tree   *mesh.BoundingBoxTree
}

type queryRunner func(w io.Writer, q *Query) error

var queryRunners = map[types.QueryKind]queryRunner{
	types.Query_Collide:   RunCollide,
	types.Query_Basis:     RunBasis,
	types.Query_Locate:    RunLocate,
	types.Query_Constrain: RunConstrain,
}

func NewQuery(qp *InputParameters.QueryParameters) (q *Query, err error) {
	q = &Query{Params: qp}
	if qp.Query != "" {
		if q.Kind, err = qp.Kind(); err != nil {
			return
		}
	}
	if q.Mesh, err = qp.NewMesh(); err != nil {
		return
	}
	if q.Space, err = fem.NewFunctionSpace(q.Mesh, qp.Degree, qp.BlockSize); err != nil {
		return
	}
	q.Tree = mesh.NewBoundingBoxTree(q.Mesh)
	logrus.WithFields(logrus.Fields{
		"cells": q.Mesh.NumCells(),
		"dofs":  q.Space.NumDofs(),
		"query": q.Kind,
	}).Debug("query loaded")
	return
}

func LoadQuery(filename string) (q *Query, err error) {
	qp := InputParameters.NewQueryParameters()
	if err = qp.ReadFile(filename); err != nil {
		return
	}
	return NewQuery(qp)
}

// Run answers the query as kind, or as the kind named in the query file when
// kind is Query_None
func (q *Query) Run(w io.Writer, kind types.QueryKind) error {
	if kind == types.Query_None {
		kind = q.Kind
	}
	run, ok := queryRunners[kind]
	if !ok {
		return fmt.Errorf("query file %q names no query to run", q.Params.Title)
	}
	return run(w, q)
}

func runQueryCmd(cmd *cobra.Command, kind types.QueryKind) (err error) {
	var (
		filename string
		q        *Query
	)
	if filename, err = cmd.Flags().GetString("inputFile"); err != nil {
		return
	}
	if filename == "" {
		return fmt.Errorf("a query file is required, use -I")
	}
	if q, err = LoadQuery(filename); err != nil {
		return
	}
	if t := viper.GetInt("threads"); t > 0 {
		q.Params.Threads = t
	}
	if viper.GetBool("verbose") {
		q.Params.Fprint(cmd.ErrOrStderr())
	}
	return q.Run(cmd.OutOrStdout(), kind)
}

func addQueryFlags(c *cobra.Command) {
	c.Flags().StringP("inputFile", "I", "", "YAML or TOML query file holding:\n\t- Mesh (File, or Shape with N, Min, Max)\n\t- Degree and BlockSize of the function space\n\t- Points, Cell, Dofs or Constraint for the query")
}

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the query named in the query file",
	Long: `Reads a query file and answers the query its Query field names:
collide, basis, locate or constrain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueryCmd(cmd, types.Query_None)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	addQueryFlags(RunCmd)
}
