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

	"github.com/notargets/gompc/collision"
	"github.com/notargets/gompc/geometry"
	"github.com/notargets/gompc/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var CollideCmd = &cobra.Command{
	Use:   "collide",
	Short: "List the cells holding each query point",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueryCmd(cmd, types.Query_Collide)
	},
}

func init() {
	rootCmd.AddCommand(CollideCmd)
	addQueryFlags(CollideCmd)
}

// RunCollide prints the ascending colliding cells of every query point.
// Malformed cells are logged and left out.
func RunCollide(w io.Writer, q *Query) (err error) {
	var (
		pts   []geometry.Point
		cells [][]int
	)
	if pts, err = q.Params.GetPoints(); err != nil {
		return
	}
	cells, err = collision.CheckPointsParallel(pts, q.Tree, collision.MeshVertices{Mesh: q.Mesh}, q.Params.Threads)
	if err != nil {
		logrus.WithError(err).Warn("malformed cells skipped")
		err = nil
	}
	for i, p := range pts {
		fmt.Fprintf(w, "point %d %v: cells %v\n", i, p, cells[i])
	}
	return
}
