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

	"github.com/notargets/gompc/locate"
	"github.com/notargets/gompc/types"
	"github.com/spf13/cobra"
)

var LocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the cells owning the query dofs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQueryCmd(cmd, types.Query_Locate)
	},
}

func init() {
	rootCmd.AddCommand(LocateCmd)
	addQueryFlags(LocateCmd)
}

func RunLocate(w io.Writer, q *Query) (err error) {
	cells, local, err := locate.LocateCellsWithDofs(q.Space, q.Params.Dofs)
	if err != nil {
		return
	}
	for i, cell := range cells {
		fmt.Fprintf(w, "cell %d: local %v of dofs %v\n", cell, local.Links(i), q.Space.CellDofs(cell))
	}
	return
}
