package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/benz9527/bstviz/viz"
)

func writeTraversalTable(w io.Writer, results []viz.TraversalResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Traversal", "Count", "Keys"})
	tbl.SetAutoWrapText(false)
	for _, res := range results {
		tbl.Append([]string{
			res.Kind.String(),
			strconv.Itoa(len(res.Keys)),
			res.Joined(),
		})
	}
	tbl.Render()
}
