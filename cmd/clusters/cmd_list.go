package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2x3systems/clusters/clusters"
	"github.com/2x3systems/clusters/libclusters/catalog"
	"github.com/2x3systems/clusters/libclusters/graph"
)

var listFlags struct {
	catalogPath string
	minN        int
	maxN        int
	printOpts   clusters.PrintOpts
}

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the graphs stored in a catalog",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	f := listCmd.Flags()
	f.StringVar(&listFlags.catalogPath, "catalog", "", "badger catalog directory (required)")
	f.IntVar(&listFlags.minN, "min", 1, "smallest vertex count listed")
	f.IntVar(&listFlags.maxN, "max", graph.MaxVertices, "largest vertex count listed")
	f.BoolVar(&listFlags.printOpts.Graph6, "graph6", false, "print graph6 encodings instead of edge pairs")
	f.StringVar(&listFlags.printOpts.Label, "label", "", "label prefixed to each line")
	_ = listCmd.MarkFlagRequired("catalog")

	return listCmd
}

func runList(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.OpenCatalog(catalog.Opts{
		DbPathName: listFlags.catalogPath,
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	out := cmd.OutOrStdout()
	stream := cat.SelectStream(listFlags.minN, listFlags.maxN).Print(out, listFlags.printOpts)
	count := stream.PullAll()
	if err = stream.Err(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d graphs\n", count)
	return nil
}
