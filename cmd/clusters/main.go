// clusters grows every simple graph reachable from a seed by attaching one vertex at a time to
// open (degree-bounded) sites, keeping one graph per isomorphism class.
//
// Usage:
//
//	clusters run  [--config=<file>] [-d <degree bound>] [-n <max vertices>] [--seed=<edge expr>] ...
//	clusters list --catalog=<dir> [--min=<N>] [--max=<N>] [--graph6]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	rootCmd := newRootCmd()
	rootCmd.PersistentFlags().AddGoFlagSet(fset)

	err := rootCmd.Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clusters",
		Short: "Enumerate non-isomorphic cluster graphs grown from a seed",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	return rootCmd
}
