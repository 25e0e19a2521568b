// Command gvmtool is a minimal CLI front end for the gvm64 core. The
// real assembler is a separate, out-of-scope tool (spec.md §1); this
// binary only wires the VM's public API to a `run`/`build` command
// pair, with `run -d` offering a small single-step shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gvmtool",
		Short:         "gvm64 virtual machine front end",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "emit trace-level VM logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newBuildCmd())
	return root
}
