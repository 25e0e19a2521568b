package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBuildCmd is a stub: the assembler that turns source text into a
// flat byte image is a separate tool, out of scope for this VM
// (spec.md §1, §6). This subcommand exists only so gvmtool's surface
// matches the two-command shape the spec describes.
func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "(not implemented here) assemble source into a flat image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("gvmtool: build is handled by the separate gvm64 assembler, not this binary")
		},
	}
}
