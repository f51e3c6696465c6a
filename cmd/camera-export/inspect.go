// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/camera-export/internal/export"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input-path>",
	Short: "Print camera statistics without writing output",
	Long: `Inspect parses the camera document, reports skipped cameras, and prints
the position ranges, scene center and pairwise camera distances. No output
file is written.`,
	Args: inputArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := export.Inspect(args[0], cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
