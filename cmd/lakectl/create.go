package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/lake"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create a new data lake file",
		Long: `The create command allocates a new data lake file of the requested size
(see --lake-size) and writes its header and index.

Example:
  lakectl create lake.bin --lake-size 67108864`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0])
		},
	}
	return cmd
}

func runCreate(path string) error {
	l, err := lake.Create(path, global.LakeSize)
	if err != nil {
		return fmt.Errorf("failed to create lake: %w", err)
	}
	defer l.Close()

	printInfo("created %s (%d bytes)\n", path, global.LakeSize)
	return nil
}
