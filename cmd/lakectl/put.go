package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/lake"
)

func init() {
	rootCmd.AddCommand(newPutCmd())
}

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <lake> <file>",
		Short: "Store a file's bytes in a data lake",
		Long: `The put command reads file and stores its bytes in lake, printing the
resulting blob identifier.

Example:
  lakectl put lake.bin payload.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(args[0], args[1])
		},
	}
	return cmd
}

func runPut(lakePath, filePath string) error {
	l, err := lake.Load(lakePath, false)
	if err != nil {
		return fmt.Errorf("failed to open lake: %w", err)
	}
	defer l.Close()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	chunk, err := l.Put(data)
	if err != nil {
		return fmt.Errorf("failed to put blob: %w", err)
	}

	printInfo("%s\n", chunk.Hash[:])
	return nil
}
