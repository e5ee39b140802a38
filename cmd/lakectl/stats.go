package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/lake"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <lake>",
		Short: "Show a data lake's header fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0])
		},
	}
	return cmd
}

func runStats(lakePath string) error {
	l, err := lake.Load(lakePath, true)
	if err != nil {
		return fmt.Errorf("failed to open lake: %w", err)
	}
	defer l.Close()

	h := l.Header()

	printInfo("file_size:        %d\n", h.FileSize)
	printInfo("data_size:        %d\n", h.DataSize)
	printInfo("data_offset:      %d\n", h.DataOffset)
	printInfo("data_next:        %d\n", h.DataNext)
	printInfo("index_mod:        %d\n", h.IndexMod)
	printInfo("index_max:        %d\n", h.IndexMax)
	printInfo("index_offset:     %d\n", h.IndexOffset)
	printInfo("index_offset_u32: %d\n", h.IndexOffsetU32)

	used := h.DataNext - h.DataOffset
	if h.DataSize > 0 {
		printInfo("arena used:       %d/%d slots (%.1f%%)\n", used, h.DataSize, 100*float64(used)/float64(h.DataSize))
	}

	return nil
}
