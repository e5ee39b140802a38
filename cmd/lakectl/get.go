package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/hasher"
	"github.com/prokopschield/udp-storage-server-2023/lake"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <lake> <identifier>",
		Short: "Fetch a blob by its identifier",
		Long: `The get command resolves identifier against lake and writes the decoded
blob bytes to stdout.

Example:
  lakectl get lake.bin AbCd...50-chars`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}
	return cmd
}

func runGet(lakePath, identifier string) error {
	if len(identifier) != hasher.IdentifierLength {
		return fmt.Errorf("identifier must be %d characters, got %d", hasher.IdentifierLength, len(identifier))
	}

	l, err := lake.Load(lakePath, true)
	if err != nil {
		return fmt.Errorf("failed to open lake: %w", err)
	}
	defer l.Close()

	var id [hasher.IdentifierLength]byte
	copy(id[:], identifier)

	chunk, err := l.Get(id)
	if err != nil {
		return fmt.Errorf("failed to look up blob: %w", err)
	}
	if chunk == nil {
		return fmt.Errorf("no blob found for %s", identifier)
	}

	data, err := chunk.Read()
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}

	_, err = os.Stdout.Write(data)
	return err
}
