package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/codec"
	"github.com/prokopschield/udp-storage-server-2023/lake"
	"github.com/prokopschield/udp-storage-server-2023/serializer"
	"github.com/prokopschield/udp-storage-server-2023/tree"
)

func init() {
	rootCmd.AddCommand(newTreeSetCmd())
	rootCmd.AddCommand(newTreeGetCmd())
}

// rootSidecarPath is where lakectl remembers a lake's latest tree root
// handle between invocations, since the tree itself is just a value
// living inside the lake with no fixed address.
func rootSidecarPath(lakePath string) string {
	return lakePath + ".root"
}

func loadTreeRoot(ser *serializer.Serializer, lakePath string) (*tree.Node, error) {
	handle, err := os.ReadFile(rootSidecarPath(lakePath))
	if os.IsNotExist(err) {
		return tree.New(ser), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read root sidecar: %w", err)
	}

	return tree.FromIdentifier(strings.TrimSpace(string(handle)), ser)
}

func saveTreeRoot(lakePath, handle string) error {
	return os.WriteFile(rootSidecarPath(lakePath), []byte(handle), 0o644)
}

func newTreeSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree-set <lake> <key> <value>",
		Short: "Set a key to a value in a lake's key/value tree",
		Long: `The tree-set command inserts or replaces key with value in the tree
rooted at the lake's current root handle (tracked in a <lake>.root
sidecar file) and writes out the new root handle.

Example:
  lakectl tree-set lake.bin greeting "hello"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreeSet(args[0], args[1], args[2])
		},
	}
	return cmd
}

func runTreeSet(lakePath, key, value string) error {
	l, err := lake.Load(lakePath, false)
	if err != nil {
		return fmt.Errorf("failed to open lake: %w", err)
	}
	defer l.Close()

	ser := serializer.New(codec.NewCBOR(), l)

	root, err := loadTreeRoot(ser, lakePath)
	if err != nil {
		return fmt.Errorf("failed to load tree root: %w", err)
	}

	root, err = root.Set(key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	handle, err := root.Hash()
	if err != nil {
		return fmt.Errorf("failed to hash new root: %w", err)
	}

	if err := saveTreeRoot(lakePath, handle); err != nil {
		return fmt.Errorf("failed to persist new root: %w", err)
	}

	printInfo("%s\n", handle)
	return nil
}

func newTreeGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree-get <lake> <key>",
		Short: "Look up a key in a lake's key/value tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreeGet(args[0], args[1])
		},
	}
	return cmd
}

func runTreeGet(lakePath, key string) error {
	l, err := lake.Load(lakePath, true)
	if err != nil {
		return fmt.Errorf("failed to open lake: %w", err)
	}
	defer l.Close()

	ser := serializer.New(codec.NewCBOR(), l)

	root, err := loadTreeRoot(ser, lakePath)
	if err != nil {
		return fmt.Errorf("failed to load tree root: %w", err)
	}

	leaf, err := root.Get(key)
	if err != nil {
		return fmt.Errorf("failed to look up %q: %w", key, err)
	}
	if leaf == nil {
		return fmt.Errorf("key %q not found", key)
	}

	var value string
	if err := leaf.Value(&value); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}

	printInfo("%s\n", value)
	return nil
}
