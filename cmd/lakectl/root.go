// Command lakectl inspects and manipulates data lake files: raw blob
// storage, plus the key/value tree built on top of it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prokopschield/udp-storage-server-2023/internal/config"
	"github.com/prokopschield/udp-storage-server-2023/internal/logging"
)

var global config.Global

var rootCmd = &cobra.Command{
	Use:   "lakectl",
	Short: "Inspect and manipulate data lake files",
	Long: `lakectl is a tool for creating, inspecting, and modifying data lake
files: the append-only, content-addressed blob store and the copy-on-write
key/value tree built on top of it.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Options{Enabled: global.Verbose})
	},
}

func init() {
	global.Bind(rootCmd.PersistentFlags())
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}

// printInfo prints to stdout unless JSON output was requested.
func printInfo(format string, args ...any) {
	if !global.JSON {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}
