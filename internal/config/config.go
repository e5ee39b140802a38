// Package config holds the flags shared across lakectl's subcommands,
// following the teacher's root-command global-flag pattern: one package
// of persistent flag variables bound once, read everywhere.
package config

import "github.com/spf13/pflag"

// Global holds lakectl's persistent flags, bound once against the root
// command's flag set.
type Global struct {
	Verbose  bool
	JSON     bool
	LakeSize uint64
}

// Bind registers Global's fields against fs.
func (g *Global) Bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "enable verbose logging")
	fs.BoolVar(&g.JSON, "json", false, "suppress normal output (no JSON is written)")
	fs.Uint64Var(&g.LakeSize, "lake-size", 64<<20, "size in bytes for newly created lakes")
}
