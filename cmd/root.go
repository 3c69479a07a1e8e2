// Package cmd wires the ecma3 binary's subcommands. This shell is thin
// plumbing per spec.md §1 — it owns no tokenizer/parser semantics, only
// argument parsing, file I/O, and presentation.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
	RootCmd.AddCommand(parseCmd)
	RootCmd.AddCommand(tokensCmd)
	RootCmd.AddCommand(replCmd)
}

// RootCmd is the main command for the `ecma3` binary.
var RootCmd = &cobra.Command{
	Use:   "ecma3",
	Short: "ecma3 tokenizes and parses ECMAScript 3 source into a tagged AST",
	Long: "ecma3 exposes the tokenizer and recursive-descent parser described\n" +
		"for an ES3-era JavaScript front end: `parse` prints the AST of a file,\n" +
		"`tokens` drains the raw token stream, and `repl` runs both interactively.",
}

// Execute runs the root command and returns its error; main exits with a
// non-zero status when that error is non-nil.
func Execute() error {
	return RootCmd.Execute()
}
