package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lohvht/ecma3/lang/ast"
	"github.com/lohvht/ecma3/lang/token"
	"github.com/lohvht/ecma3/lang/parser"
)

var (
	parseExigent     bool
	parseEmbedTokens bool
	parseJSON        bool
)

func init() {
	parseCmd.Flags().BoolVar(&parseExigent, "exigent", false, "parse in exigent mode (no ASI, strict assignability/label checks)")
	parseCmd.Flags().BoolVar(&parseEmbedTokens, "embed-tokens", false, "embed start/end token spans on statement and function nodes")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the AST as a tag-first JSON structural dump instead of regenerated source")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "parse a file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		warn := func(pos token.Pos, message string) {
			logrus.WithField("pos", pos.String()).Warn(message)
		}
		top, err := parser.ParseWithWarnings(path, string(src), parseExigent, parseEmbedTokens, warn)
		if err != nil {
			return err
		}
		if parseJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ast.Dump(top))
		}
		fmt.Println(ast.Print(top))
		return nil
	},
}
