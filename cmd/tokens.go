package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lohvht/ecma3/lang/lexer"
	"github.com/lohvht/ecma3/lang/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "drain the raw token stream of a file, one token per line",
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
		lx := lexer.New(path, string(src), warn)
		for {
			tok, err := lx.Scan()
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %-6s %s\n", tok.Type, tok.Pos.String(), tok.String())
			if tok.Type == token.EOF {
				return nil
			}
		}
	},
}
