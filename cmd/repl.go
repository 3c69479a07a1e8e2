package cmd

import (
	"fmt"

	prompt "github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/lohvht/ecma3/lang/ast"
	"github.com/lohvht/ecma3/lang/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "interactively parse statements and print their AST",
	Run: func(cmd *cobra.Command, args []string) {
		runRepl()
	},
}

var promptState struct {
	livePrefix string
	enabled    bool
	brackets   bracketStack
}

const (
	ecma3Prefix = "ecma3> "
	multiPrefix = "......  "
)

var query string

var matchingBracket = map[string]string{
	"(": ")",
	"{": "}",
	"[": "]",
}

// bracketStack tracks open brackets across REPL lines so a statement that
// spans several lines (an unfinished object literal, function body, …) is
// not parsed until its brackets balance.
type bracketStack []string

func (s *bracketStack) empty() bool { return len(*s) == 0 }

func (s *bracketStack) push(r string) { *s = append(*s, r) }

func (s *bracketStack) pop() string {
	r := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return r
}

type bracketLineStatus int

const (
	balanced bracketLineStatus = iota
	open
	mismatched
)

// collectBrackets scans in for bracket characters, ignoring the
// tokenizer's nuance (brackets inside strings, comments and regex literals
// are counted too) — the REPL only needs a best-effort signal for when to
// wait on another line.
func (s *bracketStack) collectBrackets(in string) bracketLineStatus {
	for _, r := range in {
		switch string(r) {
		case "(", "[", "{":
			s.push(string(r))
		case ")", "]", "}":
			if s.empty() {
				return mismatched
			}
			if want := matchingBracket[s.pop()]; want != string(r) {
				return mismatched
			}
		}
	}
	if s.empty() {
		return balanced
	}
	return open
}

func replExecutor(in string) {
	status := promptState.brackets.collectBrackets(in)
	query += in + "\n"
	switch status {
	case open:
		promptState.livePrefix = multiPrefix
		promptState.enabled = true
	case mismatched:
		promptState.brackets = nil
		fallthrough
	case balanced:
		runSnippet(query)
		query = ""
		promptState.enabled = false
	}
}

func runSnippet(src string) {
	top, err := parser.Parse("<repl>", src, false, false)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println(ast.Print(top))
}

func changeLivePrefix() (string, bool) {
	return promptState.livePrefix, promptState.enabled
}

func replCompleter(in prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "var", Description: "variable declaration"},
		{Text: "function", Description: "function declaration or expression"},
		{Text: "for", Description: "for / for-in loop"},
		{Text: "if", Description: "conditional statement"},
	}
	return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
}

func runRepl() {
	p := prompt.New(
		replExecutor,
		replCompleter,
		prompt.OptionPrefix(ecma3Prefix),
		prompt.OptionLivePrefix(changeLivePrefix),
		prompt.OptionTitle("ecma3 repl"),
	)
	p.Run()
}
