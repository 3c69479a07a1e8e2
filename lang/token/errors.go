package token

import "fmt"

// ParseError is the single error kind raised by the lexer and the parser
// (spec.md §7). Every scanning or parsing failure surfaces as this one
// type; internal sentinels (EOF inside a string, a regexp, a block
// comment) are converted to a ParseError at the point they are caught.
type ParseError struct {
	Message string
	Line    int
	Col     int
	Pos     int
}

// NewParseError builds a ParseError from a position and a formatted
// message.
func NewParseError(pos Pos, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Col:     pos.Col,
		Pos:     pos.Off,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line: %d, col: %d, pos: %d)", e.Message, e.Line, e.Col, e.Pos)
}

// WarningSink is invoked for non-fatal lexer conditions, currently only
// the `@cc_on` conditional-compilation comment. The default sink is a
// no-op; callers needing warnings surfaced (e.g. the CLI) install their
// own.
type WarningSink func(pos Pos, message string)

// NoopWarningSink discards every warning; it is the default used when a
// caller passes a nil WarningSink to lexer.New.
func NoopWarningSink(Pos, string) {}

// ErrorList collects the errors encountered while processing one input.
// The parser described here never recovers (spec.md: "no recovery, no
// resumption, and no partial AST"), so in practice a list produced by
// parsing is always length 0 or 1. No package in this module builds one:
// `@cc_on` warnings reach callers through WarningSink, not through a list.
type ErrorList []*ParseError

func (l *ErrorList) Add(e *ParseError) { *l = append(*l, e) }

func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}
