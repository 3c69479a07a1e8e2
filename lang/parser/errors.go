package parser

import "github.com/lohvht/ecma3/lang/token"

// fail raises a ParseError at the current token's position, unwinding to
// the entry point in Parse/ParseWithWarnings via panic/recover (spec.md
// §7: "the error is thrown/returned at the point of first detection,
// unwinding the parser to the entry point").
func (p *Parser) fail(format string, args ...interface{}) {
	p.failAt(p.current.Pos, format, args...)
}

func (p *Parser) failAt(pos token.Pos, format string, args ...interface{}) {
	panic(token.NewParseError(pos, format, args...))
}

func (p *Parser) unexpected(context string) {
	p.fail("unexpected token %s: %s", p.current.String(), context)
}
