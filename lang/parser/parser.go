// Package parser implements the predictive recursive-descent parser
// described in spec.md §4.2: one token of lookahead, a running depth count
// for enclosing functions and loops, and a stack of active labels. It
// consumes lang/lexer's token stream and builds the tagged tree of
// lang/ast nodes.
package parser

import (
	"github.com/lohvht/ecma3/lang/ast"
	"github.com/lohvht/ecma3/lang/lexer"
	"github.com/lohvht/ecma3/lang/token"
)

// Parser owns the mutable parse state: current/previous tokens, a single
// peeked-ahead token slot, and the function/loop/label bookkeeping needed
// by return, break, continue and label validation.
type Parser struct {
	name string
	lex  *lexer.Lexer

	current  token.Token
	previous token.Token
	peeked   *token.Token

	exigentMode bool
	embedTokens bool

	inFunction int
	inLoop     int
	labels     []string
}

// Parse parses text and returns the toplevel node, or a *token.ParseError.
// exigentMode selects strict validation (no ASI, no trailing commas,
// strict label/assignability checks); embedTokens turns on the optional
// span-embedding described in spec.md §3.
func Parse(name, text string, exigentMode, embedTokens bool) (*ast.Toplevel, error) {
	return ParseWithWarnings(name, text, exigentMode, embedTokens, nil)
}

// ParseWithWarnings is Parse with an injectable warning sink, used by the
// CLI to surface `@cc_on` comments collected during the parse.
func ParseWithWarnings(name, text string, exigentMode, embedTokens bool, warn token.WarningSink) (top *ast.Toplevel, err error) {
	p := &Parser{
		name:        name,
		lex:         lexer.New(name, text, warn),
		exigentMode: exigentMode,
		embedTokens: embedTokens,
	}
	return p.run()
}

func (p *Parser) run() (top *ast.Toplevel, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*token.ParseError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()
	p.next()
	top = &ast.Toplevel{}
	for p.current.Type != token.EOF {
		top.Body = append(top.Body, p.statement())
	}
	return top, nil
}

func (p *Parser) span(start, end token.Token) ast.Span {
	if !p.embedTokens {
		return ast.Span{}
	}
	return ast.Span{Start: start, End: end, Valid: true}
}

// --- token stream plumbing ------------------------------------------------

func (p *Parser) scan() token.Token {
	tok, err := p.lex.Scan()
	if err != nil {
		panic(err.(*token.ParseError))
	}
	return tok
}

// next consumes current and advances, pulling from the peek buffer first.
func (p *Parser) next() token.Token {
	p.previous = p.current
	if p.peeked != nil {
		p.current = *p.peeked
		p.peeked = nil
	} else {
		p.current = p.scan()
	}
	return p.current
}

// peek returns, without consuming, the token following current.
func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		t := p.scan()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) checkPunc(v string) bool {
	return p.current.Type == token.PUNC && p.current.Str() == v
}

func (p *Parser) checkOp(v string) bool {
	return p.current.Type == token.OPERATOR && p.current.Str() == v
}

func (p *Parser) checkKeyword(v string) bool {
	return p.current.Type == token.KEYWORD && p.current.Str() == v
}

func (p *Parser) checkKeywordOrName(v string) bool {
	return (p.current.Type == token.NAME || p.current.Type == token.KEYWORD) && p.current.Str() == v
}

func (p *Parser) peekIsPunc(v string) bool {
	t := p.peek()
	return t.Type == token.PUNC && t.Str() == v
}

// expect requires the current token to be (typ, value); it consumes it and
// returns it, or raises a ParseError naming what was expected.
func (p *Parser) expect(typ token.Type, value string) token.Token {
	if p.current.Type != typ || p.current.Str() != value {
		p.unexpected("expected '" + value + "'")
	}
	tok := p.current
	p.next()
	return tok
}

// expectRegexClose expects and consumes a ')', arranging for the token
// immediately following it to be scanned with regex interpretation
// allowed. spec.md §4.1's regex_allowed tracking already covers most
// statement-start positions (a ';', '{', '}', ':', 'else', or the start of
// the program); a ')' closing an if/while/for/with condition is one place
// the lexer's own bookkeeping cannot know a statement is about to start,
// so the parser uses the reinterpret back door here. The other such place,
// the statement after 'do', is handled in doWhileStatement.
func (p *Parser) expectRegexClose() {
	if !p.checkPunc(")") {
		p.unexpected("expected ')'")
	}
	p.lex.ReinterpretAsRegex()
	p.next()
}

func (p *Parser) expectName() string {
	if p.current.Type != token.NAME {
		p.unexpected("expected identifier")
	}
	name := p.current.Str()
	p.next()
	return name
}

func (p *Parser) hasLabel(name string) bool {
	for _, l := range p.labels {
		if l == name {
			return true
		}
	}
	return false
}

// isAssignable implements the open-question policy from spec.md §9: in
// lenient mode every expression is treated as assignable unconditionally;
// exigent mode validates the shape (dot/sub/new/call targets, or a name
// other than `this`).
func (p *Parser) isAssignable(e ast.Expr) bool {
	if !p.exigentMode {
		return true
	}
	switch v := e.(type) {
	case *ast.DotExpr, *ast.SubExpr, *ast.NewExpr, *ast.CallExpr:
		return true
	case *ast.NameExpr:
		return v.Value != "this"
	default:
		return false
	}
}
