package parser

import (
	"strconv"

	"github.com/lohvht/ecma3/lang/ast"
	"github.com/lohvht/ecma3/lang/token"
)

// expression parses spec.md §4.2's `expression(commas, no_in)`: an
// assignment expression, optionally folded with `,` into a `seq` node.
func (p *Parser) expression(allowCommas, noIn bool) ast.Expr {
	first := p.assignExpr(noIn)
	if !allowCommas || !p.checkPunc(",") {
		return first
	}
	exprs := []ast.Expr{first}
	for p.checkPunc(",") {
		p.next()
		exprs = append(exprs, p.assignExpr(noIn))
	}
	return ast.NewSeq(exprs)
}

// assignOps maps every assignment operator lexeme to its stripped
// arithmetic/bitwise operator ("" for a bare '=').
var assignOps = map[string]string{
	"=": "", "+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"<<=": "<<", ">>=": ">>", ">>>=": ">>>",
	"&=": "&", "|=": "|", "^=": "^",
}

// assignExpr is right-associative: the LHS must satisfy isAssignable, and
// a bare '=' is recorded with the sentinel Op=true while a compound op is
// recorded as its stripped string, per spec.md §4.2.
func (p *Parser) assignExpr(noIn bool) ast.Expr {
	lhs := p.conditionalExpr(noIn)
	if p.current.Type != token.OPERATOR {
		return lhs
	}
	stripped, ok := assignOps[p.current.Str()]
	if !ok {
		return lhs
	}
	opTok := p.current
	if !p.isAssignable(lhs) {
		p.failAt(opTok.Pos, "invalid assignment target")
	}
	p.next()
	rhs := p.assignExpr(noIn)
	var op interface{} = true
	if stripped != "" {
		op = stripped
	}
	return &ast.AssignExpr{Op: op, Lhs: lhs, Rhs: rhs}
}

func (p *Parser) conditionalExpr(noIn bool) ast.Expr {
	test := p.binaryExpr(1, noIn)
	if !p.checkOp("?") {
		return test
	}
	p.next()
	then := p.assignExpr(false)
	p.expect(token.PUNC, ":")
	els := p.assignExpr(noIn)
	return &ast.ConditionalExpr{Test: test, Then: then, Else: els}
}

// precedence implements the fixed table in spec.md §4.2, 1 (lowest, `||`)
// through 10 (highest, `* / %`); 0 means "not a binary operator here".
// `in` is demoted to 0 when noIn is set, per the for(...;...)-head rule.
func precedence(tok token.Token, noIn bool) int {
	if tok.Type != token.OPERATOR {
		return 0
	}
	switch tok.Str() {
	case "||":
		return 1
	case "&&":
		return 2
	case "|":
		return 3
	case "^":
		return 4
	case "&":
		return 5
	case "==", "===", "!=", "!==":
		return 6
	case "<", ">", "<=", ">=", "instanceof":
		return 7
	case "in":
		if noIn {
			return 0
		}
		return 7
	case "<<", ">>", ">>>":
		return 8
	case "+", "-":
		return 9
	case "*", "/", "%":
		return 10
	default:
		return 0
	}
}

// binaryExpr is precedence-climbing, left-associative throughout (every
// recursive call raises the minimum precedence by one past the operator
// just consumed).
func (p *Parser) binaryExpr(minPrec int, noIn bool) ast.Expr {
	left := p.unaryExpr()
	for {
		prec := precedence(p.current, noIn)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.current.Str()
		p.next()
		right := p.binaryExpr(prec+1, noIn)
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

var prefixOps = map[string]bool{
	"typeof": true, "void": true, "delete": true,
	"++": true, "--": true, "!": true, "~": true, "-": true, "+": true,
}

// unaryExpr parses `typeof void delete -- ++ ! ~ - +` as right-associative
// prefixes; `++`/`--` require an assignable operand (spec.md §4.2, §7).
func (p *Parser) unaryExpr() ast.Expr {
	if p.current.Type == token.OPERATOR && prefixOps[p.current.Str()] {
		op := p.current.Str()
		opTok := p.current
		p.next()
		operand := p.unaryExpr()
		if (op == "++" || op == "--") && !p.isAssignable(operand) {
			p.failAt(opTok.Pos, "invalid operand for '%s'", op)
		}
		return &ast.UnaryPrefixExpr{Op: op, Operand: operand}
	}
	return p.postfixExpr()
}

// postfixExpr applies a trailing `++`/`--` to a subscript chain. Per real
// ES3 restricted-production behavior a newline before the postfix operator
// suppresses it instead of consuming it.
func (p *Parser) postfixExpr() ast.Expr {
	expr := p.subscriptExpr(p.newOrPrimaryExpr(), true)
	if !p.current.NLB && p.current.Type == token.OPERATOR && (p.current.Str() == "++" || p.current.Str() == "--") {
		op := p.current.Str()
		opTok := p.current
		if !p.isAssignable(expr) {
			p.failAt(opTok.Pos, "invalid operand for '%s'", op)
		}
		p.next()
		expr = &ast.UnaryPostfixExpr{Op: op, Operand: expr}
	}
	return expr
}

// newOrPrimaryExpr parses spec.md §4.2's `new` construct: "optionally
// chained without parens; argument list only if ( follows". The callee is
// a member expression (dot/subscript only, no calls — a call belongs to
// the `new` itself, not to its callee).
func (p *Parser) newOrPrimaryExpr() ast.Expr {
	if p.checkOp("new") {
		p.next()
		callee := p.subscriptExpr(p.newOrPrimaryExpr(), false)
		var args []ast.Expr
		if p.checkPunc("(") {
			args = p.argumentList()
		}
		return &ast.NewExpr{Callee: callee, Args: args}
	}
	return p.primaryExpr()
}

// subscriptExpr applies `.`, `[...]`, and (when allowCalls) `(...)` call
// subscripts left-to-right until none remain, per spec.md §4.2.
func (p *Parser) subscriptExpr(expr ast.Expr, allowCalls bool) ast.Expr {
	for {
		switch {
		case p.checkPunc("."):
			p.next()
			name := p.expectPropertyName()
			expr = &ast.DotExpr{Object: expr, Name: name}
		case p.checkPunc("["):
			p.next()
			idx := p.expression(true, false)
			p.expect(token.PUNC, "]")
			expr = &ast.SubExpr{Object: expr, Index: idx}
		case allowCalls && p.checkPunc("("):
			expr = &ast.CallExpr{Callee: expr, Args: p.argumentList()}
		default:
			return expr
		}
	}
}

// expectPropertyName accepts any identifier-shaped or operator-keyword
// lexeme after '.': ES3 engines allow reserved words as property names in
// member-access position (e.g. `x.in`, `x.new`).
func (p *Parser) expectPropertyName() string {
	switch p.current.Type {
	case token.NAME, token.KEYWORD, token.ATOM:
		name := p.current.Str()
		p.next()
		return name
	case token.OPERATOR:
		if token.OperatorKeywords[p.current.Str()] {
			name := p.current.Str()
			p.next()
			return name
		}
	}
	p.unexpected("expected property name after '.'")
	return ""
}

func (p *Parser) argumentList() []ast.Expr {
	p.expect(token.PUNC, "(")
	var args []ast.Expr
	for !p.checkPunc(")") {
		args = append(args, p.assignExpr(false))
		if p.checkPunc(",") {
			p.next()
			continue
		}
		break
	}
	p.expect(token.PUNC, ")")
	return args
}

// primaryExpr parses spec.md §4.2's atoms: literals, identifiers,
// parenthesized expressions (unwrapped — no "group" tag, see lang/ast),
// array/object literals, and function expressions.
func (p *Parser) primaryExpr() ast.Expr {
	tok := p.current
	switch tok.Type {
	case token.NUM:
		p.next()
		return &ast.NumExpr{Value: tok.Num()}
	case token.STRING:
		p.next()
		return &ast.StringExpr{Value: tok.Str()}
	case token.REGEXP:
		p.next()
		r := tok.Regex()
		return &ast.RegexpExpr{Pattern: r.Pattern, Flags: r.Flags}
	case token.ATOM:
		p.next()
		return &ast.AtomExpr{Value: tok.Str()}
	case token.NAME:
		p.next()
		return &ast.NameExpr{Value: tok.Str()}
	case token.KEYWORD:
		if tok.Str() == "function" {
			return p.functionCommon(false)
		}
	case token.PUNC:
		switch tok.Str() {
		case "(":
			p.next()
			expr := p.expression(true, false)
			p.expect(token.PUNC, ")")
			return expr
		case "[":
			return p.arrayLiteral()
		case "{":
			return p.objectLiteral()
		}
	}
	p.unexpected("expected expression")
	return nil
}

// arrayLiteral permits elisions (represented as `undefined` atoms) and, in
// lenient mode, a trailing comma.
func (p *Parser) arrayLiteral() ast.Expr {
	p.expect(token.PUNC, "[")
	var elems []ast.Expr
	for !p.checkPunc("]") {
		if p.checkPunc(",") {
			elems = append(elems, &ast.AtomExpr{Value: "undefined"})
			p.next()
			continue
		}
		elems = append(elems, p.assignExpr(false))
		if !p.checkPunc(",") {
			break
		}
		p.next()
		if p.checkPunc("]") {
			if p.exigentMode {
				p.unexpected("trailing comma not allowed in array literal")
			}
			break
		}
	}
	p.expect(token.PUNC, "]")
	return &ast.ArrayExpr{Elements: elems}
}

func (p *Parser) objectLiteral() ast.Expr {
	p.expect(token.PUNC, "{")
	var props []ast.ObjectProp
	for !p.checkPunc("}") {
		props = append(props, p.objectProperty())
		if !p.checkPunc(",") {
			break
		}
		p.next()
		if p.checkPunc("}") {
			if p.exigentMode {
				p.unexpected("trailing comma not allowed in object literal")
			}
			break
		}
	}
	p.expect(token.PUNC, "}")
	return &ast.ObjectExpr{Props: props}
}

// objectProperty recognizes the `get`/`set` accessor shorthand: a `get` or
// `set` word followed by something other than `:`, `,`, or `}` starts an
// accessor instead of a plain `key: value` entry.
func (p *Parser) objectProperty() ast.ObjectProp {
	if p.checkKeywordOrName("get") || p.checkKeywordOrName("set") {
		if !p.peekIsPunc(":") && !p.peekIsPunc(",") && !p.peekIsPunc("}") {
			kind := p.current.Str()
			p.next()
			key := p.propertyKey()
			fn := p.functionTail("", false)
			return ast.ObjectProp{Key: key, Value: fn, Kind: kind}
		}
	}
	key := p.propertyKey()
	p.expect(token.PUNC, ":")
	value := p.assignExpr(false)
	return ast.ObjectProp{Key: key, Value: value}
}

func (p *Parser) propertyKey() string {
	switch p.current.Type {
	case token.NAME, token.KEYWORD, token.ATOM, token.STRING:
		s := p.current.Str()
		p.next()
		return s
	case token.NUM:
		s := strconv.FormatFloat(p.current.Num(), 'g', -1, 64)
		p.next()
		return s
	case token.OPERATOR:
		if token.OperatorKeywords[p.current.Str()] {
			s := p.current.Str()
			p.next()
			return s
		}
	}
	p.unexpected("expected property name")
	return ""
}
