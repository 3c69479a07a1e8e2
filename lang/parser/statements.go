package parser

import (
	"github.com/lohvht/ecma3/lang/ast"
	"github.com/lohvht/ecma3/lang/token"
)

// statement dispatches on the current token per spec.md §4.2 "Statement
// dispatch": a `{` starts a block, a bare `;` an empty block, `name:`
// starts a label, a keyword dispatches to its fixed sub-parser, and
// everything else is an expression statement. `debugger` is not a
// reserved keyword (spec.md §4.1's keyword set omits it, matching real
// ES3 engines), so it is recognized here as a NAME whose value is
// "debugger".
func (p *Parser) statement() ast.Stmt {
	start := p.current
	switch {
	case p.checkPunc("{"):
		return p.blockStatement(start)
	case p.checkPunc(";"):
		p.next()
		return &ast.Block{Span: p.span(start, start)}
	case p.check(token.NAME) && p.peekIsPunc(":"):
		return p.labelStatement(start)
	case p.check(token.KEYWORD):
		return p.keywordStatement(start)
	case p.check(token.NAME) && p.current.Str() == "debugger":
		p.next()
		p.consumeSemicolon()
		return &ast.DebuggerStmt{Span: p.span(start, p.previous)}
	default:
		return p.exprStatement(start)
	}
}

func (p *Parser) check(typ token.Type) bool { return p.current.Type == typ }

func (p *Parser) keywordStatement(start token.Token) ast.Stmt {
	switch p.current.Str() {
	case "var":
		return p.varStatement(start, false)
	case "const":
		return p.varStatement(start, true)
	case "if":
		return p.ifStatement(start)
	case "while":
		return p.whileStatement(start)
	case "with":
		return p.withStatement(start)
	case "do":
		return p.doWhileStatement(start)
	case "for":
		return p.forStatement(start)
	case "switch":
		return p.switchStatement(start)
	case "break":
		return p.breakContinueStatement(start, true)
	case "continue":
		return p.breakContinueStatement(start, false)
	case "return":
		return p.returnStatement(start)
	case "throw":
		return p.throwStatement(start)
	case "try":
		return p.tryStatement(start)
	case "function":
		fn := p.functionCommon(true)
		fn.Span = p.span(start, p.previous)
		return fn
	default:
		p.unexpected("'" + p.current.Str() + "' cannot start a statement")
		return nil
	}
}

// consumeSemicolon implements spec.md §4.2's ASI rule: in lenient mode a
// missing ';' is tolerated before nlb, eof, or '}'; exigent mode always
// requires the explicit token.
func (p *Parser) consumeSemicolon() {
	if p.checkPunc(";") {
		p.next()
		return
	}
	if p.exigentMode {
		p.unexpected("expected ';'")
		return
	}
	if p.current.Type == token.EOF || p.checkPunc("}") || p.current.NLB {
		return
	}
	p.unexpected("expected ';'")
}

func (p *Parser) braceStmtList() []ast.Stmt {
	p.expect(token.PUNC, "{")
	var body []ast.Stmt
	for !p.checkPunc("}") && p.current.Type != token.EOF {
		body = append(body, p.statement())
	}
	p.expect(token.PUNC, "}")
	return body
}

func (p *Parser) blockStatement(start token.Token) *ast.Block {
	body := p.braceStmtList()
	return &ast.Block{Span: p.span(start, p.previous), Body: body}
}

func (p *Parser) exprStatement(start token.Token) ast.Stmt {
	expr := p.expression(true, false)
	p.consumeSemicolon()
	return &ast.ExprStmt{Span: p.span(start, p.previous), Expr: expr}
}

func (p *Parser) declList(noIn bool) []ast.Decl {
	var decls []ast.Decl
	for {
		name := p.expectName()
		var init ast.Expr
		if p.checkOp("=") {
			p.next()
			init = p.assignExpr(noIn)
		}
		decls = append(decls, ast.Decl{Name: name, Init: init})
		if !p.checkPunc(",") {
			break
		}
		p.next()
	}
	return decls
}

func (p *Parser) varStatement(start token.Token, isConst bool) ast.Stmt {
	p.next() // 'var' / 'const'
	decls := p.declList(false)
	p.consumeSemicolon()
	span := p.span(start, p.previous)
	if isConst {
		return &ast.ConstStmt{Span: span, Decls: decls}
	}
	return &ast.VarStmt{Span: span, Decls: decls}
}

func (p *Parser) ifStatement(start token.Token) ast.Stmt {
	p.next() // 'if'
	p.expect(token.PUNC, "(")
	cond := p.expression(true, false)
	p.expectRegexClose()
	then := p.statement()
	var els ast.Stmt
	if p.checkKeyword("else") {
		p.next()
		els = p.statement()
	}
	return &ast.IfStmt{Span: p.span(start, p.previous), Cond: cond, Then: then, Else: els}
}

func (p *Parser) whileStatement(start token.Token) ast.Stmt {
	p.next() // 'while'
	p.expect(token.PUNC, "(")
	cond := p.expression(true, false)
	p.expectRegexClose()
	p.inLoop++
	body := p.statement()
	p.inLoop--
	return &ast.WhileStmt{Span: p.span(start, p.previous), Cond: cond, Body: body}
}

func (p *Parser) withStatement(start token.Token) ast.Stmt {
	p.next() // 'with'
	p.expect(token.PUNC, "(")
	expr := p.expression(true, false)
	p.expectRegexClose()
	body := p.statement()
	return &ast.WithStmt{Span: p.span(start, p.previous), Expr: expr, Body: body}
}

func (p *Parser) doWhileStatement(start token.Token) ast.Stmt {
	// 'do' leaves regex_allowed false, yet a statement starts right after it.
	p.lex.ReinterpretAsRegex()
	p.next() // 'do'
	p.inLoop++
	body := p.statement()
	p.inLoop--
	if !p.checkKeyword("while") {
		p.unexpected("expected 'while'")
	}
	p.next()
	p.expect(token.PUNC, "(")
	cond := p.expression(true, false)
	p.expect(token.PUNC, ")")
	p.consumeSemicolon()
	return &ast.DoWhileStmt{Span: p.span(start, p.previous), Cond: cond, Body: body}
}

func (p *Parser) forStatement(start token.Token) ast.Stmt {
	p.next() // 'for'
	p.expect(token.PUNC, "(")
	var init ast.Node
	if !p.checkPunc(";") {
		if p.checkKeyword("var") {
			varStart := p.current
			p.next()
			decls := p.declList(true)
			init = &ast.VarStmt{Span: p.span(varStart, p.previous), Decls: decls}
		} else {
			init = p.expression(true, true)
		}
	}
	if p.checkOp("in") {
		return p.finishForIn(start, init)
	}
	p.expect(token.PUNC, ";")
	var test, step ast.Expr
	if !p.checkPunc(";") {
		test = p.expression(true, false)
	}
	p.expect(token.PUNC, ";")
	if !p.checkPunc(")") {
		step = p.expression(true, false)
	}
	p.expectRegexClose()
	p.inLoop++
	body := p.statement()
	p.inLoop--
	return &ast.ForStmt{Span: p.span(start, p.previous), Init: init, Test: test, Step: step, Body: body}
}

// finishForIn normalizes the for-in head per spec.md §4.2: "a var
// declaration collapses to (name, firstDeclaredName)".
func (p *Parser) finishForIn(start token.Token, init ast.Node) ast.Stmt {
	p.next() // 'in'
	var lhs ast.Expr
	var declInit ast.Node
	switch v := init.(type) {
	case *ast.VarStmt:
		declInit = v
		lhs = &ast.NameExpr{Value: v.Decls[0].Name}
	case ast.Expr:
		lhs = v
	}
	obj := p.expression(true, false)
	p.expectRegexClose()
	p.inLoop++
	body := p.statement()
	p.inLoop--
	return &ast.ForInStmt{Span: p.span(start, p.previous), Init: declInit, Lhs: lhs, Obj: obj, Body: body}
}

func (p *Parser) switchStatement(start token.Token) ast.Stmt {
	p.next() // 'switch'
	p.expect(token.PUNC, "(")
	disc := p.expression(true, false)
	p.expect(token.PUNC, ")")
	p.expect(token.PUNC, "{")
	p.inLoop++
	var cases []ast.SwitchCase
	for !p.checkPunc("}") && p.current.Type != token.EOF {
		switch {
		case p.checkKeyword("case"):
			p.next()
			test := p.expression(true, false)
			p.expect(token.PUNC, ":")
			cases = append(cases, ast.SwitchCase{Test: test})
		case p.checkKeyword("default"):
			p.next()
			p.expect(token.PUNC, ":")
			cases = append(cases, ast.SwitchCase{Test: nil})
		default:
			if len(cases) == 0 {
				p.unexpected("statement before first case in switch body")
			}
			cur := &cases[len(cases)-1]
			cur.Body = append(cur.Body, p.statement())
		}
	}
	p.inLoop--
	p.expect(token.PUNC, "}")
	return &ast.SwitchStmt{Span: p.span(start, p.previous), Discriminant: disc, Cases: cases}
}

func (p *Parser) breakContinueStatement(start token.Token, isBreak bool) ast.Stmt {
	word := "continue"
	if isBreak {
		word = "break"
	}
	p.next() // 'break' / 'continue'
	label := ""
	if p.check(token.NAME) && !p.current.NLB {
		label = p.current.Str()
		p.next()
	}
	switch {
	case label != "" && !p.hasLabel(label):
		p.failAt(start.Pos, "label %q is not defined", label)
	case label == "" && p.inLoop == 0:
		p.failAt(start.Pos, "illegal %s statement: not inside a loop or switch", word)
	}
	p.consumeSemicolon()
	span := p.span(start, p.previous)
	if isBreak {
		return &ast.BreakStmt{Span: span, Label: label}
	}
	return &ast.ContinueStmt{Span: span, Label: label}
}

func (p *Parser) returnStatement(start token.Token) ast.Stmt {
	p.next() // 'return'
	if p.inFunction == 0 {
		p.failAt(start.Pos, "'return' outside of function")
	}
	var expr ast.Expr
	if !p.checkPunc(";") && !p.checkPunc("}") && p.current.Type != token.EOF && !p.current.NLB {
		expr = p.expression(true, false)
	}
	p.consumeSemicolon()
	return &ast.ReturnStmt{Span: p.span(start, p.previous), Expr: expr}
}

func (p *Parser) throwStatement(start token.Token) ast.Stmt {
	p.next() // 'throw'
	if p.current.NLB {
		p.failAt(start.Pos, "illegal newline between 'throw' and its expression")
	}
	expr := p.expression(true, false)
	p.consumeSemicolon()
	return &ast.ThrowStmt{Span: p.span(start, p.previous), Expr: expr}
}

func (p *Parser) tryStatement(start token.Token) ast.Stmt {
	p.next() // 'try'
	ts := &ast.TryStmt{Body: p.blockStatement(p.current)}
	if p.checkKeyword("catch") {
		p.next()
		p.expect(token.PUNC, "(")
		name := p.expectName()
		p.expect(token.PUNC, ")")
		ts.HasCatch = true
		ts.CatchName = name
		ts.CatchBody = p.blockStatement(p.current)
	}
	if p.checkKeyword("finally") {
		p.next()
		ts.HasFinally = true
		ts.FinallyBody = p.blockStatement(p.current)
	}
	if !ts.HasCatch && !ts.HasFinally {
		p.failAt(start.Pos, "missing catch or finally after try block")
	}
	ts.Span = p.span(start, p.previous)
	return ts
}

// isLoopOrSwitchTag reports whether tag is one of the statement shapes a
// label may validly target in exigent mode. for-in is included alongside
// spec.md §4.2's listed {for, do, while, switch}: it is a loop in exactly
// the same sense `for` is, and excluding it would reject `outer: for (k in
// o) ...` for no defensible reason.
func isLoopOrSwitchTag(tag string) bool {
	switch tag {
	case "for", "for-in", "do", "while", "switch":
		return true
	default:
		return false
	}
}

func (p *Parser) labelStatement(start token.Token) ast.Stmt {
	name := p.current.Str()
	p.next() // name
	p.next() // ':'
	if p.hasLabel(name) {
		p.failAt(start.Pos, "label %q is already defined", name)
	}
	p.labels = append(p.labels, name)
	body := p.statement()
	p.labels = p.labels[:len(p.labels)-1]
	if p.exigentMode && !isLoopOrSwitchTag(body.Tag()) {
		p.failAt(start.Pos, "label %q must label a for/do/while/switch statement", name)
	}
	return &ast.LabelStmt{Span: p.span(start, p.previous), Name: name, Stmt: body}
}

// functionCommon parses the shared tail of a function declaration or
// expression: name (required for a declaration, optional for an
// expression), parameter list, and body. While parsing the body, in_loop
// is saved and reset to 0 per spec.md §4.2, restoring on exit.
func (p *Parser) functionCommon(isDecl bool) *ast.FunctionNode {
	p.next() // 'function'
	name := ""
	if isDecl {
		name = p.expectName()
	} else if p.check(token.NAME) {
		name = p.expectName()
	}
	return p.functionTail(name, isDecl)
}

// functionTail parses a parameter list and body, with name and the
// defun/function distinction already decided by the caller. It backs both
// functionCommon (after the leading `function` keyword) and the object
// literal get/set accessor shorthand (spec.md §4.2's "accessor is a
// function without the `function` keyword").
func (p *Parser) functionTail(name string, isDecl bool) *ast.FunctionNode {
	p.expect(token.PUNC, "(")
	var params []string
	for !p.checkPunc(")") {
		params = append(params, p.expectName())
		if p.checkPunc(",") {
			p.next()
			continue
		}
		break
	}
	p.expect(token.PUNC, ")")
	savedLoop := p.inLoop
	p.inLoop = 0
	p.inFunction++
	body := p.braceStmtList()
	p.inFunction--
	p.inLoop = savedLoop
	return &ast.FunctionNode{Name: name, Params: params, Body: body, IsDecl: isDecl}
}
