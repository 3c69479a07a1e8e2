package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lohvht/ecma3/lang/ast"
)

func mustParse(t *testing.T, src string) *ast.Toplevel {
	t.Helper()
	top, err := Parse(t.Name(), src, false, false)
	require.NoError(t, err)
	require.NotNil(t, top)
	return top
}

func TestParseEmptySource(t *testing.T) {
	top := mustParse(t, "")
	assert.Equal(t, "toplevel", top.Tag())
	assert.Empty(t, top.Body)
}

func TestParseBareSemicolonIsEmptyBlock(t *testing.T) {
	top := mustParse(t, ";")
	require.Len(t, top.Body, 1)
	block, ok := top.Body[0].(*ast.Block)
	require.True(t, ok)
	assert.Empty(t, block.Body)
}

func TestParseVarDeclaration(t *testing.T) {
	top := mustParse(t, "var x = 1;")
	require.Len(t, top.Body, 1)
	v, ok := top.Body[0].(*ast.VarStmt)
	require.True(t, ok)
	require.Len(t, v.Decls, 1)
	assert.Equal(t, "x", v.Decls[0].Name)
	num, ok := v.Decls[0].Init.(*ast.NumExpr)
	require.True(t, ok)
	assert.Equal(t, 1.0, num.Value)
}

func TestParseMultipleDeclsInOneVar(t *testing.T) {
	top := mustParse(t, "var a, b = 2, c;")
	v := top.Body[0].(*ast.VarStmt)
	require.Len(t, v.Decls, 3)
	assert.Equal(t, "a", v.Decls[0].Name)
	assert.Nil(t, v.Decls[0].Init)
	assert.Equal(t, "b", v.Decls[1].Name)
	assert.Equal(t, "c", v.Decls[2].Name)
	assert.Nil(t, v.Decls[2].Init)
}

func TestParseFunctionDeclaration(t *testing.T) {
	top := mustParse(t, "function f(a, b) { return a + b; }")
	require.Len(t, top.Body, 1)
	fn, ok := top.Body[0].(*ast.FunctionNode)
	require.True(t, ok)
	assert.Equal(t, "defun", fn.Tag())
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParseForLoop(t *testing.T) {
	top := mustParse(t, "for (var i = 0; i < 10; i++) a[i] = i;")
	require.Len(t, top.Body, 1)
	f, ok := top.Body[0].(*ast.ForStmt)
	require.True(t, ok)
	init, ok := f.Init.(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "i", init.Decls[0].Name)
	test, ok := f.Test.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "<", test.Op)
	step, ok := f.Step.(*ast.UnaryPostfixExpr)
	require.True(t, ok)
	assert.Equal(t, "++", step.Op)
	body, ok := f.Body.(*ast.ExprStmt)
	require.True(t, ok)
	assign, ok := body.Expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, true, assign.Op)
	_, ok = assign.Lhs.(*ast.SubExpr)
	assert.True(t, ok)
}

func TestParseForInWithVarCollapsesInit(t *testing.T) {
	top := mustParse(t, "for (var k in obj) use(k);")
	fi, ok := top.Body[0].(*ast.ForInStmt)
	require.True(t, ok)
	require.NotNil(t, fi.Init)
	varInit, ok := fi.Init.(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "k", varInit.Decls[0].Name)
	lhs, ok := fi.Lhs.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "k", lhs.Value)
}

func TestParseForInWithoutVar(t *testing.T) {
	top := mustParse(t, "for (k in obj) use(k);")
	fi, ok := top.Body[0].(*ast.ForInStmt)
	require.True(t, ok)
	assert.Nil(t, fi.Init)
	lhs, ok := fi.Lhs.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "k", lhs.Value)
}

func TestParseConditionalExpr(t *testing.T) {
	top := mustParse(t, "x = a ? y : z;")
	e := top.Body[0].(*ast.ExprStmt)
	assign := e.Expr.(*ast.AssignExpr)
	cond, ok := assign.Rhs.(*ast.ConditionalExpr)
	require.True(t, ok)
	test, ok := cond.Test.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "a", test.Value)
}

func TestParseTryCatchFinally(t *testing.T) {
	top := mustParse(t, "try { f(); } catch (e) { g(e); } finally { h(); }")
	ts, ok := top.Body[0].(*ast.TryStmt)
	require.True(t, ok)
	assert.True(t, ts.HasCatch)
	assert.Equal(t, "e", ts.CatchName)
	assert.True(t, ts.HasFinally)
	require.Len(t, ts.Body.Body, 1)
	require.Len(t, ts.CatchBody.Body, 1)
	require.Len(t, ts.FinallyBody.Body, 1)
}

func TestParseTryWithoutCatchOrFinallyFails(t *testing.T) {
	_, err := Parse(t.Name(), "try { f(); }", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing catch or finally")
}

func TestParseRegexAfterAssignment(t *testing.T) {
	top := mustParse(t, "a = /foo/gi.test(s);")
	e := top.Body[0].(*ast.ExprStmt)
	assign := e.Expr.(*ast.AssignExpr)
	dot, ok := assign.Rhs.(*ast.CallExpr).Callee.(*ast.DotExpr)
	require.True(t, ok)
	re, ok := dot.Object.(*ast.RegexpExpr)
	require.True(t, ok)
	assert.Equal(t, "foo", re.Pattern)
	assert.Equal(t, "gi", re.Flags)
	assert.Equal(t, "test", dot.Name)
}

func TestParseDivisionNotRegexAfterName(t *testing.T) {
	top := mustParse(t, "x = a / b / c;")
	e := top.Body[0].(*ast.ExprStmt)
	assign := e.Expr.(*ast.AssignExpr)
	outer, ok := assign.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "/", outer.Op)
	_, ok = outer.Left.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParseRegexAfterConditionClose(t *testing.T) {
	top := mustParse(t, "if (x) /foo/.test(x);")
	ifs := top.Body[0].(*ast.IfStmt)
	then := ifs.Then.(*ast.ExprStmt)
	call := then.Expr.(*ast.CallExpr)
	dot := call.Callee.(*ast.DotExpr)
	_, ok := dot.Object.(*ast.RegexpExpr)
	assert.True(t, ok)
}

func TestParseOperatorPrecedence(t *testing.T) {
	top := mustParse(t, "x = 1 + 2 * 3;")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	add, ok := assign.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)
	_, ok = add.Left.(*ast.NumExpr)
	assert.True(t, ok)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParseLogicalOperatorsLowestPrecedence(t *testing.T) {
	top := mustParse(t, "x = a || b && c;")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	or, ok := assign.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "||", or.Op)
	and, ok := or.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "&&", and.Op)
}

func TestParseSequenceExpression(t *testing.T) {
	top := mustParse(t, "a, b, c;")
	e := top.Body[0].(*ast.ExprStmt)
	seq, ok := e.Expr.(*ast.SeqExpr)
	require.True(t, ok)
	first, ok := seq.First.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "a", first.Value)
	rest, ok := seq.Rest.(*ast.SeqExpr)
	require.True(t, ok)
	second := rest.First.(*ast.NameExpr)
	assert.Equal(t, "b", second.Value)
}

func TestParseObjectLiteralWithGetSet(t *testing.T) {
	top := mustParse(t, "x = { a: 1, get b() { return 2; }, set c(v) { this._c = v; } };")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	obj := assign.Rhs.(*ast.ObjectExpr)
	require.Len(t, obj.Props, 3)
	assert.Equal(t, "a", obj.Props[0].Key)
	assert.Equal(t, "", obj.Props[0].Kind)
	assert.Equal(t, "get", obj.Props[1].Kind)
	assert.Equal(t, "b", obj.Props[1].Key)
	assert.Equal(t, "set", obj.Props[2].Kind)
}

func TestParseArrayLiteralWithElision(t *testing.T) {
	top := mustParse(t, "x = [1, , 3];")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	arr := assign.Rhs.(*ast.ArrayExpr)
	require.Len(t, arr.Elements, 3)
	hole, ok := arr.Elements[1].(*ast.AtomExpr)
	require.True(t, ok)
	assert.Equal(t, "undefined", hole.Value)
}

func TestParseLabelAndBreak(t *testing.T) {
	top := mustParse(t, "outer: for (;;) { break outer; }")
	label, ok := top.Body[0].(*ast.LabelStmt)
	require.True(t, ok)
	assert.Equal(t, "outer", label.Name)
	forLoop, ok := label.Stmt.(*ast.ForStmt)
	require.True(t, ok)
	block := forLoop.Body.(*ast.Block)
	brk := block.Body[0].(*ast.BreakStmt)
	assert.Equal(t, "outer", brk.Label)
}

func TestParseSwitchStatement(t *testing.T) {
	top := mustParse(t, "switch (x) { case 1: f(); break; default: g(); }")
	sw, ok := top.Body[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.NotNil(t, sw.Cases[0].Test)
	require.Len(t, sw.Cases[0].Body, 2)
	assert.Nil(t, sw.Cases[1].Test)
}

func TestParseDebuggerStatement(t *testing.T) {
	top := mustParse(t, "debugger;")
	_, ok := top.Body[0].(*ast.DebuggerStmt)
	assert.True(t, ok)
}

func TestParseReturnOutsideFunctionFails(t *testing.T) {
	_, err := Parse(t.Name(), "return 1;", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'return' outside of function")
}

func TestParseBreakWithUndefinedLabelFails(t *testing.T) {
	_, err := Parse(t.Name(), "break foo;", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `label "foo" is not defined`)
}

func TestParseBreakOutsideLoopFails(t *testing.T) {
	_, err := Parse(t.Name(), "break;", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not inside a loop or switch")
}

func TestParseInvalidAssignmentTargetFailsInExigentMode(t *testing.T) {
	_, err := Parse(t.Name(), "1 = 2;", true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment target")
}

func TestParseInvalidAssignmentTargetAllowedInLenientMode(t *testing.T) {
	top, err := Parse(t.Name(), "1 = 2;", false, false)
	require.NoError(t, err)
	require.Len(t, top.Body, 1)
}

func TestParseUnterminatedStringFails(t *testing.T) {
	_, err := Parse(t.Name(), `var x = "abc;`, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestParseUnterminatedRegexFails(t *testing.T) {
	_, err := Parse(t.Name(), "x = /abc;", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated regular expression")
}

func TestParseAutomaticSemicolonInsertion(t *testing.T) {
	top := mustParse(t, "var x = 1\nvar y = 2\n")
	require.Len(t, top.Body, 2)
	assert.Equal(t, "var", top.Body[0].Tag())
	assert.Equal(t, "var", top.Body[1].Tag())
}

func TestParseMissingSemicolonFailsInExigentMode(t *testing.T) {
	_, err := Parse(t.Name(), "var x = 1\nvar y = 2\n", true, false)
	require.Error(t, err)
}

func TestParseReturnRestrictedByNewline(t *testing.T) {
	top := mustParse(t, "function f() { return\n1;\n}")
	fn := top.Body[0].(*ast.FunctionNode)
	ret := fn.Body[0].(*ast.ReturnStmt)
	assert.Nil(t, ret.Expr)
}

func TestParseThrowDisallowsNewline(t *testing.T) {
	_, err := Parse(t.Name(), "throw\n1;", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal newline")
}

func TestParseNewExpressionWithoutParens(t *testing.T) {
	top := mustParse(t, "x = new Foo;")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	n, ok := assign.Rhs.(*ast.NewExpr)
	require.True(t, ok)
	assert.Empty(t, n.Args)
	name, ok := n.Callee.(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "Foo", name.Value)
}

func TestParseNewExpressionWithMemberCalleeAndArgs(t *testing.T) {
	top := mustParse(t, "x = new a.b.C(1, 2);")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	n, ok := assign.Rhs.(*ast.NewExpr)
	require.True(t, ok)
	require.Len(t, n.Args, 2)
	_, ok = n.Callee.(*ast.DotExpr)
	assert.True(t, ok)
}

func TestParseEmbedTokensCarriesSpans(t *testing.T) {
	top, err := Parse(t.Name(), "var x = 1;", false, true)
	require.NoError(t, err)
	span, ok := ast.SpanOf(top.Body[0])
	require.True(t, ok)
	assert.True(t, span.Valid)
}

func TestParseWithoutEmbedTokensLeavesSpanInvalid(t *testing.T) {
	top := mustParse(t, "var x = 1;")
	span, ok := ast.SpanOf(top.Body[0])
	require.True(t, ok)
	assert.False(t, span.Valid)
}

func TestParseDotAfterReservedWordPropertyName(t *testing.T) {
	top := mustParse(t, "x = a.in;")
	assign := top.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	dot, ok := assign.Rhs.(*ast.DotExpr)
	require.True(t, ok)
	assert.Equal(t, "in", dot.Name)
}
