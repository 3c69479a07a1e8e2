// Package ast defines the tagged AST node types produced by lang/parser,
// per spec.md §3 and §4.2. Every node's Tag() names the construct from the
// closed tag set enumerated in spec.md §4.2; there is no other tag value.
//
// spec.md models a node as a heterogeneous tagged tuple (first element a
// string tag, remaining elements its children). The idiomatic Go rendering
// of that (per spec.md §9, "tagged tuples → sum types") is a closed Node
// interface with one concrete struct per tag, discriminated with a type
// switch rather than a hand-rolled visitor — Go's own go/ast package walks
// this way, and it avoids a thirty-method Visitor interface for a tag set
// this size.
package ast

import "github.com/lohvht/ecma3/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Tag() string
}

// Stmt is a statement-shaped node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-shaped node.
type Expr interface {
	Node
	exprNode()
}

// Span carries the optional token-embedding span described in spec.md §3
// ("An optional token-embedding mode wraps the tag of each
// statement/function node in a record with start and end token
// references"). It is embedded in every Stmt and function node. When the
// parser is not run with embed_tokens, Valid is false and Start/End are
// the zero token.
type Span struct {
	Start, End token.Token
	Valid      bool
}

func (s Span) span() Span { return s }

type spanner interface{ span() Span }

// SpanOf returns n's embedded Span if it carries one (every Stmt and
// function node does); ok is false for expression nodes, which never
// carry a span.
func SpanOf(n Node) (Span, bool) {
	s, ok := n.(spanner)
	if !ok {
		return Span{}, false
	}
	return s.span(), true
}

// --- top level / blocks ----------------------------------------------------

// Toplevel is the root of every parse: ("toplevel", body).
type Toplevel struct {
	Body []Stmt
}

func (*Toplevel) Tag() string { return "toplevel" }

// Block is a brace-delimited statement list: ("block", body).
type Block struct {
	Span
	Body []Stmt
}

func (*Block) Tag() string { return "block" }
func (*Block) stmtNode()   {}

// --- simple statements -------------------------------------------------

// ExprStmt wraps a bare expression statement: ("stat", expression).
type ExprStmt struct {
	Span
	Expr Expr
}

func (*ExprStmt) Tag() string { return "stat" }
func (*ExprStmt) stmtNode()   {}

// Decl is one `name` or `name = init` binding inside a var/const.
type Decl struct {
	Name string
	Init Expr // nil when undeclared
}

// VarStmt is a `var` declaration list: ("var", decls).
type VarStmt struct {
	Span
	Decls []Decl
}

func (*VarStmt) Tag() string { return "var" }
func (*VarStmt) stmtNode()   {}

// ConstStmt is a `const` declaration list: ("const", decls).
type ConstStmt struct {
	Span
	Decls []Decl
}

func (*ConstStmt) Tag() string { return "const" }
func (*ConstStmt) stmtNode()   {}

// DebuggerStmt is a bare `debugger;` statement.
type DebuggerStmt struct{ Span }

func (*DebuggerStmt) Tag() string { return "debugger" }
func (*DebuggerStmt) stmtNode()   {}

// --- control flow --------------------------------------------------------

// IfStmt: ("if", cond, then, else?).
type IfStmt struct {
	Span
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (*IfStmt) Tag() string { return "if" }
func (*IfStmt) stmtNode()   {}

// WhileStmt: ("while", expr, body).
type WhileStmt struct {
	Span
	Cond Expr
	Body Stmt
}

func (*WhileStmt) Tag() string { return "while" }
func (*WhileStmt) stmtNode()   {}

// WithStmt: ("with", expr, body).
type WithStmt struct {
	Span
	Expr Expr
	Body Stmt
}

func (*WithStmt) Tag() string { return "with" }
func (*WithStmt) stmtNode()   {}

// DoWhileStmt: ("do", cond, body).
type DoWhileStmt struct {
	Span
	Cond Expr
	Body Stmt
}

func (*DoWhileStmt) Tag() string { return "do" }
func (*DoWhileStmt) stmtNode()   {}

// ForStmt: ("for", init?, test?, step?, body). Init is either a *VarStmt,
// an Expr, or nil.
type ForStmt struct {
	Span
	Init Node
	Test Expr
	Step Expr
	Body Stmt
}

func (*ForStmt) Tag() string { return "for" }
func (*ForStmt) stmtNode()   {}

// ForInStmt: ("for-in", init, lhs, obj, body). Init is either a *VarStmt
// (the declaration form, `for (var x in obj)`) or nil (`for (x in obj)`,
// in which case Lhs alone carries the assignment target).
type ForInStmt struct {
	Span
	Init Node
	Lhs  Expr
	Obj  Expr
	Body Stmt
}

func (*ForInStmt) Tag() string { return "for-in" }
func (*ForInStmt) stmtNode()   {}

// SwitchCase is one `case expr:` or `default:` bucket.
type SwitchCase struct {
	Test Expr // nil for `default`
	Body []Stmt
}

// SwitchStmt: ("switch", discriminant, cases).
type SwitchStmt struct {
	Span
	Discriminant Expr
	Cases        []SwitchCase
}

func (*SwitchStmt) Tag() string { return "switch" }
func (*SwitchStmt) stmtNode()   {}

// BreakStmt: ("break", label-or-nil).
type BreakStmt struct {
	Span
	Label string // "" when absent
}

func (*BreakStmt) Tag() string { return "break" }
func (*BreakStmt) stmtNode()   {}

// ContinueStmt: ("continue", label-or-nil).
type ContinueStmt struct {
	Span
	Label string // "" when absent
}

func (*ContinueStmt) Tag() string { return "continue" }
func (*ContinueStmt) stmtNode()   {}

// ReturnStmt: ("return", expr-or-nil).
type ReturnStmt struct {
	Span
	Expr Expr // nil when bare `return;`
}

func (*ReturnStmt) Tag() string { return "return" }
func (*ReturnStmt) stmtNode()   {}

// ThrowStmt: ("throw", expr).
type ThrowStmt struct {
	Span
	Expr Expr
}

func (*ThrowStmt) Tag() string { return "throw" }
func (*ThrowStmt) stmtNode()   {}

// TryStmt: ("try", body, [catchName, catchBody]?, finallyBody?).
type TryStmt struct {
	Span
	Body        *Block
	HasCatch    bool
	CatchName   string
	CatchBody   *Block
	HasFinally  bool
	FinallyBody *Block
}

func (*TryStmt) Tag() string { return "try" }
func (*TryStmt) stmtNode()   {}

// LabelStmt: ("label", name, stmt).
type LabelStmt struct {
	Span
	Name string
	Stmt Stmt
}

func (*LabelStmt) Tag() string { return "label" }
func (*LabelStmt) stmtNode()   {}

// --- functions -----------------------------------------------------------

// FunctionNode is shared by function declarations (tag "defun", name
// required) and function expressions (tag "function", name optional).
type FunctionNode struct {
	Span
	Name   string // "" for an anonymous function expression
	Params []string
	Body   []Stmt
	IsDecl bool // true => "defun", false => "function"
}

func (f *FunctionNode) Tag() string {
	if f.IsDecl {
		return "defun"
	}
	return "function"
}
func (*FunctionNode) stmtNode() {}
func (*FunctionNode) exprNode() {}

// --- literals and names --------------------------------------------------

// NameExpr: ("name", value). Used for identifiers, including `this`.
type NameExpr struct {
	Value string
}

func (*NameExpr) Tag() string { return "name" }
func (*NameExpr) exprNode()   {}

// AtomExpr: ("atom", value). Holds `true`, `false`, `null`, `undefined`,
// and the synthetic `undefined` atom used to represent array elisions.
type AtomExpr struct {
	Value string
}

func (*AtomExpr) Tag() string { return "atom" }
func (*AtomExpr) exprNode()   {}

// NumExpr: ("num", value).
type NumExpr struct {
	Value float64
}

func (*NumExpr) Tag() string { return "num" }
func (*NumExpr) exprNode()   {}

// StringExpr: ("string", value).
type StringExpr struct {
	Value string
}

func (*StringExpr) Tag() string { return "string" }
func (*StringExpr) exprNode()   {}

// RegexpExpr: ("regexp", pattern, flags).
type RegexpExpr struct {
	Pattern string
	Flags   string
}

func (*RegexpExpr) Tag() string { return "regexp" }
func (*RegexpExpr) exprNode()   {}

// ArrayExpr: ("array", elements). An elision is represented by an
// *AtomExpr{Value: "undefined"} element, per spec.md §4.2 — this is
// lossy by design (an elision and an explicit `undefined` element are
// indistinguishable downstream), matching the behavior being preserved.
type ArrayExpr struct {
	Elements []Expr
}

func (*ArrayExpr) Tag() string { return "array" }
func (*ArrayExpr) exprNode()   {}

// ObjectProp is one `key: value` or `name() {get|set}` entry.
type ObjectProp struct {
	Key   string
	Value Expr
	Kind  string // "", "get", or "set"
}

// ObjectExpr: ("object", properties).
type ObjectExpr struct {
	Props []ObjectProp
}

func (*ObjectExpr) Tag() string { return "object" }
func (*ObjectExpr) exprNode()   {}

// --- member access / calls -------------------------------------------------

// DotExpr: ("dot", object, name).
type DotExpr struct {
	Object Expr
	Name   string
}

func (*DotExpr) Tag() string { return "dot" }
func (*DotExpr) exprNode()   {}

// SubExpr: ("sub", object, index).
type SubExpr struct {
	Object Expr
	Index  Expr
}

func (*SubExpr) Tag() string { return "sub" }
func (*SubExpr) exprNode()   {}

// CallExpr: ("call", callee, args).
type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (*CallExpr) Tag() string { return "call" }
func (*CallExpr) exprNode()   {}

// NewExpr: ("new", callee, args).
type NewExpr struct {
	Callee Expr
	Args   []Expr
}

func (*NewExpr) Tag() string { return "new" }
func (*NewExpr) exprNode()   {}

// --- operators -----------------------------------------------------------

// UnaryPrefixExpr: ("unary-prefix", op, operand).
type UnaryPrefixExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryPrefixExpr) Tag() string { return "unary-prefix" }
func (*UnaryPrefixExpr) exprNode()   {}

// UnaryPostfixExpr: ("unary-postfix", op, operand).
type UnaryPostfixExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryPostfixExpr) Tag() string { return "unary-postfix" }
func (*UnaryPostfixExpr) exprNode()   {}

// BinaryExpr: ("binary", op, left, right).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) Tag() string { return "binary" }
func (*BinaryExpr) exprNode()   {}

// AssignExpr: ("assign", op, lhs, rhs). Op is true for a bare `=`, or the
// stripped operator string (e.g. "+") for a compound assignment.
type AssignExpr struct {
	Op  interface{} // bool(true) or string
	Lhs Expr
	Rhs Expr
}

func (*AssignExpr) Tag() string { return "assign" }
func (*AssignExpr) exprNode()   {}

// ConditionalExpr: ("conditional", test, then, else).
type ConditionalExpr struct {
	Test Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) Tag() string { return "conditional" }
func (*ConditionalExpr) exprNode()   {}

// SeqExpr: ("seq", first, rest). A comma expression `a, b, c` is
// represented as nested SeqExprs (`seq(a, seq(b, c))`) per spec.md §4.2's
// two-child shape; NewSeq builds that chain from a flat list.
type SeqExpr struct {
	First Expr
	Rest  Expr
}

func (*SeqExpr) Tag() string { return "seq" }
func (*SeqExpr) exprNode()   {}

// NewSeq builds the right-nested SeqExpr chain for a comma-separated list
// of two or more expressions.
func NewSeq(exprs []Expr) Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &SeqExpr{First: exprs[0], Rest: NewSeq(exprs[1:])}
}
