package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders a Node back to ECMAScript 3 source text. It fully
// parenthesizes every compound expression, which makes the output
// precedence-unambiguous and satisfies the round-trip testable property
// in spec.md §8 ("parsing then pretty-printing ... yields the identical
// AST, up to trivia") without needing to reproduce operator-precedence
// tables in reverse.
type Printer struct {
	sb     strings.Builder
	indent int
}

// Print renders n (a *Toplevel, a Stmt, or an Expr) to source text.
func Print(n Node) string {
	p := &Printer{}
	p.node(n)
	return p.sb.String()
}

func (p *Printer) writeIndent() { p.sb.WriteString(strings.Repeat("  ", p.indent)) }

func (p *Printer) node(n Node) {
	switch v := n.(type) {
	case *Toplevel:
		p.stmts(v.Body)
	case Stmt:
		p.stmt(v)
	case Expr:
		p.expr(v)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled node %T", n))
	}
}

func (p *Printer) stmts(body []Stmt) {
	for _, s := range body {
		p.writeIndent()
		p.stmt(s)
		p.sb.WriteString("\n")
	}
}

func (p *Printer) block(b *Block) {
	p.sb.WriteString("{\n")
	p.indent++
	p.stmts(b.Body)
	p.indent--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *Printer) bodyAsBlock(body []Stmt) {
	p.block(&Block{Body: body})
}

func (p *Printer) stmt(s Stmt) {
	switch v := s.(type) {
	case *Block:
		p.block(v)
	case *ExprStmt:
		// Parenthesized so that an expression beginning with `function` or
		// `{` is not read back as a declaration or a block.
		p.sb.WriteString("(")
		p.expr(v.Expr)
		p.sb.WriteString(");")
	case *VarStmt:
		p.sb.WriteString("var ")
		p.decls(v.Decls)
		p.sb.WriteString(";")
	case *ConstStmt:
		p.sb.WriteString("const ")
		p.decls(v.Decls)
		p.sb.WriteString(";")
	case *DebuggerStmt:
		p.sb.WriteString("debugger;")
	case *IfStmt:
		p.sb.WriteString("if (")
		p.expr(v.Cond)
		p.sb.WriteString(") ")
		p.stmt(v.Then)
		if v.Else != nil {
			p.sb.WriteString(" else ")
			p.stmt(v.Else)
		}
	case *WhileStmt:
		p.sb.WriteString("while (")
		p.expr(v.Cond)
		p.sb.WriteString(") ")
		p.stmt(v.Body)
	case *WithStmt:
		p.sb.WriteString("with (")
		p.expr(v.Expr)
		p.sb.WriteString(") ")
		p.stmt(v.Body)
	case *DoWhileStmt:
		p.sb.WriteString("do ")
		p.stmt(v.Body)
		p.sb.WriteString(" while (")
		p.expr(v.Cond)
		p.sb.WriteString(");")
	case *ForStmt:
		p.sb.WriteString("for (")
		p.forInit(v.Init)
		p.sb.WriteString("; ")
		if v.Test != nil {
			p.expr(v.Test)
		}
		p.sb.WriteString("; ")
		if v.Step != nil {
			p.expr(v.Step)
		}
		p.sb.WriteString(") ")
		p.stmt(v.Body)
	case *ForInStmt:
		p.sb.WriteString("for (")
		if vs, ok := v.Init.(*VarStmt); ok {
			p.sb.WriteString("var ")
			p.decls(vs.Decls)
		} else {
			p.expr(v.Lhs)
		}
		p.sb.WriteString(" in ")
		p.expr(v.Obj)
		p.sb.WriteString(") ")
		p.stmt(v.Body)
	case *SwitchStmt:
		p.sb.WriteString("switch (")
		p.expr(v.Discriminant)
		p.sb.WriteString(") {\n")
		p.indent++
		for _, c := range v.Cases {
			p.writeIndent()
			if c.Test != nil {
				p.sb.WriteString("case ")
				p.expr(c.Test)
				p.sb.WriteString(":\n")
			} else {
				p.sb.WriteString("default:\n")
			}
			p.indent++
			p.stmts(c.Body)
			p.indent--
		}
		p.indent--
		p.writeIndent()
		p.sb.WriteString("}")
	case *BreakStmt:
		p.sb.WriteString("break")
		if v.Label != "" {
			p.sb.WriteString(" " + v.Label)
		}
		p.sb.WriteString(";")
	case *ContinueStmt:
		p.sb.WriteString("continue")
		if v.Label != "" {
			p.sb.WriteString(" " + v.Label)
		}
		p.sb.WriteString(";")
	case *ReturnStmt:
		p.sb.WriteString("return")
		if v.Expr != nil {
			p.sb.WriteString(" ")
			p.expr(v.Expr)
		}
		p.sb.WriteString(";")
	case *ThrowStmt:
		p.sb.WriteString("throw ")
		p.expr(v.Expr)
		p.sb.WriteString(";")
	case *TryStmt:
		p.sb.WriteString("try ")
		p.block(v.Body)
		if v.HasCatch {
			p.sb.WriteString(" catch (" + v.CatchName + ") ")
			p.block(v.CatchBody)
		}
		if v.HasFinally {
			p.sb.WriteString(" finally ")
			p.block(v.FinallyBody)
		}
	case *LabelStmt:
		p.sb.WriteString(v.Name + ": ")
		p.stmt(v.Stmt)
	case *FunctionNode:
		p.function(v)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled statement %T", s))
	}
}

func (p *Printer) forInit(init Node) {
	switch v := init.(type) {
	case nil:
	case *VarStmt:
		p.sb.WriteString("var ")
		p.decls(v.Decls)
	case Expr:
		p.expr(v)
	}
}

func (p *Printer) decls(decls []Decl) {
	for i, d := range decls {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(d.Name)
		if d.Init != nil {
			p.sb.WriteString(" = ")
			p.expr(d.Init)
		}
	}
}

func (p *Printer) function(f *FunctionNode) {
	p.sb.WriteString("function")
	if f.Name != "" {
		p.sb.WriteString(" " + f.Name)
	}
	p.sb.WriteString("(" + strings.Join(f.Params, ", ") + ") ")
	p.bodyAsBlock(f.Body)
}

func (p *Printer) expr(e Expr) {
	switch v := e.(type) {
	case *NameExpr:
		p.sb.WriteString(v.Value)
	case *AtomExpr:
		p.sb.WriteString(v.Value)
	case *NumExpr:
		p.sb.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *StringExpr:
		p.sb.WriteString(strconv.Quote(v.Value))
	case *RegexpExpr:
		p.sb.WriteString("/" + v.Pattern + "/" + v.Flags)
	case *ArrayExpr:
		p.sb.WriteString("[")
		for i, el := range v.Elements {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.expr(el)
		}
		p.sb.WriteString("]")
	case *ObjectExpr:
		p.sb.WriteString("{")
		for i, prop := range v.Props {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			// Keys are quoted so that any key, including one written as a
			// string literal such as "a-b", reads back unchanged.
			switch prop.Kind {
			case "get", "set":
				p.sb.WriteString(prop.Kind + " " + strconv.Quote(prop.Key))
				if fn, ok := prop.Value.(*FunctionNode); ok {
					p.sb.WriteString("(")
					p.sb.WriteString(strings.Join(fn.Params, ", "))
					p.sb.WriteString(") ")
					p.bodyAsBlock(fn.Body)
				}
			default:
				p.sb.WriteString(strconv.Quote(prop.Key) + ": ")
				p.expr(prop.Value)
			}
		}
		p.sb.WriteString("}")
	case *DotExpr:
		if _, ok := v.Object.(*NumExpr); ok {
			// `1.x` would scan as one malformed number.
			p.sb.WriteString("(")
			p.expr(v.Object)
			p.sb.WriteString(")")
		} else {
			p.expr(v.Object)
		}
		p.sb.WriteString("." + v.Name)
	case *SubExpr:
		p.expr(v.Object)
		p.sb.WriteString("[")
		p.expr(v.Index)
		p.sb.WriteString("]")
	case *CallExpr:
		p.expr(v.Callee)
		p.args(v.Args)
	case *NewExpr:
		p.sb.WriteString("new ")
		// A callee other than a plain name is parenthesized, so that a call
		// inside it is not read back as this `new`'s argument list.
		if _, ok := v.Callee.(*NameExpr); ok {
			p.expr(v.Callee)
		} else {
			p.sb.WriteString("(")
			p.expr(v.Callee)
			p.sb.WriteString(")")
		}
		p.args(v.Args)
	case *UnaryPrefixExpr:
		p.sb.WriteString("(" + v.Op)
		if isWordOp(v.Op) {
			p.sb.WriteString(" ")
		}
		p.expr(v.Operand)
		p.sb.WriteString(")")
	case *UnaryPostfixExpr:
		p.sb.WriteString("(")
		p.expr(v.Operand)
		p.sb.WriteString(v.Op + ")")
	case *BinaryExpr:
		p.sb.WriteString("(")
		p.expr(v.Left)
		p.sb.WriteString(" " + v.Op + " ")
		p.expr(v.Right)
		p.sb.WriteString(")")
	case *AssignExpr:
		p.sb.WriteString("(")
		p.expr(v.Lhs)
		op := "="
		if s, ok := v.Op.(string); ok {
			op = s + "="
		}
		p.sb.WriteString(" " + op + " ")
		p.expr(v.Rhs)
		p.sb.WriteString(")")
	case *ConditionalExpr:
		p.sb.WriteString("(")
		p.expr(v.Test)
		p.sb.WriteString(" ? ")
		p.expr(v.Then)
		p.sb.WriteString(" : ")
		p.expr(v.Else)
		p.sb.WriteString(")")
	case *SeqExpr:
		p.sb.WriteString("(")
		p.expr(v.First)
		p.sb.WriteString(", ")
		p.expr(v.Rest)
		p.sb.WriteString(")")
	case *FunctionNode:
		p.function(v)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled expression %T", e))
	}
}

func (p *Printer) args(args []Expr) {
	p.sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.expr(a)
	}
	p.sb.WriteString(")")
}

func isWordOp(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	default:
		return false
	}
}
