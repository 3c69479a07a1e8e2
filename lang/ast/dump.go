package ast

// Dump renders n as the tag-first tuple shape spec.md §3 and §6 describe
// ("AST format: stable, tag-first tagged tuples ... no field names"):
// every node becomes a []interface{} whose first element is its Tag() and
// remaining elements are its children, recursively. It exists for tooling
// that wants to consume the AST structurally (e.g. JSON) without binding
// to the Go struct field names.
func Dump(n Node) interface{} {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Toplevel:
		return []interface{}{v.Tag(), dumpStmts(v.Body)}
	case *Block:
		return []interface{}{v.Tag(), dumpStmts(v.Body)}
	case *ExprStmt:
		return []interface{}{v.Tag(), Dump(v.Expr)}
	case *VarStmt:
		return []interface{}{v.Tag(), dumpDecls(v.Decls)}
	case *ConstStmt:
		return []interface{}{v.Tag(), dumpDecls(v.Decls)}
	case *DebuggerStmt:
		return []interface{}{v.Tag()}
	case *IfStmt:
		out := []interface{}{v.Tag(), Dump(v.Cond), Dump(v.Then)}
		if v.Else != nil {
			out = append(out, Dump(v.Else))
		}
		return out
	case *WhileStmt:
		return []interface{}{v.Tag(), Dump(v.Cond), Dump(v.Body)}
	case *WithStmt:
		return []interface{}{v.Tag(), Dump(v.Expr), Dump(v.Body)}
	case *DoWhileStmt:
		return []interface{}{v.Tag(), Dump(v.Cond), Dump(v.Body)}
	case *ForStmt:
		return []interface{}{v.Tag(), dumpMaybeNode(v.Init), dumpMaybeExpr(v.Test), dumpMaybeExpr(v.Step), Dump(v.Body)}
	case *ForInStmt:
		return []interface{}{v.Tag(), dumpMaybeNode(v.Init), Dump(v.Lhs), Dump(v.Obj), Dump(v.Body)}
	case *SwitchStmt:
		cases := make([]interface{}, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = []interface{}{dumpMaybeExpr(c.Test), dumpStmts(c.Body)}
		}
		return []interface{}{v.Tag(), Dump(v.Discriminant), cases}
	case *BreakStmt:
		return []interface{}{v.Tag(), labelOrNil(v.Label)}
	case *ContinueStmt:
		return []interface{}{v.Tag(), labelOrNil(v.Label)}
	case *ReturnStmt:
		return []interface{}{v.Tag(), dumpMaybeExpr(v.Expr)}
	case *ThrowStmt:
		return []interface{}{v.Tag(), Dump(v.Expr)}
	case *TryStmt:
		out := []interface{}{v.Tag(), Dump(v.Body)}
		if v.HasCatch {
			out = append(out, []interface{}{v.CatchName, Dump(v.CatchBody)})
		}
		if v.HasFinally {
			out = append(out, Dump(v.FinallyBody))
		}
		return out
	case *LabelStmt:
		return []interface{}{v.Tag(), v.Name, Dump(v.Stmt)}
	case *FunctionNode:
		return []interface{}{v.Tag(), nameOrNil(v.Name), v.Params, dumpStmts(v.Body)}
	case *NameExpr:
		return []interface{}{v.Tag(), v.Value}
	case *AtomExpr:
		return []interface{}{v.Tag(), v.Value}
	case *NumExpr:
		return []interface{}{v.Tag(), v.Value}
	case *StringExpr:
		return []interface{}{v.Tag(), v.Value}
	case *RegexpExpr:
		return []interface{}{v.Tag(), v.Pattern, v.Flags}
	case *ArrayExpr:
		return []interface{}{v.Tag(), dumpExprs(v.Elements)}
	case *ObjectExpr:
		props := make([]interface{}, len(v.Props))
		for i, pr := range v.Props {
			if pr.Kind != "" {
				props[i] = []interface{}{pr.Key, Dump(pr.Value), pr.Kind}
			} else {
				props[i] = []interface{}{pr.Key, Dump(pr.Value)}
			}
		}
		return []interface{}{v.Tag(), props}
	case *DotExpr:
		return []interface{}{v.Tag(), Dump(v.Object), v.Name}
	case *SubExpr:
		return []interface{}{v.Tag(), Dump(v.Object), Dump(v.Index)}
	case *CallExpr:
		return []interface{}{v.Tag(), Dump(v.Callee), dumpExprs(v.Args)}
	case *NewExpr:
		return []interface{}{v.Tag(), Dump(v.Callee), dumpExprs(v.Args)}
	case *UnaryPrefixExpr:
		return []interface{}{v.Tag(), v.Op, Dump(v.Operand)}
	case *UnaryPostfixExpr:
		return []interface{}{v.Tag(), v.Op, Dump(v.Operand)}
	case *BinaryExpr:
		return []interface{}{v.Tag(), v.Op, Dump(v.Left), Dump(v.Right)}
	case *AssignExpr:
		return []interface{}{v.Tag(), v.Op, Dump(v.Lhs), Dump(v.Rhs)}
	case *ConditionalExpr:
		return []interface{}{v.Tag(), Dump(v.Test), Dump(v.Then), Dump(v.Else)}
	case *SeqExpr:
		return []interface{}{v.Tag(), Dump(v.First), Dump(v.Rest)}
	default:
		return nil
	}
}

func dumpStmts(body []Stmt) []interface{} {
	out := make([]interface{}, len(body))
	for i, s := range body {
		out[i] = Dump(s)
	}
	return out
}

func dumpExprs(exprs []Expr) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}

func dumpDecls(decls []Decl) []interface{} {
	out := make([]interface{}, len(decls))
	for i, d := range decls {
		if d.Init != nil {
			out[i] = []interface{}{d.Name, Dump(d.Init)}
		} else {
			out[i] = []interface{}{d.Name}
		}
	}
	return out
}

func dumpMaybeExpr(e Expr) interface{} {
	if e == nil {
		return nil
	}
	return Dump(e)
}

func dumpMaybeNode(n Node) interface{} {
	if n == nil {
		return nil
	}
	return Dump(n)
}

func labelOrNil(label string) interface{} {
	if label == "" {
		return nil
	}
	return label
}

func nameOrNil(name string) interface{} {
	if name == "" {
		return nil
	}
	return name
}
