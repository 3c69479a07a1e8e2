// Package token defines the token and source-position types shared by the
// lexer and the parser.
package token

import "fmt"

// Pos is a source position: a 0-based line and column together with the
// 0-based absolute offset into the normalized input text.
type Pos struct {
	Line int
	Col  int
	Off  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Type is the tag of a Token, drawn from the fixed set described in
// spec.md §3.
type Type int

// Token types.
const (
	EOF Type = iota
	NUM
	STRING
	REGEXP
	NAME
	KEYWORD
	ATOM
	OPERATOR
	PUNC
	COMMENT_LINE  // "comment1" in spec.md terms
	COMMENT_BLOCK // "comment2" in spec.md terms
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "eof"
	case NUM:
		return "num"
	case STRING:
		return "string"
	case REGEXP:
		return "regexp"
	case NAME:
		return "name"
	case KEYWORD:
		return "keyword"
	case ATOM:
		return "atom"
	case OPERATOR:
		return "operator"
	case PUNC:
		return "punc"
	case COMMENT_LINE:
		return "comment1"
	case COMMENT_BLOCK:
		return "comment2"
	default:
		return "unknown"
	}
}

// RegexValue is the Value payload carried by a REGEXP token: a pattern and
// its trailing flags, scanned but not compiled.
type RegexValue struct {
	Pattern string
	Flags   string
}

// Token is a single lexical unit: a type tag, a value whose concrete shape
// depends on that tag, a source position, the "newline before" flag used
// for automatic semicolon insertion, and any trivia (comments) collected
// since the previous non-trivia token.
type Token struct {
	Type  Type
	Value interface{} // float64 (NUM), string (STRING/NAME/KEYWORD/ATOM/OPERATOR/PUNC/comments), RegexValue (REGEXP)
	Pos   Pos

	// NLB is true iff at least one newline separates this token from the
	// previous non-comment token.
	NLB bool

	// CommentsBefore holds trivia tokens (COMMENT_LINE/COMMENT_BLOCK)
	// accumulated since the previous non-comment token. Always empty on a
	// comment token itself.
	CommentsBefore []Token
}

// Str returns Value as a string, which is the correct accessor for every
// token type except NUM (float64) and REGEXP (RegexValue).
func (t Token) Str() string {
	s, _ := t.Value.(string)
	return s
}

// Num returns Value as a float64; valid only when Type == NUM.
func (t Token) Num() float64 {
	n, _ := t.Value.(float64)
	return n
}

// Regex returns Value as a RegexValue; valid only when Type == REGEXP.
func (t Token) Regex() RegexValue {
	r, _ := t.Value.(RegexValue)
	return r
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "<eof>"
	case NUM:
		return fmt.Sprintf("%v", t.Num())
	case REGEXP:
		r := t.Regex()
		return fmt.Sprintf("/%s/%s", r.Pattern, r.Flags)
	default:
		return fmt.Sprintf("%v", t.Value)
	}
}

// Keywords is the fixed ES3 keyword set. Reserved future words (class,
// enum, export, ...) are deliberately absent: they tokenize as NAME.
var Keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "const": true,
	"continue": true, "default": true, "delete": true, "do": true,
	"else": true, "finally": true, "for": true, "function": true,
	"if": true, "in": true, "instanceof": true, "new": true,
	"return": true, "switch": true, "throw": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
}

// OperatorKeywords are keywords classified as OPERATOR tokens so the parser
// can treat them uniformly with punctuation operators.
var OperatorKeywords = map[string]bool{
	"in": true, "instanceof": true, "typeof": true,
	"new": true, "void": true, "delete": true,
}

// AtomKeywords become ATOM tokens.
var AtomKeywords = map[string]bool{
	"false": true, "null": true, "true": true, "undefined": true,
}

// ClassifyWord returns the Type a scanned identifier-shaped word should
// carry: KEYWORD, OPERATOR (for the operator-like keywords), ATOM, or NAME.
func ClassifyWord(word string) Type {
	if AtomKeywords[word] {
		return ATOM
	}
	if OperatorKeywords[word] {
		return OPERATOR
	}
	if Keywords[word] {
		return KEYWORD
	}
	return NAME
}

// KeywordsPrecedingExpression are the KEYWORD-typed lexemes after which a
// regular expression literal may legally begin (spec.md §4.1, "regex_allowed
// after-emit rule"). This only needs to list words that actually reach the
// lexer's `case token.KEYWORD:` branch: new/delete/in/instanceof/typeof/void
// are classified as OPERATOR by OperatorKeywords and never get here.
var KeywordsPrecedingExpression = map[string]bool{
	"return": true, "throw": true, "else": true, "case": true,
}

// PuncPrecedingExpression is the punctuation set after which a regex
// literal may legally begin.
var PuncPrecedingExpression = map[string]bool{
	"[": true, "{": true, "}": true, "(": true, ",": true, ".": true, ";": true, ":": true,
}
