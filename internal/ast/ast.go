package ast

import (
	"github.com/oinkcat/scripting-lang/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string // Source file path
	Imports    []*ImportStatement
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// BlockStatement is a sequence of statements terminated by `end` (or by
// `elsif`/`else` inside an if ladder).
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ExpressionStatement wraps a bare call used as a statement.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// AssignStatement covers `x = v`, `x += v` and element assignment
// `a[i] = v`, `h.k = v`. Target is an *Identifier or an *IndexExpression.
type AssignStatement struct {
	Token    token.Token
	Target   Expression
	Operator string // "=", "+=", "-=", "*=", "/=", "%="
	Value    Expression
}

func (as *AssignStatement) statementNode()        {}
func (as *AssignStatement) TokenLiteral() string  { return as.Token.Literal }
func (as *AssignStatement) GetToken() token.Token { return as.Token }

// ConditionalBranch is one `if`/`elsif` arm.
type ConditionalBranch struct {
	Condition Expression
	Body      *BlockStatement
}

// IfStatement is an if/elsif/else ladder. At most one branch executes;
// executing none is legal when no condition holds and Else is nil.
type IfStatement struct {
	Token    token.Token
	Branches []*ConditionalBranch
	Else     *BlockStatement
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// WhileStatement is the `for <cond>` loop form (no `as` variable).
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Literal }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForEachStatement is the `for <collection> as <var>` loop form.
type ForEachStatement struct {
	Token      token.Token
	Collection Expression
	Var        string
	Body       *BlockStatement
}

func (fs *ForEachStatement) statementNode()        {}
func (fs *ForEachStatement) TokenLiteral() string  { return fs.Token.Literal }
func (fs *ForEachStatement) GetToken() token.Token { return fs.Token }

// BreakStatement exits Depth enclosing loops (default 1).
type BreakStatement struct {
	Token token.Token
	Depth int
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Literal }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement restarts the Depth-th enclosing loop (default 1).
type ContinueStatement struct {
	Token token.Token
	Depth int
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Literal }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// FunctionStatement is a top-level `func name(params) ... end`
// definition.
type FunctionStatement struct {
	Token      token.Token
	Name       string
	Parameters []string
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Literal }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// ReturnStatement yields Value (or null when Value is nil) from the
// enclosing function.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Literal }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// EmitStatement writes a value to the host output sink, optionally
// tagged with a key: `emit expr as key`.
type EmitStatement struct {
	Token token.Token
	Value Expression
	Key   string
}

func (es *EmitStatement) statementNode()        {}
func (es *EmitStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *EmitStatement) GetToken() token.Token { return es.Token }

// UseStatement imports outer bindings for writing. At the top level it
// declares host-shared variables instead.
type UseStatement struct {
	Token token.Token
	Names []string
}

func (us *UseStatement) statementNode()        {}
func (us *UseStatement) TokenLiteral() string  { return us.Token.Literal }
func (us *UseStatement) GetToken() token.Token { return us.Token }

// ImportStatement binds native module names in the global scope.
type ImportStatement struct {
	Token  token.Token
	Native bool
	Names  []string
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Literal }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// Identifier is a variable, function or module name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) GetToken() token.Token { return i.Token }

// NumberLiteral is a numeric literal. All L numbers are float64.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral is a plain string segment without interpolation.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// InterpolatedString is a string literal containing ${expr} segments.
// Parts alternate literal and expression pieces in source order; each
// part is stringified at evaluation time and concatenated.
type InterpolatedString struct {
	Token token.Token
	Parts []Expression
}

func (is *InterpolatedString) expressionNode()       {}
func (is *InterpolatedString) TokenLiteral() string  { return is.Token.Literal }
func (is *InterpolatedString) GetToken() token.Token { return is.Token }

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Literal }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// HashPair is a single `key: value` entry. Pairs keep source order so
// hashes iterate in insertion order.
type HashPair struct {
	Key   string
	Value Expression
}

// HashLiteral is `{ key: value, ... }`.
type HashLiteral struct {
	Token token.Token
	Pairs []HashPair
}

func (hl *HashLiteral) expressionNode()       {}
func (hl *HashLiteral) TokenLiteral() string  { return hl.Token.Literal }
func (hl *HashLiteral) GetToken() token.Token { return hl.Token }

// NewObject is `new { ... }`: a hash literal whose `ref` fields become
// methods bound to the hash on dotted calls.
type NewObject struct {
	Token token.Token
	Hash  *HashLiteral
}

func (no *NewObject) expressionNode()       {}
func (no *NewObject) TokenLiteral() string  { return no.Token.Literal }
func (no *NewObject) GetToken() token.Token { return no.Token }

// RefExpression is `ref name` or `ref module.name`.
type RefExpression struct {
	Token  token.Token
	Module string
	Name   string
}

func (re *RefExpression) expressionNode()       {}
func (re *RefExpression) TokenLiteral() string  { return re.Token.Literal }
func (re *RefExpression) GetToken() token.Token { return re.Token }

// FunctionLiteral is an anonymous `func(params) ... end` expression.
type FunctionLiteral struct {
	Token      token.Token
	Parameters []string
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Literal }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// PrefixExpression is unary minus or `not`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Literal }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression covers math, comparison, logic and `&` concatenation.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Literal }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// CondExpression is the `if(cond, then, else)` expression form. Only
// the taken branch is evaluated.
type CondExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (ce *CondExpression) expressionNode()       {}
func (ce *CondExpression) TokenLiteral() string  { return ce.Token.Literal }
func (ce *CondExpression) GetToken() token.Token { return ce.Token }

// IndexExpression is `left[index]` or dotted access `left.name`.
// Dot is true for the dotted form; a dotted call on a hash is the
// access path that binds methods to their receiver.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
	Dot   bool
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Literal }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// CallExpression is `callee(args)` where callee is an identifier or an
// access chain.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Literal }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
