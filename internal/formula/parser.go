package formula

import (
	"fmt"
	"sort"
)

// Expr is a parsed arithmetic expression. It is immutable and safe for
// concurrent evaluation.
type Expr struct {
	src  string
	root node
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string { return e.src }

// Vars returns the sorted, de-duplicated free identifiers referenced by
// the expression. Built-in constants are included only when the
// expression names them, since a binding would shadow them.
func (e *Expr) Vars() []string {
	seen := make(map[string]bool)
	collectVars(e.root, seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parse tokenizes and parses src into an Expr.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &Error{Expr: src, Pos: 0, Msg: "empty expression"}
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s %q", t.kind, t.text)
	}
	return &Expr{src: src, root: root}, nil
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &Error{Expr: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.text[0], left: left, right: right, pos: t.pos}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.text[0], left: left, right: right, pos: t.pos}
	}
}

// unary := ('-' | '+') unary | power
func (p *parser) parseUnary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			return operand, nil
		}
		return &negNode{operand: operand}, nil
	}
	return p.parsePower()
}

// power := primary ('^' unary)?
// Right-associative, and binds tighter than a leading minus: -2^2 == -4.
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind == tokOp && t.text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: '^', left: base, right: exp, pos: t.pos}, nil
	}
	return base, nil
}

// primary := NUMBER | IDENT | IDENT '(' args ')' | '(' expr ')'
func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode(t.num), nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return &varNode{name: t.text, pos: t.pos}, nil

	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected ')', got %s", closing.kind)
		}
		return inner, nil

	default:
		return nil, p.errorf(t, "unexpected %s", t.kind)
	}
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := functions[name.text]
	if !ok {
		return nil, p.errorf(name, "unknown function %q", name.text)
	}
	p.next() // (

	var args []node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if closing := p.next(); closing.kind != tokRParen {
		return nil, p.errorf(closing, "expected ')' after arguments to %s, got %s", name.text, closing.kind)
	}
	if fn.arity >= 0 && len(args) != fn.arity {
		return nil, p.errorf(name, "%s expects %d argument(s), got %d", name.text, fn.arity, len(args))
	}
	if fn.arity < 0 && len(args) == 0 {
		return nil, p.errorf(name, "%s expects at least one argument", name.text)
	}
	return &callNode{name: name.text, fn: fn, args: args, pos: name.pos}, nil
}

func collectVars(n node, seen map[string]bool) {
	switch n := n.(type) {
	case *varNode:
		seen[n.name] = true
	case *negNode:
		collectVars(n.operand, seen)
	case *binaryNode:
		collectVars(n.left, seen)
		collectVars(n.right, seen)
	case *callNode:
		for _, a := range n.args {
			collectVars(a, seen)
		}
	}
}
