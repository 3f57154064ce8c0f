package sheet

import (
	"fmt"
)

// Formula is a compiled formula: its expression tree and the cells it
// references.
type Formula struct {
	root node
	refs []string
}

// Refs returns the distinct cell references of the formula in order of
// first appearance.
func (f *Formula) Refs() []string {
	return append([]string(nil), f.refs...)
}

// Eval computes the formula, resolving references through lookup.
func (f *Formula) Eval(lookup func(ref string) float64) float64 {
	if f.root == nil {
		return 0
	}
	return f.root.eval(lookup)
}

// Compile parses a formula body, the text after the leading "=". An empty
// body compiles to the constant 0.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := number | ref | '(' expr ')'
func Compile(body string) (*Formula, error) {
	tokens, err := lex(body)
	if err != nil {
		return nil, err
	}

	f := &Formula{}
	seen := make(map[string]bool)
	for _, t := range tokens {
		if t.kind == tokRef && !seen[t.ref] {
			seen[t.ref] = true
			f.refs = append(f.refs, t.ref)
		}
	}
	if len(tokens) == 0 {
		return f, nil
	}

	p := &parser{tokens: tokens}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		return nil, fmt.Errorf("unexpected %s at %d", t.kind, t.pos)
	}
	f.root = root
	return f, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.kind != tokPlus && t.kind != tokMinus) {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.kind, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || (t.kind != tokStar && t.kind != tokSlash) {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.kind, left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	t, ok := p.peek()
	if ok && (t.kind == tokPlus || t.kind == tokMinus) {
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.kind == tokMinus {
			return negNode{operand}, nil
		}
		return operand, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of formula")
	}
	p.pos++

	switch t.kind {
	case tokNumber:
		return numberNode(t.num), nil
	case tokRef:
		return refNode(t.ref), nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return nil, fmt.Errorf("missing ')' for '(' at %d", t.pos)
		}
		p.pos++
		return inner, nil
	default:
		return nil, fmt.Errorf("unexpected %s at %d", t.kind, t.pos)
	}
}

type node interface {
	eval(lookup func(ref string) float64) float64
}

type numberNode float64

func (n numberNode) eval(func(string) float64) float64 { return float64(n) }

type refNode string

func (r refNode) eval(lookup func(string) float64) float64 { return lookup(string(r)) }

type negNode struct{ operand node }

func (n negNode) eval(lookup func(string) float64) float64 { return -n.operand.eval(lookup) }

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (b binaryNode) eval(lookup func(string) float64) float64 {
	l, r := b.left.eval(lookup), b.right.eval(lookup)
	switch b.op {
	case tokPlus:
		return l + r
	case tokMinus:
		return l - r
	case tokStar:
		return l * r
	default:
		return l / r
	}
}
