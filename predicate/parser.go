package predicate

import (
	"fmt"
	"strconv"
)

// parse compiles a check expression into an AST.
//
//	orExpr  := andExpr ("or" andExpr)*
//	andExpr := unary ("and" unary)*
//	unary   := "not" unary | comparison
//	compare := arith (("==" | "!=" | "<" | "<=" | ">" | ">=") arith)?
//	arith   := term (("+" | "-") term)*
//	term    := factor (("*" | "/") factor)*
//	factor  := number | string | "true" | "false" | "-" factor
//	         | "(" orExpr ")" | helper "(" ... ")" | path
func parse(check string) (node, error) {
	p := &parser{input: check}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing input at offset %d", p.pos)
	}
	return n, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.acceptWord("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.acceptWord("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.acceptWord("not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{inner: inner}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	op, ok := p.acceptCmpOp()
	if !ok {
		return left, nil
	}
	right, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	return cmpExpr{op: op, left: left, right: right}, nil
}

func (p *parser) parseArith() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = arithExpr{op: c, left: left, right: right}
			continue
		}
		return left, nil
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if c := p.peek(); c == '*' || c == '/' {
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = arithExpr{op: c, left: left, right: right}
			continue
		}
		return left, nil
	}
}

func (p *parser) parseFactor() (node, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == 0:
		return nil, fmt.Errorf("unexpected end of check")

	case c == '(':
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil

	case c == '-':
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return negExpr{inner: inner}, nil

	case c == '\'' || c == '"':
		return p.parseString(c)

	case c >= '0' && c <= '9':
		return p.parseNumber()

	case isPathRune(c):
		return p.parseWord()

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
	}
}

// parseWord handles keywords, helper calls, and bare field paths.
func (p *parser) parseWord() (node, error) {
	ident := p.parseIdent()

	switch ident {
	case "true":
		return boolLit(true), nil
	case "false":
		return boolLit(false), nil
	}

	p.skipSpace()
	if p.peek() != '(' {
		return pathExpr(ident), nil
	}

	switch ident {
	case "sum", "len", "min", "max", "all", "any":
		p.pos++
		p.skipSpace()
		path := p.parseIdent()
		if path == "" {
			return nil, fmt.Errorf("%s() needs a field path at offset %d", ident, p.pos)
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return pathFn{name: ident, path: path}, nil

	case "abs", "round":
		p.pos++
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return mathFn{name: ident, arg: arg}, nil

	default:
		return nil, fmt.Errorf("unknown helper %q at offset %d", ident, p.pos)
	}
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q at offset %d", p.input[start:p.pos], start)
	}
	return numberLit(f), nil
}

func (p *parser) parseString(quote byte) (node, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) {
		if p.input[p.pos] == quote {
			s := p.input[start+1 : p.pos]
			p.pos++
			return stringLit(s), nil
		}
		p.pos++
	}
	return nil, fmt.Errorf("unterminated string at offset %d", start)
}

func (p *parser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isPathRune(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// acceptWord consumes a keyword when it appears as a whole word.
func (p *parser) acceptWord(word string) bool {
	p.skipSpace()
	end := p.pos + len(word)
	if end > len(p.input) || p.input[p.pos:end] != word {
		return false
	}
	if end < len(p.input) && isPathRune(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

func (p *parser) acceptCmpOp() (string, bool) {
	p.skipSpace()
	two := ""
	if p.pos+2 <= len(p.input) {
		two = p.input[p.pos : p.pos+2]
	}
	switch two {
	case "==", "!=", "<=", ">=":
		p.pos += 2
		return two, true
	}
	switch p.peek() {
	case '<', '>':
		op := string(p.peek())
		p.pos++
		return op, true
	}
	return "", false
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func isPathRune(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '.' || c == '[' || c == ']':
		return true
	}
	return false
}
