package formula

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/tsawler/gleaner/processor"
	"github.com/tsawler/gleaner/tree"
)

// Engine evaluates calculation formulas against an extracted-data tree.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a calculation engine. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Run evaluates each calculation in order and writes the result at the
// calculation's field path, so later formulas can reference earlier results.
// A formula that fails to parse, or a result that cannot be written, logs a
// warning and leaves the field unset; Run never aborts the batch.
func (e *Engine) Run(root *tree.Value, calcs []processor.Calculation) {
	for _, c := range calcs {
		result, err := e.Eval(root, c.Formula)
		if err != nil {
			e.log.Warn("calculation skipped",
				zap.String("field", c.Field),
				zap.String("formula", c.Formula),
				zap.Error(err))
			continue
		}
		if err := tree.Write(root, c.Field, numeric(result)); err != nil {
			e.log.Warn("calculation result not written",
				zap.String("field", c.Field),
				zap.Error(err))
		}
	}
}

// Eval parses and evaluates a single formula. Parse errors are returned;
// evaluation itself cannot fail.
func (e *Engine) Eval(root *tree.Value, formula string) (float64, error) {
	p := &parser{input: formula}
	n, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("formula %q: trailing input at offset %d", formula, p.pos)
	}
	return n.eval(&env{root: root, log: e.log}), nil
}

// numeric returns an int for integral results so serialized counts read as
// whole numbers, and the float64 otherwise.
func numeric(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return int(f)
	}
	return f
}

type env struct {
	root *tree.Value
	log  *zap.Logger
}

type node interface {
	eval(*env) float64
}

type literal float64

func (l literal) eval(*env) float64 { return float64(l) }

type negate struct{ inner node }

func (n negate) eval(e *env) float64 { return -n.inner.eval(e) }

type binary struct {
	op          byte
	left, right node
}

func (b binary) eval(e *env) float64 {
	l, r := b.left.eval(e), b.right.eval(e)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	default:
		if r == 0 {
			e.log.Warn("division by zero in formula")
			return 0
		}
		return l / r
	}
}

// sumNode adds every numeric value reachable at the path. A missing path
// contributes 0; elements that do not coerce to a number are skipped.
type sumNode struct{ path string }

func (s sumNode) eval(e *env) float64 {
	values := tree.Collect(e.root, s.path)
	if len(values) == 0 {
		e.log.Warn("sum over missing path", zap.String("path", s.path))
		return 0
	}
	var total float64
	for _, v := range values {
		if f, ok := v.Number(); ok {
			total += f
		}
	}
	return total
}

// pathNode reads a single numeric field. Missing or non-numeric values
// evaluate to 0.
type pathNode struct{ path string }

func (p pathNode) eval(e *env) float64 {
	values := tree.Collect(e.root, p.path)
	if len(values) == 0 {
		e.log.Warn("formula references missing path", zap.String("path", p.path))
		return 0
	}
	f, ok := values[0].Number()
	if !ok {
		e.log.Warn("formula path is not numeric", zap.String("path", p.path))
		return 0
	}
	return f
}

// parser is a recursive-descent parser over the raw formula string.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if op := p.peek(); op == '+' || op == '-' {
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = binary{op: op, left: left, right: right}
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
		if op := p.peek(); op == '*' || op == '/' {
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = binary{op: op, left: left, right: right}
			continue
		}
		return left, nil
	}
}

func (p *parser) parseFactor() (node, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == 0:
		return nil, fmt.Errorf("unexpected end of formula")

	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
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
		return negate{inner: inner}, nil

	case c >= '0' && c <= '9':
		return p.parseNumber()

	case isPathRune(c):
		ident := p.parseIdent()
		p.skipSpace()
		if ident == "sum" && p.peek() == '(' {
			p.pos++
			p.skipSpace()
			path := p.parseIdent()
			if path == "" {
				return nil, fmt.Errorf("sum() needs a field path at offset %d", p.pos)
			}
			if err := p.expect(')'); err != nil {
				return nil, err
			}
			return sumNode{path: path}, nil
		}
		return pathNode{path: ident}, nil

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
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
	return literal(f), nil
}

// parseIdent consumes a field path: letters, digits, underscores, dots, and
// [] markers.
func (p *parser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isPathRune(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
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
