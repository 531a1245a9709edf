package predicate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/gleaner/tree"
)

// node is an expression AST node. Evaluation yields a float64, string, or
// bool; data-shape problems (missing fields, non-scalar operands) surface as
// errors and fail the enclosing rule.
type node interface {
	eval(root *tree.Value) (any, error)
}

type numberLit float64

func (n numberLit) eval(*tree.Value) (any, error) { return float64(n), nil }

type stringLit string

func (s stringLit) eval(*tree.Value) (any, error) { return string(s), nil }

type boolLit bool

func (b boolLit) eval(*tree.Value) (any, error) { return bool(b), nil }

// pathExpr reads a single scalar at a field path.
type pathExpr string

func (p pathExpr) eval(root *tree.Value) (any, error) {
	values := tree.Collect(root, string(p))
	switch len(values) {
	case 0:
		return nil, fmt.Errorf("missing field %q", string(p))
	case 1:
		if values[0].Kind() != tree.KindScalar {
			return nil, fmt.Errorf("field %q is not a scalar", string(p))
		}
		return normalize(values[0].Scalar()), nil
	default:
		return nil, fmt.Errorf("field %q yields %d values; aggregate with sum/len/min/max/all/any", string(p), len(values))
	}
}

type negExpr struct{ inner node }

func (n negExpr) eval(root *tree.Value) (any, error) {
	v, err := n.inner.eval(root)
	if err != nil {
		return nil, err
	}
	f, ok := toNumber(v)
	if !ok {
		return nil, fmt.Errorf("cannot negate %T", v)
	}
	return -f, nil
}

type notExpr struct{ inner node }

func (n notExpr) eval(root *tree.Value) (any, error) {
	v, err := n.inner.eval(root)
	if err != nil {
		return nil, err
	}
	return !truthy(v), nil
}

type arithExpr struct {
	op          byte
	left, right node
}

func (a arithExpr) eval(root *tree.Value) (any, error) {
	lv, err := a.left.eval(root)
	if err != nil {
		return nil, err
	}
	rv, err := a.right.eval(root)
	if err != nil {
		return nil, err
	}
	l, lok := toNumber(lv)
	r, rok := toNumber(rv)
	if !lok || !rok {
		return nil, fmt.Errorf("arithmetic on non-numeric operands (%T, %T)", lv, rv)
	}
	switch a.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	default:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return l / r, nil
	}
}

type cmpExpr struct {
	op          string
	left, right node
}

func (c cmpExpr) eval(root *tree.Value) (any, error) {
	lv, err := c.left.eval(root)
	if err != nil {
		return nil, err
	}
	rv, err := c.right.eval(root)
	if err != nil {
		return nil, err
	}
	return compare(c.op, lv, rv)
}

// compare applies numeric comparison when both operands coerce to numbers,
// falling back to string and boolean comparison for ==/!= and string
// ordering otherwise.
func compare(op string, lv, rv any) (any, error) {
	if l, lok := toNumber(lv); lok {
		if r, rok := toNumber(rv); rok {
			switch op {
			case "==":
				return l == r, nil
			case "!=":
				return l != r, nil
			case "<":
				return l < r, nil
			case "<=":
				return l <= r, nil
			case ">":
				return l > r, nil
			default:
				return l >= r, nil
			}
		}
	}

	ls, lok := lv.(string)
	rs, rok := rv.(string)
	if lok && rok {
		switch op {
		case "==":
			return ls == rs, nil
		case "!=":
			return ls != rs, nil
		case "<":
			return ls < rs, nil
		case "<=":
			return ls <= rs, nil
		case ">":
			return ls > rs, nil
		default:
			return ls >= rs, nil
		}
	}

	if op == "==" || op == "!=" {
		eq := lv == rv
		if op == "!=" {
			eq = !eq
		}
		return eq, nil
	}
	return nil, fmt.Errorf("cannot order %T against %T", lv, rv)
}

type logicalExpr struct {
	op          string // "and" | "or"
	left, right node
}

func (l logicalExpr) eval(root *tree.Value) (any, error) {
	lv, err := l.left.eval(root)
	if err != nil {
		return nil, err
	}
	rv, err := l.right.eval(root)
	if err != nil {
		return nil, err
	}
	if l.op == "and" {
		return truthy(lv) && truthy(rv), nil
	}
	return truthy(lv) || truthy(rv), nil
}

// pathFn is a helper applied to every value a path reaches: sum, len, min,
// max, all, any.
type pathFn struct {
	name string
	path string
}

func (f pathFn) eval(root *tree.Value) (any, error) {
	values := tree.Collect(root, f.path)

	switch f.name {
	case "len":
		return float64(len(values)), nil
	case "any":
		for _, v := range values {
			if v.Truthy() {
				return true, nil
			}
		}
		return false, nil
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%s over missing field %q", f.name, f.path)
	}

	switch f.name {
	case "all":
		for _, v := range values {
			if !v.Truthy() {
				return false, nil
			}
		}
		return true, nil

	case "sum":
		var total float64
		for _, v := range values {
			if n, ok := v.Number(); ok {
				total += n
			}
		}
		return total, nil

	case "min", "max":
		var best float64
		found := false
		for _, v := range values {
			n, ok := v.Number()
			if !ok {
				continue
			}
			if !found || (f.name == "min" && n < best) || (f.name == "max" && n > best) {
				best = n
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%s over non-numeric field %q", f.name, f.path)
		}
		return best, nil
	}

	return nil, fmt.Errorf("unknown helper %q", f.name)
}

// mathFn is a helper applied to one numeric expression: abs, round.
type mathFn struct {
	name string
	arg  node
}

func (f mathFn) eval(root *tree.Value) (any, error) {
	v, err := f.arg.eval(root)
	if err != nil {
		return nil, err
	}
	n, ok := toNumber(v)
	if !ok {
		return nil, fmt.Errorf("%s over non-numeric value %T", f.name, v)
	}
	if f.name == "abs" {
		return math.Abs(n), nil
	}
	return math.Round(n), nil
}

// normalize maps scalar values onto the three evaluation types.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case bool, string, float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toNumber coerces an evaluation value to float64. Numeric-looking strings
// coerce so untransformed extractions still compare numerically.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	}
	return false
}
