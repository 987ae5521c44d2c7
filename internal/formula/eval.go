package formula

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a bound variable: either a number or a categorical label.
type Value struct {
	Num     float64
	Text    string
	Numeric bool
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{Num: f, Numeric: true} }

// Label returns a categorical Value.
func Label(s string) Value { return Value{Text: s} }

// Display renders the value the way it appears in question text.
func (v Value) Display() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Text
}

// Vars binds names to values for a single evaluation.
type Vars map[string]Value

type node interface {
	eval(e *evalCtx) (float64, error)
}

type evalCtx struct {
	src  string
	vars Vars
}

func (c *evalCtx) fail(pos int, sentinel error, format string, args ...any) error {
	return &Error{Expr: c.src, Pos: pos, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

type numberNode float64

func (n numberNode) eval(*evalCtx) (float64, error) { return float64(n), nil }

type varNode struct {
	name string
	pos  int
}

func (n *varNode) eval(c *evalCtx) (float64, error) {
	if v, ok := c.vars[n.name]; ok {
		if !v.Numeric {
			return 0, c.fail(n.pos, ErrNotNumeric, "variable %q is %q, not a number", n.name, v.Text)
		}
		return v.Num, nil
	}
	if k, ok := constants[n.name]; ok {
		return k, nil
	}
	return 0, c.fail(n.pos, ErrUnknownVariable, "unknown variable %q", n.name)
}

type negNode struct {
	operand node
}

func (n *negNode) eval(c *evalCtx) (float64, error) {
	v, err := n.operand.eval(c)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op          byte
	left, right node
	pos         int
}

func (n *binaryNode) eval(c *evalCtx) (float64, error) {
	l, err := n.left.eval(c)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(c)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, c.fail(n.pos, ErrDivisionByZero, "division by zero")
		}
		return l / r, nil
	case '^':
		return math.Pow(l, r), nil
	}
	return 0, c.fail(n.pos, nil, "unsupported operator %q", n.op)
}

type callNode struct {
	name string
	fn   function
	args []node
	pos  int
}

func (n *callNode) eval(c *evalCtx) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(c)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	v, err := n.fn.call(args)
	if err != nil {
		return 0, c.fail(n.pos, nil, "%s: %v", n.name, err)
	}
	return v, nil
}

type function struct {
	arity int // -1 for variadic
	call  func(args []float64) (float64, error)
}

// functions is the whitelist of callable names. Nothing else can be
// invoked from an expression.
var functions = map[string]function{
	"sqrt": {arity: 1, call: func(a []float64) (float64, error) {
		if a[0] < 0 {
			return 0, fmt.Errorf("negative argument %v", a[0])
		}
		return math.Sqrt(a[0]), nil
	}},
	"abs": {arity: 1, call: func(a []float64) (float64, error) { return math.Abs(a[0]), nil }},
	"pow": {arity: 2, call: func(a []float64) (float64, error) { return math.Pow(a[0], a[1]), nil }},
	"min": {arity: -1, call: func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	}},
	"max": {arity: -1, call: func(a []float64) (float64, error) {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	}},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// IsConstant reports whether name resolves without a binding.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// Eval evaluates the expression against vars.
func (e *Expr) Eval(vars Vars) (float64, error) {
	c := &evalCtx{src: e.src, vars: vars}
	v, err := e.root.eval(c)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, c.fail(-1, ErrNotFinite, "result is %v", v)
	}
	return v, nil
}

// Evaluate parses and evaluates src in one step.
func Evaluate(src string, vars Vars) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return expr.Eval(vars)
}
