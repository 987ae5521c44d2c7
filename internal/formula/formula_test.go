package formula

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEvaluate(t *testing.T) {
	vars := Vars{
		"m": Number(2),
		"v": Number(3),
		"a": Number(4.5),
		"h": Number(20),
		"g": Number(9.8),
	}

	tests := []struct {
		expr string
		want float64
	}{
		{"m * a", 9},
		{"0.5 * m * v * v", 9},
		{"m + v * a", 15.5},
		{"(m + v) * a", 22.5},
		{"m - v - 1", -2},
		{"12 / m / v", 2},
		{"-m", -2},
		{"--m", 2},
		{"+v", 3},
		{"-2^2", -4},
		{"2^-1", 0.5},
		{"2^3^2", 512},
		{"v^2 / (2 * g)", 9.0 / 19.6},
		{"sqrt(2 * g * h)", math.Sqrt(2 * 9.8 * 20)},
		{"abs(m - v)", 1},
		{"pow(m, 3)", 8},
		{"min(m, v, a)", 2},
		{"max(m, v, a)", 4.5},
		{"2 * pi", 2 * math.Pi},
		{"6.674e-11 * 2", 6.674e-11 * 2},
		{".5 * 4", 2},
		{"1E3", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, vars)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_VariableShadowsConstant(t *testing.T) {
	got, err := Evaluate("e * 2", Vars{"e": Number(1.6)})
	require.NoError(t, err)
	assert.InDelta(t, 3.2, got, 1e-12)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"dangling operator", "m *"},
		{"unclosed paren", "(1 + 2"},
		{"stray paren", "1 + 2)"},
		{"adjacent numbers", "1 2"},
		{"statement separator", "m; drop"},
		{"unknown function", "alert(1)"},
		{"property access", "m.constructor"},
		{"wrong arity", "sqrt(1, 2)"},
		{"empty variadic", "max()"},
		{"assignment", "m = 3"},
		{"string literal", `"m"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			require.Error(t, err)
			var ferr *Error
			assert.True(t, errors.As(err, &ferr), "want *formula.Error, got %T", err)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	vars := Vars{
		"m":   Number(2),
		"dir": Label("north"),
	}

	tests := []struct {
		name     string
		expr     string
		sentinel error
	}{
		{"missing variable", "x + 1", ErrUnknownVariable},
		{"categorical operand", "dir * 2", ErrNotNumeric},
		{"division by zero", "m / (m - 2)", ErrDivisionByZero},
		{"overflow", "10 ^ 400", ErrNotFinite},
		{"negative sqrt", "sqrt(-m)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr, vars)
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestExpr_Vars(t *testing.T) {
	expr, err := Parse("0.5 * m * v * v + sqrt(k) * pi")
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "m", "pi", "v"}, expr.Vars())
	assert.Equal(t, "0.5 * m * v * v + sqrt(k) * pi", expr.String())
}

func TestValue_Display(t *testing.T) {
	assert.Equal(t, "5", Number(5).Display())
	assert.Equal(t, "0.25", Number(0.25).Display())
	assert.Equal(t, "north", Label("north").Display())
}

func TestEvaluator_FallsBackToZero(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ev := NewEvaluator(zap.New(core))

	got := ev.Eval("m *", Vars{"m": Number(5)})
	assert.Equal(t, 0.0, got)

	got = ev.Eval("m * q", Vars{"m": Number(5)})
	assert.Equal(t, 0.0, got)

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "formula evaluation failed, using 0", entry.Message)
	assert.Equal(t, "m *", entry.ContextMap()["expression"])
}

func TestEvaluator_Success(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ev := NewEvaluator(zap.New(core))

	assert.Equal(t, 10.0, ev.Eval("m * 2", Vars{"m": Number(5)}))
	// Second call goes through the parse cache.
	assert.Equal(t, 14.0, ev.Eval("m * 2", Vars{"m": Number(7)}))
	assert.Equal(t, 0, logs.Len())
}

func TestNewEvaluator_NilLogger(t *testing.T) {
	ev := NewEvaluator(nil)
	assert.Equal(t, 0.0, ev.Eval("(", nil))
}
