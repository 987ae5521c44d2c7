package formula

import (
	"sync"

	"go.uber.org/zap"
)

// Evaluator evaluates author-supplied expressions without ever failing.
// A broken expression costs one value, not the challenge: errors are
// logged and the result falls back to 0.
type Evaluator struct {
	log   *zap.Logger
	cache sync.Map // map[string]*Expr
}

// NewEvaluator creates an Evaluator. A nil logger discards reports.
func NewEvaluator(log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{log: log.Named("formula")}
}

// Eval returns the value of src under vars, or 0 if it cannot be computed.
func (ev *Evaluator) Eval(src string, vars Vars) float64 {
	v, err := ev.TryEval(src, vars)
	if err != nil {
		ev.log.Warn("formula evaluation failed, using 0",
			zap.String("expression", src),
			zap.Error(err),
		)
		return 0
	}
	return v
}

// TryEval is Eval without the fallback.
func (ev *Evaluator) TryEval(src string, vars Vars) (float64, error) {
	expr, err := ev.parse(src)
	if err != nil {
		return 0, err
	}
	return expr.Eval(vars)
}

func (ev *Evaluator) parse(src string) (*Expr, error) {
	if cached, ok := ev.cache.Load(src); ok {
		return cached.(*Expr), nil
	}
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ev.cache.Store(src, expr)
	return expr, nil
}
