package problemgen

// Config controls the behavior of the TemplateGenerator.
type Config struct {
	// DefaultTolerance applies to templates that don't set their own.
	// It is the only tolerance default: every generated question
	// carries an explicit tolerance.
	DefaultTolerance float64

	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first hard failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how often a template is resampled after a
	// retryable or advisory validation failure (e.g. two options that
	// render alike). An advisory question from the last attempts is kept.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTolerance: 0.1,
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxAttempts: 3,
	}
}
