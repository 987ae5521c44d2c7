package problemgen

import (
	"math"
	"testing"

	"github.com/abhisek/physiz/internal/catalog"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
		Retryable: true,
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Validators) != 2 {
		t.Fatalf("expected 2 validators, got %d", len(cfg.Validators))
	}
	names := []string{"structural", "options"}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultTolerance != 0.1 {
		t.Errorf("expected DefaultTolerance 0.1, got %f", cfg.DefaultTolerance)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("expected MaxAttempts 3, got %d", cfg.MaxAttempts)
	}
}

func validNumeric() *Question {
	return &Question{
		Text:      "What is 2 + 2?",
		Type:      catalog.TypeNumeric,
		Answer:    Answer{Value: 4, Numeric: true},
		Tolerance: 0.1,
	}
}

func validMC() *Question {
	return &Question{
		Text: "Which is a vector?",
		Type: catalog.TypeMultipleChoice,
		Options: []AnswerOption{
			{Display: "speed"},
			{Display: "velocity", IsCorrect: true},
		},
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}

	tests := []struct {
		name   string
		modify func(q *Question)
		valid  bool
	}{
		{"valid numeric", func(q *Question) {}, true},
		{"empty text", func(q *Question) { q.Text = "  " }, false},
		{"unresolved placeholder", func(q *Question) { q.Text = "Mass {m}?" }, false},
		{"unknown type", func(q *Question) { q.Type = "essay" }, false},
		{"negative tolerance", func(q *Question) { q.Tolerance = -1 }, false},
		{"NaN tolerance", func(q *Question) { q.Tolerance = math.NaN() }, false},
		{"placeholder in option", func(q *Question) {
			q.Type = catalog.TypeMultipleChoice
			q.Options = []AnswerOption{{Display: "{F} N", IsCorrect: true}, {Display: "0 N"}}
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validNumeric()
			tc.modify(q)
			err := v.Validate(q, catalog.QuestionTemplate{})
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestOptionsValidator(t *testing.T) {
	v := &OptionsValidator{}

	tests := []struct {
		name      string
		q         func() *Question
		valid     bool
		retryable bool
	}{
		{"valid numeric", validNumeric, true, false},
		{"valid mc", validMC, true, false},
		{"numeric with options", func() *Question {
			q := validNumeric()
			q.Options = []AnswerOption{{Display: "4", IsCorrect: true}}
			return q
		}, false, false},
		{"numeric text answer", func() *Question {
			q := validNumeric()
			q.Answer = Answer{Text: "four"}
			return q
		}, false, false},
		{"numeric infinite answer", func() *Question {
			q := validNumeric()
			q.Answer.Value = math.Inf(1)
			return q
		}, false, false},
		{"mc single option", func() *Question {
			q := validMC()
			q.Options = q.Options[1:]
			return q
		}, false, false},
		{"mc no correct", func() *Question {
			q := validMC()
			q.Options[1].IsCorrect = false
			return q
		}, false, false},
		{"mc two correct", func() *Question {
			q := validMC()
			q.Options[0].IsCorrect = true
			return q
		}, false, false},
		{"mc duplicate display", func() *Question {
			q := validMC()
			q.Options[0].Display = "Velocity"
			return q
		}, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.q(), catalog.QuestionTemplate{})
			if tc.valid {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Retryable != tc.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tc.retryable)
			}
			if err.Advisory != tc.retryable {
				t.Errorf("Advisory = %v, want %v", err.Advisory, tc.retryable)
			}
		})
	}
}
