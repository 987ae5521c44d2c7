package catalog

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/physiz/internal/formula"
)

// Value is a sampled or authored variable value.
type Value = formula.Value

// QuestionType describes how the learner answers a question.
type QuestionType string

const (
	// TypeMultipleChoice means the learner picks one of the generated options.
	TypeMultipleChoice QuestionType = "multiple_choice"

	// TypeNumeric means the learner types a number, compared with a tolerance.
	TypeNumeric QuestionType = "numeric"
)

// Range is an evenly stepped numeric interval, both ends inclusive.
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Count returns the number of values the range can produce.
func (r Range) Count() int {
	if r.Step <= 0 || r.Max < r.Min {
		return 0
	}
	// Small epsilon so 0.1-stepped ranges don't lose their last value.
	return int((r.Max-r.Min)/r.Step+1e-9) + 1
}

// VariableSpec describes how a template variable is sampled. Exactly one
// of Values or Range is set.
type VariableSpec struct {
	Values []Value
	Range  *Range
}

// UnmarshalYAML accepts either a sequence of scalars (a discrete set) or
// a {min, max, step} mapping.
func (s *VariableSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		s.Values = make([]Value, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return err
			}
			s.Values = append(s.Values, v)
		}
		return nil
	case yaml.MappingNode:
		var r Range
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("line %d: decode range: %w", node.Line, err)
		}
		s.Range = &r
		return nil
	default:
		return fmt.Errorf("line %d: variable must be a list of values or a {min, max, step} range", node.Line)
	}
}

// decodeValue keeps quoted scalars categorical: "5" is a label, 5 is a number.
func decodeValue(node *yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("line %d: variable values must be scalars", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: invalid number %q: %w", node.Line, node.Value, err)
		}
		return formula.Number(f), nil
	default:
		return formula.Label(node.Value), nil
	}
}

// QuestionTemplate is an authored question blueprint.
type QuestionTemplate struct {
	ID    string       `yaml:"id"`
	Level int          `yaml:"level"`
	Type  QuestionType `yaml:"type"`
	Unit  string       `yaml:"unit"`

	// Text contains {name} placeholders for the variables below.
	Text      string                  `yaml:"text"`
	Variables map[string]VariableSpec `yaml:"variables"`

	// Exactly one of FixedAnswer and AnswerFormula is set.
	FixedAnswer   *string `yaml:"fixedAnswer"`
	AnswerFormula string  `yaml:"answerFormula"`

	// Distractors, multiple choice only.
	WrongFormulas []string `yaml:"wrongFormulas"`
	WrongAnswers  []string `yaml:"wrongAnswers"`

	// Tolerance is nil when the template relies on the generator default.
	Tolerance *float64 `yaml:"tolerance"`

	Hint            string `yaml:"hint"`
	TrapExplanation string `yaml:"trapExplanation"`

	// Topic is filled in from the enclosing topic while loading.
	Topic string `yaml:"-"`
}

// Topic groups the templates a challenge draws from.
type Topic struct {
	ID        string             `yaml:"id"`
	Title     string             `yaml:"title"`
	Templates []QuestionTemplate `yaml:"templates"`
}

// TierDisplay is the report-card presentation of a tier.
type TierDisplay struct {
	Icon   string   `yaml:"icon"`
	Title  string   `yaml:"title"`
	Quotes []string `yaml:"quotes"`
}

// Catalog is the full set of question templates plus report strings.
type Catalog struct {
	Version int                    `yaml:"version"`
	Topics  []Topic                `yaml:"topics"`
	Report  map[string]TierDisplay `yaml:"report"`
}

// Tier keys, best first.
const (
	TierKeyMonster    = "monster"
	TierKeyAdept      = "adept"
	TierKeyApprentice = "apprentice"
	TierKeyNovice     = "novice"
	TierKeyFledgling  = "fledgling"
)

// TierKeys lists every tier key, best first.
func TierKeys() []string {
	return []string{TierKeyMonster, TierKeyAdept, TierKeyApprentice, TierKeyNovice, TierKeyFledgling}
}

var defaultTierDisplays = map[string]TierDisplay{
	TierKeyMonster:    {Icon: "👹", Title: "Physics Monster", Quotes: []string{"Newton would be nervous."}},
	TierKeyAdept:      {Icon: "🧪", Title: "Lab Adept", Quotes: []string{"One slip away from monster status."}},
	TierKeyApprentice: {Icon: "🔭", Title: "Apprentice", Quotes: []string{"The forces are with you, mostly."}},
	TierKeyNovice:     {Icon: "📐", Title: "Novice", Quotes: []string{"Inertia is strong in this one."}},
	TierKeyFledgling:  {Icon: "🥚", Title: "Fledgling", Quotes: []string{"Every monster starts as an egg."}},
}

// Tier returns the display for a tier key. Keys the catalog doesn't
// override use built-in defaults; unknown keys report false.
func (c *Catalog) Tier(key string) (TierDisplay, bool) {
	if c != nil {
		if d, ok := c.Report[key]; ok {
			return d, true
		}
	}
	d, ok := defaultTierDisplays[key]
	return d, ok
}

// Topic returns the topic with the given ID.
func (c *Catalog) Topic(id string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
