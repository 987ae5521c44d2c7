package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/physiz/internal/formula"
)

const minimalCatalog = `
version: 1
topics:
  - id: dynamics
    title: Dynamics
    templates:
      - id: force
        level: 1
        type: numeric
        unit: N
        text: "Force on {m} kg at {a} m/s²?"
        variables:
          m: {min: 1, max: 10, step: 1}
          a: [2, 4]
        answerFormula: m * a
      - id: third-law
        level: 1
        type: multiple_choice
        text: "Who pushes back on the {thing}?"
        variables:
          thing: [wall, floor]
        fixedAnswer: "the {thing}"
        wrongAnswers: ["nobody", "gravity"]
`

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Topics)

	ids := make(map[string]bool)
	for _, topic := range c.Topics {
		assert.NotEmpty(t, topic.Templates, "topic %q has no templates", topic.ID)
		for _, tpl := range topic.Templates {
			assert.Equal(t, topic.ID, tpl.Topic)
			assert.False(t, ids[tpl.ID], "duplicate template %q", tpl.ID)
			ids[tpl.ID] = true
		}
	}

	for _, key := range TierKeys() {
		d, ok := c.Tier(key)
		assert.True(t, ok, key)
		assert.NotEmpty(t, d.Title, key)
		assert.NotEmpty(t, d.Quotes, key)
	}
}

func TestParse_VariableSpecs(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)

	tpl := c.Topics[0].Templates[0]
	require.NotNil(t, tpl.Variables["m"].Range)
	assert.Equal(t, Range{Min: 1, Max: 10, Step: 1}, *tpl.Variables["m"].Range)
	assert.Equal(t, []Value{formula.Number(2), formula.Number(4)}, tpl.Variables["a"].Values)

	mc := c.Topics[0].Templates[1]
	assert.Equal(t, TypeMultipleChoice, mc.Type)
	assert.Equal(t, []Value{formula.Label("wall"), formula.Label("floor")}, mc.Variables["thing"].Values)
	require.NotNil(t, mc.FixedAnswer)
	assert.Equal(t, "the {thing}", *mc.FixedAnswer)
	assert.Equal(t, "dynamics", mc.Topic)
}

func TestParse_QuotedNumberIsCategorical(t *testing.T) {
	doc := `
version: 1
topics:
  - id: t
    title: T
    templates:
      - id: x
        level: 1
        type: multiple_choice
        text: "Pick {n}"
        variables:
          n: ["5", 6]
        fixedAnswer: "{n}"
        wrongAnswers: ["none"]
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)
	vals := c.Topics[0].Templates[0].Variables["n"].Values
	assert.False(t, vals[0].Numeric)
	assert.True(t, vals[1].Numeric)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "empty",
			doc:     "",
			wantErr: "catalog is empty",
		},
		{
			name:    "unknown field",
			doc:     "version: 1\ntopics: []\ncolour: blue\n",
			wantErr: "decode catalog",
		},
		{
			name:    "two documents",
			doc:     "version: 1\ntopics: []\n---\nversion: 2\ntopics: []\n",
			wantErr: "single YAML document",
		},
		{
			name:    "schema: bad type enum",
			doc:     templateDoc("type: essay\n        fixedAnswer: x"),
			wantErr: "schema validation failed",
		},
		{
			name:    "schema: zero step",
			doc:     templateDoc("type: numeric\n        answerFormula: m\n        variables:\n          m: {min: 1, max: 2, step: 0}"),
			wantErr: "schema validation failed",
		},
		{
			name:    "both answers",
			doc:     templateDoc("type: numeric\n        fixedAnswer: \"3\"\n        answerFormula: \"3\""),
			wantErr: "exactly one of fixedAnswer and answerFormula",
		},
		{
			name:    "no answer",
			doc:     templateDoc("type: numeric"),
			wantErr: "exactly one of fixedAnswer and answerFormula",
		},
		{
			name:    "mc without distractors",
			doc:     templateDoc("type: multiple_choice\n        fixedAnswer: yes"),
			wantErr: "needs wrongFormulas or wrongAnswers",
		},
		{
			name:    "numeric with distractors",
			doc:     templateDoc("type: numeric\n        answerFormula: \"2\"\n        wrongFormulas: [\"3\"]"),
			wantErr: "numeric questions take no distractors",
		},
		{
			name:    "numeric fixed answer not a number",
			doc:     templateDoc("type: numeric\n        fixedAnswer: lots"),
			wantErr: "is not a number",
		},
		{
			name:    "undeclared placeholder",
			doc:     templateDoc("type: numeric\n        answerFormula: \"2\"", "Mass {mass}?"),
			wantErr: "text references undeclared variable {mass}",
		},
		{
			name:    "formula uses undeclared variable",
			doc:     templateDoc("type: numeric\n        answerFormula: m * g"),
			wantErr: "answerFormula references undeclared variable \"m\"",
		},
		{
			name:    "formula does not parse",
			doc:     templateDoc("type: numeric\n        answerFormula: \"2 *\""),
			wantErr: "answerFormula",
		},
		{
			name:    "max below min",
			doc:     templateDoc("type: numeric\n        answerFormula: m\n        variables:\n          m: {min: 5, max: 1, step: 1}"),
			wantErr: "max 1 is below min 5",
		},
		{
			name:    "unknown tier key",
			doc:     "version: 1\ntopics: []\nreport:\n  legend:\n    title: Legend\n",
			wantErr: "unknown tier \"legend\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// templateDoc wraps a single template body. An optional second argument
// replaces the question text.
func templateDoc(body string, text ...string) string {
	q := "Question?"
	if len(text) > 0 {
		q = text[0]
	}
	return "version: 1\ntopics:\n  - id: t\n    title: T\n    templates:\n      - id: x\n        level: 1\n        text: \"" + q + "\"\n        " + body + "\n"
}

func TestValidate_AggregatesProblems(t *testing.T) {
	c := &Catalog{
		Version: 1,
		Topics: []Topic{
			{ID: "a", Templates: []QuestionTemplate{
				{ID: "dup", Level: 0, Type: TypeNumeric, Text: "x", AnswerFormula: "1"},
			}},
			{ID: "a", Templates: []QuestionTemplate{
				{ID: "dup", Level: 1, Type: TypeNumeric, Text: "x", AnswerFormula: "1"},
			}},
		},
	}

	err := Validate(c)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), `duplicate topic ID: "a"`)
	assert.Contains(t, err.Error(), `duplicate template ID "dup"`)
	assert.Contains(t, err.Error(), "level must be >= 1")
}

func TestRange_Count(t *testing.T) {
	assert.Equal(t, 10, Range{Min: 1, Max: 10, Step: 1}.Count())
	assert.Equal(t, 11, Range{Min: 0, Max: 1, Step: 0.1}.Count())
	assert.Equal(t, 3, Range{Min: 0, Max: 5, Step: 2}.Count())
	assert.Equal(t, 1, Range{Min: 4, Max: 4, Step: 1}.Count())
	assert.Equal(t, 0, Range{Min: 4, Max: 1, Step: 1}.Count())
	assert.Equal(t, 0, Range{Min: 1, Max: 4, Step: 0}.Count())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"m", "v"}, Placeholders("{m} kg at {v} m/s, {m} again"))
	assert.Empty(t, Placeholders("no placeholders, {} or { x }"))
	assert.True(t, HasPlaceholders("left {over}"))
	assert.False(t, HasPlaceholders("clean"))
}

func TestSubstitute(t *testing.T) {
	vars := formula.Vars{"m": formula.Number(5), "dir": formula.Label("north")}
	assert.Equal(t, "5 kg heading north, 5 again", Substitute("{m} kg heading {dir}, {m} again", vars))
	assert.Equal(t, "{q} stays", Substitute("{q} stays", vars))
}

func TestCatalog_Source(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)
	ctx := context.Background()

	tpls, err := c.Templates(ctx, "dynamics")
	require.NoError(t, err)
	assert.Len(t, tpls, 2)

	tpls, err = c.Templates(ctx, "quantum")
	require.NoError(t, err)
	assert.Empty(t, tpls)

	topics, err := c.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Dynamics", topics[0].Title)
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()

	t.Run("loads lazily", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		src := NewFileSource(path)

		// Written after construction: nothing is read until first use.
		require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o644))

		tpls, err := src.Templates(ctx, "dynamics")
		require.NoError(t, err)
		assert.Len(t, tpls, 2)
	})

	t.Run("missing file is unavailable", func(t *testing.T) {
		src := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := src.Templates(ctx, "dynamics")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, os.ErrNotExist)

		_, err = src.ListTopics(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("invalid file is unavailable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\ntopics: nope\n"), 0o644))
		_, err := NewFileSource(path).Templates(ctx, "dynamics")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestCatalog_Tier(t *testing.T) {
	c := &Catalog{Report: map[string]TierDisplay{
		TierKeyMonster: {Icon: "M", Title: "Custom"},
	}}

	d, ok := c.Tier(TierKeyMonster)
	require.True(t, ok)
	assert.Equal(t, "Custom", d.Title)

	d, ok = c.Tier(TierKeyNovice)
	require.True(t, ok)
	assert.Equal(t, "Novice", d.Title)

	_, ok = c.Tier("legend")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Tier(TierKeyAdept)
	assert.True(t, ok)
}
