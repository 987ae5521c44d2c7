package textbook

// Topic is one unit of the book, e.g. Classical Mechanics.
type Topic struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Section is a single readable page. Content is Markdown.
type Section struct {
	ID          string               `yaml:"id"`
	Title       string               `yaml:"title"`
	Content     string               `yaml:"content"`
	Questions   []ConceptualQuestion `yaml:"questions,omitempty"`
	Derivations []string             `yaml:"derivations,omitempty"`
	Quiz        string               `yaml:"quiz,omitempty"` // quiz arena topic ID

	// Topic is set on load to the owning topic ID.
	Topic string `yaml:"-"`
}

// ConceptualQuestion is a prompt for reflection, not a scored question.
type ConceptualQuestion struct {
	Text string `yaml:"text"`
	Hint string `yaml:"hint,omitempty"`
}

// Derivation walks from a definition to a result in ordered steps.
type Derivation struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Intro string `yaml:"intro,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Step is one titled step of a derivation.
type Step struct {
	Title    string `yaml:"title"`
	Text     string `yaml:"text"`
	Equation string `yaml:"equation,omitempty"`
}

type document struct {
	Topics      []Topic      `yaml:"topics"`
	Derivations []Derivation `yaml:"derivations"`
}
