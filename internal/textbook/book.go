package textbook

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed textbook.yaml
var defaultBook []byte

// Book holds the textbook content with lookup indices built on load.
type Book struct {
	topics      []Topic
	derivations []Derivation

	sectionByID    map[string]*Section
	derivationByID map[string]*Derivation
	order          []string // section IDs in reading order
}

// Default parses the textbook shipped with the binary.
func Default() (*Book, error) {
	b, err := Load(defaultBook)
	if err != nil {
		return nil, fmt.Errorf("default textbook: %w", err)
	}
	return b, nil
}

// Load decodes and validates a textbook document.
func Load(data []byte) (*Book, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("textbook is empty")
		}
		return nil, fmt.Errorf("decode textbook: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return build(doc), nil
}

func build(doc document) *Book {
	b := &Book{
		topics:         doc.Topics,
		derivations:    doc.Derivations,
		sectionByID:    make(map[string]*Section),
		derivationByID: make(map[string]*Derivation, len(doc.Derivations)),
	}
	for i := range b.topics {
		for j := range b.topics[i].Sections {
			s := &b.topics[i].Sections[j]
			s.Topic = b.topics[i].ID
			b.sectionByID[s.ID] = s
			b.order = append(b.order, s.ID)
		}
	}
	for i := range b.derivations {
		b.derivationByID[b.derivations[i].Key] = &b.derivations[i]
	}
	return b
}

// Topics returns all topics in book order.
func (b *Book) Topics() []Topic {
	return slices.Clone(b.topics)
}

// FindSection returns the section with the given ID.
func (b *Book) FindSection(id string) (Section, bool) {
	s, ok := b.sectionByID[id]
	if !ok {
		return Section{}, false
	}
	return *s, true
}

// Derivation returns the derivation with the given key.
func (b *Book) Derivation(key string) (Derivation, bool) {
	d, ok := b.derivationByID[key]
	if !ok {
		return Derivation{}, false
	}
	return *d, true
}

// Derivations returns all derivations in document order.
func (b *Book) Derivations() []Derivation {
	return slices.Clone(b.derivations)
}

// SectionDerivations resolves the derivations a section links to.
func (b *Book) SectionDerivations(id string) []Derivation {
	s, ok := b.sectionByID[id]
	if !ok {
		return nil
	}
	result := make([]Derivation, 0, len(s.Derivations))
	for _, key := range s.Derivations {
		if d, ok := b.derivationByID[key]; ok {
			result = append(result, *d)
		}
	}
	return result
}

// SectionQuiz returns the quiz arena topic practising a section.
func (b *Book) SectionQuiz(id string) (string, bool) {
	s, ok := b.sectionByID[id]
	if !ok || s.Quiz == "" {
		return "", false
	}
	return s.Quiz, true
}

// Next returns the section after id in reading order.
func (b *Book) Next(id string) (Section, bool) {
	return b.step(id, 1)
}

// Prev returns the section before id in reading order.
func (b *Book) Prev(id string) (Section, bool) {
	return b.step(id, -1)
}

func (b *Book) step(id string, delta int) (Section, bool) {
	i := slices.Index(b.order, id)
	if i < 0 {
		return Section{}, false
	}
	j := i + delta
	if j < 0 || j >= len(b.order) {
		return Section{}, false
	}
	return *b.sectionByID[b.order[j]], true
}

// QuizTopics returns every distinct quiz topic referenced by a section.
func (b *Book) QuizTopics() []string {
	var ids []string
	for _, id := range b.order {
		q := b.sectionByID[id].Quiz
		if q != "" && !slices.Contains(ids, q) {
			ids = append(ids, q)
		}
	}
	return ids
}
