package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnavailable is returned when a source's backing data cannot be read.
// Callers treat the topic as having no templates.
var ErrUnavailable = errors.New("template catalog unavailable")

// Source provides question templates grouped by topic.
type Source interface {
	// Templates returns the templates registered for a topic. An unknown
	// topic yields an empty result and no error.
	Templates(ctx context.Context, topicID string) ([]QuestionTemplate, error)

	// ListTopics lists every topic in catalog order.
	ListTopics(ctx context.Context) ([]Topic, error)
}

var _ Source = (*Catalog)(nil)

// Templates implements Source.
func (c *Catalog) Templates(_ context.Context, topicID string) ([]QuestionTemplate, error) {
	t, ok := c.Topic(topicID)
	if !ok {
		return nil, nil
	}
	return slices.Clone(t.Templates), nil
}

// ListTopics implements Source.
func (c *Catalog) ListTopics(_ context.Context) ([]Topic, error) {
	return slices.Clone(c.Topics), nil
}

// FileSource reads a catalog file on first use.
type FileSource struct {
	Path string

	once    sync.Once
	catalog *Catalog
	err     error
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Catalog returns the loaded catalog, loading it if needed.
func (s *FileSource) Catalog() (*Catalog, error) {
	s.once.Do(func() {
		c, err := Load(s.Path)
		if err != nil {
			s.err = fmt.Errorf("%w: %w", ErrUnavailable, err)
			return
		}
		s.catalog = c
	})
	return s.catalog, s.err
}

// Templates implements Source.
func (s *FileSource) Templates(ctx context.Context, topicID string) ([]QuestionTemplate, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.Templates(ctx, topicID)
}

// ListTopics implements Source.
func (s *FileSource) ListTopics(ctx context.Context) ([]Topic, error) {
	c, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return c.ListTopics(ctx)
}
