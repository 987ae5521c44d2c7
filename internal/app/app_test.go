package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/problemgen"
	"github.com/abhisek/physiz/internal/screens/arena"
	"github.com/abhisek/physiz/internal/screens/home"
	"github.com/abhisek/physiz/internal/screens/book"
	"github.com/abhisek/physiz/internal/screens/welcome"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/textbook"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	book, err := textbook.Default()
	require.NoError(t, err)
	gen := problemgen.New(problemgen.NewRand(1), nil, problemgen.DefaultConfig())
	return Options{
		Arena:   session.NewArena(cat, gen, problemgen.NewRand(2), session.DefaultConfig(), nil),
		Catalog: cat,
		Book:    book,
	}
}

// update applies msg and runs any router navigation it produces.
func update(m AppModel, msg tea.Msg) AppModel {
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd != nil {
		if nav := cmd(); nav != nil {
			next, _ = m.Update(nav)
			m = next.(AppModel)
		}
	}
	return m
}

func TestNewAppModel_Welcome(t *testing.T) {
	m := newAppModel(testOptions(t))
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestNewAppModel_SkipWelcome(t *testing.T) {
	opts := testOptions(t)
	opts.SkipWelcome = true
	m := newAppModel(opts)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestNewAppModel_DeepLinks(t *testing.T) {
	opts := testOptions(t)
	opts.Section = "kinematics"
	m := newAppModel(opts)
	assert.IsType(t, &book.ReaderScreen{}, m.router.Active())
	assert.Equal(t, 2, m.router.Depth())

	opts = testOptions(t)
	opts.Topic = "kinematics"
	m = newAppModel(opts)
	assert.IsType(t, &arena.TopicSelectScreen{}, m.router.Active())
	assert.NotNil(t, m.Init())
}

func TestEscape_PopsToHome(t *testing.T) {
	opts := testOptions(t)
	opts.StartArena = true
	m := newAppModel(opts)
	require.Equal(t, 2, m.router.Depth())

	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())

	// Esc on the root does nothing.
	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscape_ForwardedToOverlay(t *testing.T) {
	opts := testOptions(t)
	opts.Section = "kinematics"
	m := newAppModel(opts)

	m = update(m, tea.KeyPressMsg{Code: 'd', Text: "d"})
	reader := m.router.Active().(*book.ReaderScreen)
	require.True(t, reader.HandlesEscape())

	// The first Esc closes the overlay, the second leaves the reader.
	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 2, m.router.Depth())
	assert.False(t, reader.HandlesEscape())

	m = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestRun_RequiresDeps(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
