package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/physiz/internal/app"
	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/config"
	"github.com/abhisek/physiz/internal/formula"
	"github.com/abhisek/physiz/internal/logger"
	"github.com/abhisek/physiz/internal/problemgen"
	"github.com/abhisek/physiz/internal/session"
	"github.com/abhisek/physiz/internal/textbook"
)

// deps is everything a command needs, built in a fixed order by setup.
type deps struct {
	Config *config.Config
	Log    *zap.Logger
	Book   *textbook.Book
	Arena  *session.Arena

	// Catalog is nil when the catalog file could not be loaded; CatalogErr
	// says why. The arena still reports the failure on its own.
	Catalog    *catalog.Catalog
	CatalogErr error
}

// setup loads config, then the logger, the catalog and the textbook, and
// finally builds the arena. With tui set, terminal log sinks are muted.
func setup(cmd *cobra.Command, tui bool) (*deps, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.Catalog.Path = p
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if tui {
		log = logger.ForTUI(cfg.Log, log)
	}
	if cfg.File != "" {
		log.Debug("loaded config", zap.String("file", cfg.File))
	}

	src, cat, catErr := openCatalog(cfg.Catalog.Path)
	if src == nil {
		return nil, catErr
	}
	if catErr != nil {
		log.Warn("catalog unavailable", zap.String("path", cfg.Catalog.Path), zap.Error(catErr))
	} else {
		log.Debug("loaded catalog", zap.Int("topics", len(cat.Topics)), zap.String("path", cfg.Catalog.Path))
	}

	book, err := textbook.Default()
	if err != nil {
		return nil, err
	}

	genCfg := problemgen.DefaultConfig()
	genCfg.DefaultTolerance = cfg.Arena.DefaultTolerance
	gen := problemgen.New(problemgen.NewRand(cfg.Arena.Seed), formula.NewEvaluator(log), genCfg)

	sessCfg := session.DefaultConfig()
	sessCfg.QuestionsPerChallenge = cfg.Arena.Questions

	shuffleSeed := cfg.Arena.Seed
	if shuffleSeed != 0 {
		shuffleSeed++
	}
	arena := session.NewArena(src, gen, problemgen.NewRand(shuffleSeed), sessCfg, log)

	return &deps{Config: cfg, Log: log, Book: book, Arena: arena, Catalog: cat, CatalogErr: catErr}, nil
}

// openCatalog returns the source the arena reads from, plus the loaded
// catalog when it is available. A file catalog that fails to load is still
// returned as a source so its error surfaces where topics are listed.
func openCatalog(path string) (catalog.Source, *catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, nil, err
		}
		return cat, cat, nil
	}
	fs := catalog.NewFileSource(path)
	cat, err := fs.Catalog()
	return fs, cat, err
}

// requireCatalog is for commands that cannot run without questions.
func (d *deps) requireCatalog() (*catalog.Catalog, error) {
	if d.CatalogErr != nil {
		return nil, d.CatalogErr
	}
	return d.Catalog, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.NewFileSource(path).Catalog()
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	d, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = d.Log.Sync() }()

	opts.Arena = d.Arena
	opts.Catalog = d.Catalog
	opts.Book = d.Book
	opts.Log = d.Log
	if skip, _ := cmd.Flags().GetBool("no-splash"); skip {
		opts.SkipWelcome = true
	}

	if opts.Topic != "" && d.Catalog != nil {
		if _, ok := d.Catalog.Topic(opts.Topic); !ok {
			return fmt.Errorf("unknown topic %q (see physiz topics)", opts.Topic)
		}
	}
	if opts.Section != "" {
		if _, ok := d.Book.FindSection(opts.Section); !ok {
			return fmt.Errorf("unknown section %q", opts.Section)
		}
	}

	return app.Run(opts)
}
