package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/config"
	"github.com/abhisek/physiz/internal/formula"
	"github.com/abhisek/physiz/internal/logger"
	"github.com/abhisek/physiz/internal/problemgen"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [FILE]",
	Short: "Validate a catalog and trial-generate every template",
	Long: `Validate a catalog file: YAML structure, JSON schema, formulas,
placeholders and variable ranges. All problems are reported together.

Without FILE the configured catalog (or the embedded one) is checked.
Each template is then generated --samples times to catch templates that
only fail for some sampled values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogCheck,
}

func init() {
	catalogCheckCmd.Flags().Int("samples", 20, "Generation attempts per template")
	catalogCmd.AddCommand(catalogCheckCmd)
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	path := cfg.Catalog.Path
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		path = p
	}
	if len(args) == 1 {
		path = args[0]
	}

	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	samples, _ := cmd.Flags().GetInt("samples")
	genCfg := problemgen.DefaultConfig()
	genCfg.DefaultTolerance = cfg.Arena.DefaultTolerance
	gen := problemgen.New(problemgen.NewRand(cfg.Arena.Seed), formula.NewEvaluator(log), genCfg)

	out := cmd.OutOrStdout()
	name := path
	if name == "" {
		name = "embedded catalog"
	}
	fmt.Fprintf(out, "%s: valid, %d topics\n", name, len(cat.Topics))

	failures := checkTemplates(cat, gen, samples, func(topic string, t catalog.QuestionTemplate, ok, total int, lastErr error) {
		status := "ok"
		if ok < total {
			status = fmt.Sprintf("%d/%d failed: %v", total-ok, total, lastErr)
		}
		fmt.Fprintf(out, "  %-18s %-28s %s\n", topic, t.ID, status)
	})
	if failures > 0 {
		return fmt.Errorf("%d templates failed trial generation", failures)
	}
	return nil
}

// checkTemplates generates every template samples times and reports each
// result. It returns the number of templates with at least one failure.
func checkTemplates(cat *catalog.Catalog, gen problemgen.Generator, samples int, report func(topic string, t catalog.QuestionTemplate, ok, total int, lastErr error)) int {
	samples = max(samples, 1)
	failures := 0
	for _, topic := range cat.Topics {
		for _, t := range topic.Templates {
			ok := 0
			var lastErr error
			for range samples {
				if _, err := gen.Generate(t); err != nil {
					lastErr = err
					continue
				}
				ok++
			}
			if ok < samples {
				failures++
			}
			report(topic.ID, t, ok, samples, lastErr)
		}
	}
	return failures
}
