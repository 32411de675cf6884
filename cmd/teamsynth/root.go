package main

import (
	"github.com/ZanzyTHEbar/teamsynth/internal/analysis"
	"github.com/ZanzyTHEbar/teamsynth/internal/database"
	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	dataDir    string
	mappingDir string
	logLevel   string
	out        string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "teamsynth",
		Short:         "Personality synthesis and team compatibility engine",
		Long:          "teamsynth scores personality assessments, synthesizes unified profiles and analyzes team compatibility from JSON or YAML input files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "Store inputs and results in the SQLite database under this directory")
	flags.StringVar(&opts.mappingDir, "mappings", "", "Directory of question-to-dimension mapping files")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.out, "out", "o", "", "Write the JSON result to this file instead of stdout")

	cmd.AddCommand(
		newFrameworksCmd(opts),
		newScoreCmd(opts),
		newSynthesizeCmd(opts),
		newCompatCmd(opts),
		newOptimizeCmd(opts),
		newPredictCmd(opts),
		newTeamCmd(opts),
	)
	return cmd
}

// newAnalyzer builds the pipeline for one invocation. The returned func
// releases the database when persistence is enabled.
func (o *globalOptions) newAnalyzer() (*analysis.Analyzer, func(), error) {
	logger := monitoring.NewLogger(o.logLevel)

	registry := scoring.DefaultRegistry()
	if o.mappingDir != "" {
		var err error
		registry, err = scoring.NewRegistryFromStore(scoring.NewMappingStore(o.mappingDir))
		if err != nil {
			return nil, nil, err
		}
	}

	opts := analysis.Options{
		Registry: registry,
		Metrics:  monitoring.NewMetrics(),
		Logger:   logger,
	}
	closeFn := func() {}

	if o.dataDir != "" {
		db, err := database.NewDB(o.dataDir)
		if err != nil {
			return nil, nil, err
		}
		opts.Store = database.NewRepository(db)
		closeFn = func() { _ = db.Close() }
	}

	return analysis.NewAnalyzer(opts), closeFn, nil
}
