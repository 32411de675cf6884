package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/types"
	"github.com/spf13/cobra"
)

// describe folds validation details into the error text for terminal output
func describe(err error) error {
	appErr := errors.ToAppError(err)
	if appErr == nil || len(appErr.Fields) == 0 {
		return err
	}

	parts := make([]string, 0, len(appErr.Fields))
	for _, k := range slices.Sorted(maps.Keys(appErr.Fields)) {
		parts = append(parts, k+": "+appErr.Fields[k])
	}
	return fmt.Errorf("%w (%s)", err, strings.Join(parts, "; "))
}

func requireFile(cmd *cobra.Command, file *string) {
	cmd.Flags().StringVarP(file, "file", "f", "", "Input JSON or YAML file, - for stdin (required)")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
}

func newFrameworksCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List supported frameworks and their question requirements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := make([]map[string]any, 0, len(scoring.Frameworks))
			for _, f := range scoring.Frameworks {
				def, _ := scoring.DefinitionFor(f)
				out = append(out, map[string]any{
					"framework":     f,
					"name":          def.DisplayName,
					"dimensions":    def.Dimensions,
					"min_questions": def.MinQuestions,
				})
			}
			return writeOutput(cmd.OutOrStdout(), opts.out, out)
		},
	}
}

func newScoreCmd(opts *globalOptions) *cobra.Command {
	var file, framework string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one framework's answers",
		Long:  "Reads a map of question id to answer and prints the framework result.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := types.ScoreRequest{Framework: scoring.Framework(framework)}
			if err := readInput(file, cmd.InOrStdin(), &req.Answers); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			res, err := analyzer.Score(req.Framework, req.Answers)
			if err != nil {
				return describe(err)
			}
			return writeOutput(cmd.OutOrStdout(), opts.out, res)
		},
	}
	requireFile(cmd, &file)
	cmd.Flags().StringVar(&framework, "framework", "", "Framework to score (required)")
	if err := cmd.MarkFlagRequired("framework"); err != nil {
		panic(fmt.Sprintf("failed to mark framework flag as required: %v", err))
	}
	return cmd
}

func newSynthesizeCmd(opts *globalOptions) *cobra.Command {
	var (
		file    string
		subject string
		persist bool
	)

	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Build a unified profile from one subject's assessments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.SynthesizeRequest
			if err := readInput(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			if subject != "" {
				req.SubjectID = subject
			}
			req.Persist = req.Persist || persist
			if req.Persist && opts.dataDir == "" {
				return fmt.Errorf("--persist requires --data-dir")
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			resp, err := analyzer.Synthesize(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			return writeOutput(cmd.OutOrStdout(), opts.out, resp)
		},
	}
	requireFile(cmd, &file)
	cmd.Flags().StringVar(&subject, "subject", "", "Subject id, overrides the file's subject_id")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store the answers and profile")
	return cmd
}

func newCompatCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Score the compatibility of two profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.CompatibilityRequest
			if err := readInput(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			return writeOutput(cmd.OutOrStdout(), opts.out, analyzer.Compatibility(*req.A, *req.B))
		},
	}
	requireFile(cmd, &file)
	return cmd
}

func newOptimizeCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Analyze a roster of synthesized profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.TeamOptimizeRequest
			if err := readInput(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			return writeOutput(cmd.OutOrStdout(), opts.out, analyzer.Optimize(req))
		},
	}
	requireFile(cmd, &file)
	return cmd
}

func newPredictCmd(opts *globalOptions) *cobra.Command {
	var file, predictionType string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast team outcomes from member data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.PredictRequest
			if err := readInput(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			if predictionType != "" {
				req.PredictionType = predictionType
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			return writeOutput(cmd.OutOrStdout(), opts.out, analyzer.Predict(req))
		},
	}
	requireFile(cmd, &file)
	cmd.Flags().StringVar(&predictionType, "type", "", "Prediction type (all, performance, conflict, satisfaction, velocity)")
	return cmd
}

func newTeamCmd(opts *globalOptions) *cobra.Command {
	var (
		file    string
		persist bool
	)

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Run the full team analysis from raw member assessments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.TeamAnalyzeRequest
			if err := readInput(file, cmd.InOrStdin(), &req); err != nil {
				return err
			}
			req.Persist = req.Persist || persist
			if req.Persist && opts.dataDir == "" {
				return fmt.Errorf("--persist requires --data-dir")
			}
			if err := req.Validate(); err != nil {
				return describe(err)
			}

			analyzer, done, err := opts.newAnalyzer()
			if err != nil {
				return err
			}
			defer done()

			resp, err := analyzer.AnalyzeTeam(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			return writeOutput(cmd.OutOrStdout(), opts.out, resp)
		},
	}
	requireFile(cmd, &file)
	cmd.Flags().BoolVar(&persist, "persist", false, "Store member answers, profiles, the report and predictions")
	return cmd
}
