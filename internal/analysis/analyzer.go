// Package analysis wires the scoring, synthesis, compatibility, team and
// prediction engines into the request-level pipeline used by the API and CLI.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/teamsynth/internal/compatibility"
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/monitoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/predict"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/ZanzyTHEbar/teamsynth/internal/team"
	"github.com/ZanzyTHEbar/teamsynth/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 8

	// unsupportedLabel is the metric label for frameworks the registry does not serve.
	unsupportedLabel = "unsupported"
)

func errNoStore() error {
	return errors.NewConfigurationError("persistence is not configured", nil)
}

// Store persists analysis inputs and outputs.
type Store interface {
	SaveAssessment(ctx context.Context, subjectID string, framework scoring.Framework, answers scoring.AnswerSet) (string, error)
	LatestAssessments(ctx context.Context, subjectID string) (map[scoring.Framework]scoring.AnswerSet, error)
	SaveProfile(ctx context.Context, subjectID string, p synthesis.Profile, fallback bool) (string, error)
	SaveTeamReport(ctx context.Context, teamID string, memberIDs []string, report team.Report, fallback bool) (string, error)
	SavePredictions(ctx context.Context, teamID string, predictions []predict.Prediction, fallback bool) (string, error)
}

// Options configures an Analyzer. Zero values get working defaults; a nil
// Store disables persistence.
type Options struct {
	Registry *scoring.Registry
	Store    Store
	Metrics  *monitoring.Metrics
	Logger   *monitoring.Logger
	Workers  int
}

// Analyzer orchestrates the full analysis pipeline
type Analyzer struct {
	registry    *scoring.Registry
	synthesizer *synthesis.Synthesizer
	calculator  *compatibility.Calculator
	optimizer   *team.Optimizer
	analytics   *predict.Analytics
	store       Store
	metrics     *monitoring.Metrics
	logger      *monitoring.Logger
	workers     int
}

// NewAnalyzer creates a new analyzer with all components
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Registry == nil {
		opts.Registry = scoring.DefaultRegistry()
	}
	if opts.Metrics == nil {
		opts.Metrics = monitoring.NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = monitoring.NewLogger("info")
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	calc := compatibility.NewCalculator(opts.Logger.Logger)

	return &Analyzer{
		registry:    opts.Registry,
		synthesizer: synthesis.NewSynthesizer(opts.Logger.Logger),
		calculator:  calc,
		optimizer:   team.NewOptimizer(calc, opts.Logger.Logger),
		analytics:   predict.NewAnalytics(opts.Logger.Logger),
		store:       opts.Store,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		workers:     opts.Workers,
	}
}

// Persistent reports whether a store is configured
func (a *Analyzer) Persistent() bool {
	return a.store != nil
}

// Score validates and scores one framework's answers
func (a *Analyzer) Score(framework scoring.Framework, answers scoring.AnswerSet) (*scoring.Result, error) {
	start := time.Now()
	res, err := a.registry.Score(framework, answers)
	a.recordScore(framework, res, err, time.Since(start))
	return res, err
}

func (a *Analyzer) recordScore(framework scoring.Framework, res *scoring.Result, err error, d time.Duration) {
	a.metrics.RecordAssessment(a.frameworkLabel(framework), err == nil)
	if err != nil {
		a.logger.Debug("Assessment rejected", "framework", framework, "error", err)
		return
	}
	a.logger.ScoringLogger(string(framework), res.Label, res.Confidence, res.AnsweredQuestions, res.TotalQuestions, d)
}

func (a *Analyzer) frameworkLabel(f scoring.Framework) string {
	if _, ok := a.registry.Get(f); ok {
		return string(f)
	}
	return unsupportedLabel
}

// scoreBundle scores every raw answer set, then overlays pre-scored results.
// Rejected frameworks are reported by name with the reason; a pre-scored
// result with an out-of-range dimension is rejected and never blended.
func (a *Analyzer) scoreBundle(raw map[scoring.Framework]scoring.AnswerSet, prescored map[scoring.Framework]*scoring.Result) (synthesis.Bundle, map[scoring.Framework]string) {
	rejected := make(map[scoring.Framework]string)
	known := make(map[scoring.Framework]scoring.AnswerSet, len(raw))
	for f, answers := range raw {
		if _, ok := a.registry.Get(f); !ok {
			rejected[f] = fmt.Sprintf("unsupported framework %q", f)
			a.metrics.RecordAssessment(unsupportedLabel, false)
			continue
		}
		known[f] = answers
	}

	start := time.Now()
	results, failures := a.registry.ScoreAll(known)
	elapsed := time.Since(start)

	for f, err := range failures {
		rejected[f] = err.Error()
		a.recordScore(f, nil, err, elapsed)
	}
	for f, res := range results {
		a.recordScore(f, res, nil, elapsed)
	}

	bundle := make(synthesis.Bundle, len(results)+len(prescored))
	for f, res := range results {
		bundle[f] = res
	}
	for f, res := range prescored {
		if res == nil {
			continue
		}
		if bad := res.OutOfRange(); len(bad) > 0 {
			rejected[f] = fmt.Sprintf("pre-scored dimensions outside [0,1]: %s", strings.Join(bad, ", "))
			continue
		}
		bundle[f] = res
	}
	return bundle, rejected
}

func (a *Analyzer) synthesize(subjectID string, bundle synthesis.Bundle) outcome.Outcome[synthesis.Profile] {
	start := time.Now()
	out := a.synthesizer.Synthesize(bundle)
	if out.Fallback {
		a.metrics.RecordFallback("synthesis")
		a.logger.FallbackLogger("synthesis", out.Reason)
	}
	a.logger.SynthesisLogger(subjectID, out.Value.FrameworksUsed, out.Value.Confidence, out.Fallback, time.Since(start))
	return out
}

// Synthesize scores the request's answer sets and builds the unified profile.
// Rejected frameworks are excluded from the bundle and listed in the response.
func (a *Analyzer) Synthesize(ctx context.Context, req types.SynthesizeRequest) (types.SynthesizeResponse, error) {
	bundle, rejected := a.scoreBundle(req.Assessments, req.Results)
	profile := a.synthesize(req.SubjectID, bundle)

	resp := types.SynthesizeResponse{
		SubjectID: req.SubjectID,
		Profile:   profile,
		Results:   bundle,
	}
	if len(rejected) > 0 {
		resp.Rejected = rejected
	}

	if req.Persist && a.store != nil {
		id, err := a.persistSubject(ctx, req.SubjectID, req.Assessments, rejected, profile)
		if err != nil {
			return resp, err
		}
		resp.ProfileID = id
	}
	return resp, nil
}

// SynthesizeStored rebuilds a subject's profile from the newest stored answer
// sets and stores the result.
func (a *Analyzer) SynthesizeStored(ctx context.Context, subjectID string) (types.SynthesizeResponse, error) {
	if a.store == nil {
		return types.SynthesizeResponse{}, errNoStore()
	}
	raw, err := a.store.LatestAssessments(ctx, subjectID)
	if err != nil {
		return types.SynthesizeResponse{}, err
	}

	bundle, rejected := a.scoreBundle(raw, nil)
	profile := a.synthesize(subjectID, bundle)

	id, err := a.store.SaveProfile(ctx, subjectID, profile.Value, profile.Fallback)
	if err != nil {
		return types.SynthesizeResponse{}, err
	}

	resp := types.SynthesizeResponse{
		SubjectID: subjectID,
		Profile:   profile,
		Results:   bundle,
		ProfileID: id,
	}
	if len(rejected) > 0 {
		resp.Rejected = rejected
	}
	return resp, nil
}

func (a *Analyzer) persistSubject(ctx context.Context, subjectID string, raw map[scoring.Framework]scoring.AnswerSet, rejected map[scoring.Framework]string, profile outcome.Outcome[synthesis.Profile]) (string, error) {
	for _, f := range sortedFrameworks(raw) {
		if _, bad := rejected[f]; bad {
			continue
		}
		if _, err := a.store.SaveAssessment(ctx, subjectID, f, raw[f]); err != nil {
			return "", err
		}
	}
	return a.store.SaveProfile(ctx, subjectID, profile.Value, profile.Fallback)
}

// Compatibility scores two profiles
func (a *Analyzer) Compatibility(x, y synthesis.Profile) outcome.Outcome[compatibility.Score] {
	out := a.calculator.Calculate(x, y)
	if out.Fallback {
		a.metrics.RecordFallback("compatibility")
		a.logger.FallbackLogger("compatibility", out.Reason)
	}
	return out
}

// Optimize analyzes a roster of synthesized profiles
func (a *Analyzer) Optimize(req types.TeamOptimizeRequest) outcome.Outcome[team.Report] {
	start := time.Now()
	out := a.optimizer.Optimize(req.Members, req.Requirements, req.Goals)
	if out.Fallback {
		a.metrics.RecordFallback("team")
		a.logger.FallbackLogger("team", out.Reason)
	}
	a.logger.TeamLogger(req.TeamID, len(req.Members), out.Value.OverallScore, len(out.Value.ConflictPairs), out.Fallback, time.Since(start))
	return out
}

// Predict forecasts team outcomes
func (a *Analyzer) Predict(req types.PredictRequest) outcome.Outcome[[]predict.Prediction] {
	out := a.analytics.Predict(req.Members, req.PredictionType)
	if out.Fallback {
		a.metrics.RecordFallback("predict")
		a.logger.FallbackLogger("predict", out.Reason)
	}
	return out
}

// AnalyzeTeam synthesizes every member concurrently, then builds the team
// report and predictions from the resulting profiles.
func (a *Analyzer) AnalyzeTeam(ctx context.Context, req types.TeamAnalyzeRequest) (types.TeamAnalyzeResponse, error) {
	members := make([]types.MemberAnalysis, len(req.Members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, m := range req.Members {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bundle, rejected := a.scoreBundle(m.Assessments, nil)
			members[i] = types.MemberAnalysis{
				MemberID: m.MemberID,
				Profile:  a.synthesize(m.MemberID, bundle),
			}
			if len(rejected) > 0 {
				members[i].Rejected = rejected
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.TeamAnalyzeResponse{}, err
	}

	roster := make([]team.Member, len(members))
	data := make([]predict.MemberData, len(members))
	for i, m := range members {
		roster[i] = team.Member{ID: m.MemberID, Profile: m.Profile.Value}
		data[i] = predict.FromProfile(m.MemberID, m.Profile.Value)
	}

	resp := types.TeamAnalyzeResponse{TeamID: req.TeamID, Members: members}

	var pg errgroup.Group
	pg.Go(func() error {
		resp.Report = a.Optimize(types.TeamOptimizeRequest{
			TeamID:       req.TeamID,
			Members:      roster,
			Requirements: req.Requirements,
			Goals:        req.Goals,
		})
		return nil
	})
	pg.Go(func() error {
		resp.Predictions = a.Predict(types.PredictRequest{
			TeamID:         req.TeamID,
			Members:        data,
			PredictionType: req.PredictionType,
		})
		return nil
	})
	_ = pg.Wait()

	if req.Persist && a.store != nil {
		if err := a.persistTeam(ctx, req, resp); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func (a *Analyzer) persistTeam(ctx context.Context, req types.TeamAnalyzeRequest, resp types.TeamAnalyzeResponse) error {
	memberIDs := make([]string, len(req.Members))
	for i, m := range req.Members {
		memberIDs[i] = m.MemberID
		if _, err := a.persistSubject(ctx, m.MemberID, m.Assessments, resp.Members[i].Rejected, resp.Members[i].Profile); err != nil {
			return err
		}
	}

	if _, err := a.store.SaveTeamReport(ctx, req.TeamID, memberIDs, resp.Report.Value, resp.Report.Fallback); err != nil {
		return err
	}
	_, err := a.store.SavePredictions(ctx, req.TeamID, resp.Predictions.Value, resp.Predictions.Fallback)
	return err
}

func sortedFrameworks(raw map[scoring.Framework]scoring.AnswerSet) []scoring.Framework {
	out := make([]scoring.Framework, 0, len(raw))
	for f := range raw {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
