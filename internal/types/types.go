// Package types holds the request and response bodies shared by the HTTP
// API and the CLI.
package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/teamsynth/internal/compatibility"
	"github.com/ZanzyTHEbar/teamsynth/internal/errors"
	"github.com/ZanzyTHEbar/teamsynth/internal/outcome"
	"github.com/ZanzyTHEbar/teamsynth/internal/predict"
	"github.com/ZanzyTHEbar/teamsynth/internal/scoring"
	"github.com/ZanzyTHEbar/teamsynth/internal/synthesis"
	"github.com/ZanzyTHEbar/teamsynth/internal/team"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ScoreRequest scores one framework's answers
type ScoreRequest struct {
	Framework scoring.Framework `json:"framework" validate:"required"`
	Answers   scoring.AnswerSet `json:"answers" validate:"required"`
}

// SynthesizeRequest builds a unified profile from raw answers, pre-scored
// results, or both. Pre-scored results win for a framework present in both.
type SynthesizeRequest struct {
	SubjectID   string                                  `json:"subject_id,omitempty" validate:"required_if=Persist true,max=128"`
	Assessments map[scoring.Framework]scoring.AnswerSet `json:"assessments,omitempty"`
	Results     map[scoring.Framework]*scoring.Result   `json:"results,omitempty"`
	Persist     bool                                    `json:"persist,omitempty"`
}

// SynthesizeResponse is the unified profile plus what happened to each input
type SynthesizeResponse struct {
	SubjectID string                                `json:"subject_id,omitempty"`
	Profile   outcome.Outcome[synthesis.Profile]    `json:"profile"`
	Results   map[scoring.Framework]*scoring.Result `json:"results"`
	Rejected  map[scoring.Framework]string          `json:"rejected,omitempty"`
	ProfileID string                                `json:"profile_id,omitempty"`
}

// CompatibilityRequest compares two profiles
type CompatibilityRequest struct {
	A *synthesis.Profile `json:"a" validate:"required"`
	B *synthesis.Profile `json:"b" validate:"required"`
}

// CompatibilityResponse is the scored pair
type CompatibilityResponse = outcome.Outcome[compatibility.Score]

// TeamOptimizeRequest analyzes a roster of synthesized profiles
type TeamOptimizeRequest struct {
	TeamID       string         `json:"team_id,omitempty" validate:"max=128"`
	Members      []team.Member  `json:"members" validate:"dive"`
	Requirements map[string]any `json:"project_requirements,omitempty"`
	Goals        []string       `json:"optimization_goals,omitempty"`
}

// PredictRequest forecasts team outcomes from behavioral data
type PredictRequest struct {
	TeamID         string               `json:"team_id,omitempty" validate:"max=128"`
	Members        []predict.MemberData `json:"members"`
	PredictionType string               `json:"prediction_type,omitempty"`
}

// MemberAssessments is one member's raw answers for a full team analysis
type MemberAssessments struct {
	MemberID    string                                  `json:"member_id" validate:"required,max=128"`
	Assessments map[scoring.Framework]scoring.AnswerSet `json:"assessments"`
}

// TeamAnalyzeRequest runs scoring, synthesis, optimization and prediction
// for a roster of raw answer sets
type TeamAnalyzeRequest struct {
	TeamID         string              `json:"team_id,omitempty" validate:"required_if=Persist true,max=128"`
	Members        []MemberAssessments `json:"members" validate:"required,min=1,dive"`
	Requirements   map[string]any      `json:"project_requirements,omitempty"`
	Goals          []string            `json:"optimization_goals,omitempty"`
	PredictionType string              `json:"prediction_type,omitempty"`
	Persist        bool                `json:"persist,omitempty"`
}

// MemberAnalysis is one member's outcome inside a team analysis
type MemberAnalysis struct {
	MemberID string                             `json:"member_id"`
	Profile  outcome.Outcome[synthesis.Profile] `json:"profile"`
	Rejected map[scoring.Framework]string       `json:"rejected,omitempty"`
}

// TeamAnalyzeResponse is the full team analysis
type TeamAnalyzeResponse struct {
	TeamID      string                                `json:"team_id,omitempty"`
	Members     []MemberAnalysis                      `json:"members"`
	Report      outcome.Outcome[team.Report]          `json:"report"`
	Predictions outcome.Outcome[[]predict.Prediction] `json:"predictions"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	if !r.Framework.Known() {
		return errors.NewValidationErrorWithMap(map[string]string{
			"framework": fmt.Sprintf("unknown framework %q", r.Framework),
		})
	}
	return nil
}

// Validate validates the SynthesizeRequest using the validator.
func (r *SynthesizeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	if len(r.Assessments) == 0 && len(r.Results) == 0 {
		return errors.NewValidationErrorWithMap(map[string]string{
			"assessments": "provide assessments or results",
		})
	}
	return validateResults(r.Results)
}

// validateResults rejects pre-scored results that name an unknown framework
// or carry a dimension outside [0,1].
func validateResults(results map[scoring.Framework]*scoring.Result) error {
	fields := make(map[string]string)
	for f, res := range results {
		if !f.Known() {
			fields[fmt.Sprintf("results[%s]", f)] = fmt.Sprintf("unknown framework %q", f)
			continue
		}
		for _, d := range res.OutOfRange() {
			fields[fmt.Sprintf("results[%s].dimensions.%s", f, d)] = fmt.Sprintf("must be within [0,1], got %v", res.Dimensions[d])
		}
	}
	if len(fields) > 0 {
		return errors.NewValidationErrorWithMap(fields)
	}
	return nil
}

// Validate validates the CompatibilityRequest using the validator.
func (r *CompatibilityRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// Validate validates the TeamOptimizeRequest using the validator.
func (r *TeamOptimizeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return uniqueIDs(len(r.Members), func(i int) string { return r.Members[i].ID })
}

// Validate validates the PredictRequest using the validator.
func (r *PredictRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// Validate validates the TeamAnalyzeRequest using the validator.
func (r *TeamAnalyzeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return uniqueIDs(len(r.Members), func(i int) string { return r.Members[i].MemberID })
}

func uniqueIDs(n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if seen[id(i)] {
			return errors.NewValidationErrorWithMap(map[string]string{
				fmt.Sprintf("members[%d]", i): fmt.Sprintf("duplicate member id %q", id(i)),
			})
		}
		seen[id(i)] = true
	}
	return nil
}

// validationError converts validator output into a field map
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := strings.ToLower(fe.Namespace())
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		if fe.Param() != "" {
			fields[key] = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		} else {
			fields[key] = "failed " + fe.Tag()
		}
	}
	return errors.NewValidationErrorWithMap(fields)
}
