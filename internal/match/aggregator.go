package match

import (
	"fmt"
	"math"
	"time"

	"recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/models"
)

// Weights is the immutable category weight table injected at construction.
// The sum-to-1.0 invariant is validated once, at startup, never per call.
type Weights struct {
	SkillsMustHave float64
	SkillsNiceHave float64
	Experience     float64
	Location       float64
	Salary         float64
	RightToWork    float64
}

// DefaultWeights returns the production weight table. Note the work
// authorization check counts twice: 0.3 inside the location score and
// again as the standalone right-to-work category. Kept for behavioral
// compatibility with the upstream pipeline; see DESIGN.md.
func DefaultWeights() Weights {
	return Weights{
		SkillsMustHave: 0.35,
		SkillsNiceHave: 0.10,
		Experience:     0.20,
		Location:       0.15,
		Salary:         0.10,
		RightToWork:    0.10,
	}
}

// Validate checks each weight is in [0,1] and the set sums to 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"skills_must_have": w.SkillsMustHave,
		"skills_nice_have": w.SkillsNiceHave,
		"experience":       w.Experience,
		"location":         w.Location,
		"salary":           w.Salary,
		"right_to_work":    w.RightToWork,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s out of range [0,1]: %f", name, v)
		}
	}

	sum := w.SkillsMustHave + w.SkillsNiceHave + w.Experience +
		w.Location + w.Salary + w.RightToWork
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %.9f", sum)
	}
	return nil
}

// Aggregator combines the category scorers into one weighted overall
// score. All scoring is pure: it reads immutable snapshots and returns a
// fresh MatchResult on every call.
type Aggregator struct {
	weights Weights
	logger  logger.Logger
}

// NewAggregator validates the weight table and returns an aggregator.
// An invalid table is a configuration error, fatal at startup.
func NewAggregator(weights Weights, log logger.Logger) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, errors.NewMatchWeightsInvalidError(err.Error())
	}
	return &Aggregator{weights: weights, logger: log}, nil
}

// Score computes the match between a candidate and a job posting as of now.
func (a *Aggregator) Score(c *models.Candidate, j *models.JobPosting) *models.MatchResult {
	return a.ScoreAt(c, j, time.Now().UTC())
}

// ScoreAt is Score with an explicit evaluation date for ongoing
// employment intervals. Identical snapshots and asOf always produce an
// identical result.
func (a *Aggregator) ScoreAt(c *models.Candidate, j *models.JobPosting, asOf time.Time) *models.MatchResult {
	technologies := c.Technologies()

	mustScore, mustEvidence := ScoreRequirements(j.Requirements.MustHaves, c.Skills, technologies)
	niceScore, niceEvidence := ScoreRequirements(j.Requirements.NiceToHaves, c.Skills, technologies)

	expScore, totalYears := EvaluateExperience(j.Requirements.YearsExperienceMin, c.Experience, asOf)
	locScore, locDetails := ScoreLocation(j.Location, c.Location, c.RightToWork)
	salScore, salDetails := ScoreSalary(j.SalaryBand, c.TargetComp)

	rtwScore := 0.0
	if locDetails.RightToWork {
		rtwScore = 1.0
	}

	w := a.weights
	breakdown := models.Breakdown{
		SkillsMustHave: models.CategoryScore{Score: mustScore, Contribution: mustScore * w.SkillsMustHave},
		SkillsNiceHave: models.CategoryScore{Score: niceScore, Contribution: niceScore * w.SkillsNiceHave},
		Experience:     models.CategoryScore{Score: expScore, Contribution: expScore * w.Experience},
		Location:       models.CategoryScore{Score: locScore, Contribution: locScore * w.Location},
		Salary:         models.CategoryScore{Score: salScore, Contribution: salScore * w.Salary},
		RightToWork:    models.CategoryScore{Score: rtwScore, Contribution: rtwScore * w.RightToWork},
	}

	overall := breakdown.SkillsMustHave.Contribution +
		breakdown.SkillsNiceHave.Contribution +
		breakdown.Experience.Contribution +
		breakdown.Location.Contribution +
		breakdown.Salary.Contribution +
		breakdown.RightToWork.Contribution

	evidence := make([]models.RequirementEvidence, 0, len(mustEvidence)+len(niceEvidence))
	evidence = append(evidence, mustEvidence...)
	evidence = append(evidence, niceEvidence...)

	return &models.MatchResult{
		CandidateID:  c.ID,
		JobPostingID: j.ID,
		OverallScore: overall,
		Breakdown:    breakdown,
		Evidence:     evidence,
		Experience: models.ExperienceDetails{
			YearsRequired: j.Requirements.YearsExperienceMin,
			YearsActual:   totalYears,
		},
		Location: locDetails,
		Salary:   salDetails,
	}
}
