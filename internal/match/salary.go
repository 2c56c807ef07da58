package match

import (
	"strings"

	"recruit-match/internal/models"
)

// Salary score anchors.
const (
	salaryNeutral          = 0.5
	salaryCurrencyMismatch = 0.3
	salaryBelowBand        = 0.7
)

// ScoreSalary scores the overlap between a candidate's target compensation
// range and a job's salary band. Either side missing its minimum yields a
// neutral score; a currency mismatch short-circuits regardless of amounts.
func ScoreSalary(band, target *models.CompRange) (float64, models.SalaryDetails) {
	if band == nil || band.Min == nil || target == nil || target.Min == nil {
		return salaryNeutral, models.SalaryDetails{Reason: "insufficient salary data"}
	}

	if band.Currency != "" && target.Currency != "" &&
		!strings.EqualFold(band.Currency, target.Currency) {
		return salaryCurrencyMismatch, models.SalaryDetails{Reason: "currency mismatch"}
	}

	jobMin := *band.Min
	jobMax := orDefault(band.Max, jobMin)
	targetMin := *target.Min
	targetMax := orDefault(target.Max, targetMin)

	candidateAvg := (targetMin + targetMax) / 2
	jobAvg := (jobMin + jobMax) / 2

	// Candidate's full target range sits inside the band.
	if targetMin >= jobMin && targetMax <= jobMax {
		return 1.0, models.SalaryDetails{
			Reason:       "target within job range",
			CandidateAvg: candidateAvg,
			JobAvg:       jobAvg,
		}
	}

	// Ranges overlap: score by how much of the band the overlap covers.
	if targetMin <= jobMax && targetMax >= jobMin {
		overlap := minFloat(targetMax, jobMax) - maxFloat(targetMin, jobMin)
		bandLength := jobMax - jobMin

		ratio := 0.0
		if bandLength > 0 {
			ratio = overlap / bandLength
		}
		score := 0.5 + 0.5*ratio
		return score, models.SalaryDetails{
			Reason:       "partial overlap",
			CandidateAvg: candidateAvg,
			JobAvg:       jobAvg,
			OverlapRatio: ratio,
		}
	}

	// No overlap. Expecting less than offered is acceptable; expecting more
	// is penalized by the relative distance between the averages.
	if candidateAvg > jobAvg {
		penalty := (candidateAvg - jobAvg) / jobAvg
		if penalty > 1 {
			penalty = 1
		}
		score := 0.5 - penalty
		if score < 0 {
			score = 0
		}
		return score, models.SalaryDetails{
			Reason:       "target above job range",
			CandidateAvg: candidateAvg,
			JobAvg:       jobAvg,
			Penalty:      penalty,
		}
	}

	return salaryBelowBand, models.SalaryDetails{
		Reason:       "target below job range",
		CandidateAvg: candidateAvg,
		JobAvg:       jobAvg,
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
