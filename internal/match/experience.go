package match

import (
	"strconv"
	"strings"
	"time"

	"recruit-match/internal/models"
)

// EvaluateExperience sums employment intervals into total years and scores
// them against a minimum requirement. Entries with unparsable dates are
// skipped, not errors. Concurrent roles each contribute their full
// duration; overlaps are deliberately not deduplicated.
func EvaluateExperience(requiredYears int, entries []models.ExperienceEntry, asOf time.Time) (score float64, totalYears float64) {
	if requiredYears <= 0 {
		return 1.0, 0
	}

	for _, entry := range entries {
		startYear, startMonth, ok := parseYearMonth(entry.StartDate)
		if !ok {
			continue
		}

		endYear, endMonth := asOf.Year(), int(asOf.Month())
		if entry.EndDate != "" {
			endYear, endMonth, ok = parseYearMonth(entry.EndDate)
			if !ok {
				continue
			}
		}

		months := (endYear-startYear)*12 + (endMonth - startMonth)
		totalYears += float64(months) / 12.0
	}

	required := float64(requiredYears)
	switch {
	case totalYears >= required:
		score = 1.0
	case totalYears >= required*0.8:
		score = 0.8
	case totalYears >= required*0.6:
		score = 0.6
	default:
		score = totalYears / required
		if score < 0 {
			score = 0
		}
	}

	return score, totalYears
}

// parseYearMonth parses "YYYY-MM". A bare "YYYY" defaults the month to
// January, matching how upstream extraction emits year-only dates.
func parseYearMonth(s string) (year, month int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if len(parts) == 0 || parts[0] == "" {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	month = 1
	if len(parts) > 1 {
		month, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
	}

	return year, month, true
}
