package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruit-match/internal/models"
)

func asOfDate(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateExperience(t *testing.T) {
	tests := []struct {
		name          string
		requiredYears int
		entries       []models.ExperienceEntry
		asOf          time.Time
		expectedScore float64
		expectedYears float64
	}{
		{
			name:          "ongoing role counted up to evaluation date",
			requiredYears: 5,
			entries: []models.ExperienceEntry{
				{StartDate: "2019-01"},
			},
			asOf:          asOfDate(2024, time.January),
			expectedScore: 1.0,
			expectedYears: 5.0,
		},
		{
			name:          "no requirement passes with zero history",
			requiredYears: 0,
			entries:       nil,
			asOf:          asOfDate(2024, time.June),
			expectedScore: 1.0,
			expectedYears: 0,
		},
		{
			name:          "eighty percent band",
			requiredYears: 5,
			entries: []models.ExperienceEntry{
				{StartDate: "2020-01", EndDate: "2024-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 0.8,
			expectedYears: 4.0,
		},
		{
			name:          "sixty percent band",
			requiredYears: 5,
			entries: []models.ExperienceEntry{
				{StartDate: "2021-01", EndDate: "2024-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 0.6,
			expectedYears: 3.0,
		},
		{
			name:          "below bands falls back to ratio",
			requiredYears: 10,
			entries: []models.ExperienceEntry{
				{StartDate: "2022-01", EndDate: "2024-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 0.2,
			expectedYears: 2.0,
		},
		{
			name:          "concurrent roles both count in full",
			requiredYears: 4,
			entries: []models.ExperienceEntry{
				{StartDate: "2020-01", EndDate: "2022-01"},
				{StartDate: "2020-01", EndDate: "2022-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 1.0,
			expectedYears: 4.0,
		},
		{
			name:          "unparsable start date skipped",
			requiredYears: 2,
			entries: []models.ExperienceEntry{
				{StartDate: "unknown"},
				{StartDate: "2022-01", EndDate: "2024-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 1.0,
			expectedYears: 2.0,
		},
		{
			name:          "unparsable end date skips the entry",
			requiredYears: 2,
			entries: []models.ExperienceEntry{
				{StartDate: "2020-01", EndDate: "ongoing"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 0,
			expectedYears: 0,
		},
		{
			name:          "year only start defaults to january",
			requiredYears: 3,
			entries: []models.ExperienceEntry{
				{StartDate: "2021", EndDate: "2024-01"},
			},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 1.0,
			expectedYears: 3.0,
		},
		{
			name:          "no parsable history scores zero",
			requiredYears: 3,
			entries:       []models.ExperienceEntry{{StartDate: ""}},
			asOf:          asOfDate(2024, time.June),
			expectedScore: 0,
			expectedYears: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, years := EvaluateExperience(tt.requiredYears, tt.entries, tt.asOf)
			assert.InDelta(t, tt.expectedScore, score, 1e-9)
			assert.InDelta(t, tt.expectedYears, years, 1e-9)
		})
	}
}
