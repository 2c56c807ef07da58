package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recruit-match/internal/models"
)

func TestScoreLocation(t *testing.T) {
	tests := []struct {
		name        string
		job         models.JobLocation
		cand        models.CandidateLocation
		rightToWork []string
		expected    float64
		details     models.LocationDetails
	}{
		{
			name:        "authorized remote job in matching country caps at full score",
			job:         models.JobLocation{Country: "UK", Policy: models.PolicyRemote},
			cand:        models.CandidateLocation{Country: "UK", RemotePreference: models.RemotePrefOnsite},
			rightToWork: []string{"UK"},
			expected:    1.0,
			details: models.LocationDetails{
				RightToWork:      true,
				CountryMatch:     true,
				RemoteCompatible: true,
			},
		},
		{
			name:        "city bonus requires country match",
			job:         models.JobLocation{Country: "UK", City: "London", Policy: models.PolicyOnsite},
			cand:        models.CandidateLocation{Country: "ES", City: "London", RemotePreference: models.RemotePrefOnsite},
			rightToWork: []string{"ES"},
			expected:    0.3,
			details: models.LocationDetails{
				RemoteCompatible: true,
			},
		},
		{
			name:        "full stack with city bonus still capped",
			job:         models.JobLocation{Country: "UK", City: "London", Policy: models.PolicyHybrid},
			cand:        models.CandidateLocation{Country: "UK", City: "London", RemotePreference: models.RemotePrefHybrid},
			rightToWork: []string{"UK", "IE"},
			expected:    1.0,
			details: models.LocationDetails{
				RightToWork:      true,
				CountryMatch:     true,
				CityMatch:        true,
				RemoteCompatible: true,
			},
		},
		{
			name:     "onsite job rejects remote preference",
			job:      models.JobLocation{Country: "DE", Policy: models.PolicyOnsite},
			cand:     models.CandidateLocation{Country: "DE", RemotePreference: models.RemotePrefRemote},
			expected: 0.4,
			details: models.LocationDetails{
				CountryMatch: true,
			},
		},
		{
			name:     "hybrid job accepts remote preference",
			job:      models.JobLocation{Country: "DE", Policy: models.PolicyHybrid},
			cand:     models.CandidateLocation{Country: "FR", RemotePreference: models.RemotePrefRemote},
			expected: 0.3,
			details: models.LocationDetails{
				RemoteCompatible: true,
			},
		},
		{
			name:     "case insensitive country comparison",
			job:      models.JobLocation{Country: "uk", Policy: models.PolicyOnsite},
			cand:     models.CandidateLocation{Country: "UK", RemotePreference: models.RemotePrefOnsite},
			expected: 0.7,
			details: models.LocationDetails{
				CountryMatch:     true,
				RemoteCompatible: true,
			},
		},
		{
			name:     "missing policy contributes nothing",
			job:      models.JobLocation{Country: "UK"},
			cand:     models.CandidateLocation{Country: "UK", RemotePreference: models.RemotePrefRemote},
			expected: 0.4,
			details: models.LocationDetails{
				CountryMatch: true,
			},
		},
		{
			name:     "missing preference contributes nothing",
			job:      models.JobLocation{Country: "UK", Policy: models.PolicyRemote},
			cand:     models.CandidateLocation{Country: "UK"},
			expected: 0.4,
			details: models.LocationDetails{
				CountryMatch: true,
			},
		},
		{
			name:     "empty everything",
			job:      models.JobLocation{},
			cand:     models.CandidateLocation{},
			expected: 0,
			details:  models.LocationDetails{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, details := ScoreLocation(tt.job, tt.cand, tt.rightToWork)
			assert.InDelta(t, tt.expected, score, 1e-9)
			assert.Equal(t, tt.details, details)
		})
	}
}

func TestHasRightToWork(t *testing.T) {
	assert.True(t, hasRightToWork([]string{"uk", "IE"}, "UK"))
	assert.False(t, hasRightToWork([]string{"ES"}, "UK"))
	assert.False(t, hasRightToWork(nil, "UK"))
}
