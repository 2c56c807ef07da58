package match

import (
	"strings"

	"recruit-match/internal/models"
)

// Additive location score terms. The sum is capped at 1.0.
const (
	rightToWorkTerm  = 0.3
	countryMatchTerm = 0.4
	cityMatchBonus   = 0.2
	remotePolicyTerm = 0.3
)

// ScoreLocation scores geographic, remote-policy and work-authorization
// compatibility. Each term is computed independently; missing fields
// simply contribute 0.
func ScoreLocation(job models.JobLocation, cand models.CandidateLocation, rightToWork []string) (float64, models.LocationDetails) {
	score := 0.0
	details := models.LocationDetails{}

	if job.Country != "" && hasRightToWork(rightToWork, job.Country) {
		details.RightToWork = true
		score += rightToWorkTerm
	}

	if job.Country != "" && cand.Country != "" && strings.EqualFold(job.Country, cand.Country) {
		details.CountryMatch = true
		score += countryMatchTerm

		// City bonus only makes sense once the countries agree.
		if job.City != "" && cand.City != "" && strings.EqualFold(job.City, cand.City) {
			details.CityMatch = true
			score += cityMatchBonus
		}
	}

	if job.Policy != "" && cand.RemotePreference != "" {
		policy := strings.ToLower(job.Policy)
		pref := strings.ToLower(cand.RemotePreference)

		switch policy {
		case models.PolicyRemote:
			// Remote jobs work for anyone.
			details.RemoteCompatible = true
		case models.PolicyHybrid:
			details.RemoteCompatible = pref == models.RemotePrefRemote || pref == models.RemotePrefHybrid
		case models.PolicyOnsite:
			details.RemoteCompatible = pref == models.RemotePrefOnsite || pref == models.RemotePrefHybrid
		}
		if details.RemoteCompatible {
			score += remotePolicyTerm
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score, details
}

func hasRightToWork(countries []string, jobCountry string) bool {
	for _, c := range countries {
		if strings.EqualFold(c, jobCountry) {
			return true
		}
	}
	return false
}
