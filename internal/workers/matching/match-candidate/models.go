// internal/workers/matching/match-candidate/models.go
package matchcandidate

import "recruit-match/internal/models"

type Input struct {
	CandidateID  string `json:"candidateId"`
	JobPostingID string `json:"jobPostingId"`
	Persist      bool   `json:"persist,omitempty"`
}

type Output struct {
	MatchScore  float64             `json:"matchScore"`
	ProfileID   string              `json:"profileId,omitempty"`
	ProfileName string              `json:"profileName,omitempty"`
	Result      *models.MatchResult `json:"result"`
}
