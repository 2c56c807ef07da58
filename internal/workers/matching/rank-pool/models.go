// internal/workers/matching/rank-pool/models.go
package rankpool

// Ranking directions accepted on the input.
const (
	DirectionCandidatesForJob = "candidates-for-job"
	DirectionJobsForCandidate = "jobs-for-candidate"
)

type Input struct {
	Direction string  `json:"direction"`
	AnchorID  string  `json:"anchorId"`
	MinScore  float64 `json:"minScore,omitempty"`
	Limit     int     `json:"limit,omitempty"`

	// Optional search narrowing, only used when ranking candidates.
	Keywords string   `json:"keywords,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	Country  string   `json:"country,omitempty"`
}

type RankedMatch struct {
	CandidateID  string  `json:"candidateId"`
	JobPostingID string  `json:"jobPostingId"`
	MatchScore   float64 `json:"matchScore"`
}

type Output struct {
	Direction string        `json:"direction"`
	AnchorID  string        `json:"anchorId"`
	Results   []RankedMatch `json:"results"`
	Count     int           `json:"count"`
	PoolSize  int           `json:"poolSize"`
}
