// internal/models/job_posting.go
package models

import "github.com/google/uuid"

// Location policy values carried on a job posting snapshot.
const (
	PolicyOnsite = "onsite"
	PolicyHybrid = "hybrid"
	PolicyRemote = "remote"
)

// JobPosting is an immutable snapshot of a normalized job description.
type JobPosting struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Client       string       `json:"client"`
	Requirements Requirements `json:"requirements"`
	Location     JobLocation  `json:"location"`
	SalaryBand   *CompRange   `json:"salaryBand,omitempty"`
	Status       string       `json:"status"`
}

type Requirements struct {
	MustHaves          []Requirement `json:"mustHaves"`
	NiceToHaves        []Requirement `json:"niceToHaves"`
	YearsExperienceMin int           `json:"yearsExperienceMin,omitempty"`
}

// Requirement is a single weighted skill requirement. Weight range [0,1]
// is enforced at the snapshot validation boundary, not in the scorer.
type Requirement struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	EvidenceHint string  `json:"evidenceHint,omitempty"`
}

type JobLocation struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Policy  string `json:"policy"`
}
