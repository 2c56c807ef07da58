// internal/models/candidate.go
package models

import "github.com/google/uuid"

// Remote preference values carried on a candidate snapshot.
const (
	RemotePrefRemote      = "remote"
	RemotePrefHybrid      = "hybrid"
	RemotePrefOnsite      = "onsite"
	RemotePrefUnspecified = "unspecified"
)

// Candidate is an immutable snapshot produced by the upstream
// normalization pipeline. The engine never mutates it.
type Candidate struct {
	ID           uuid.UUID         `json:"id"`
	FullName     string            `json:"fullName"`
	Skills       []string          `json:"skills"`
	Experience   []ExperienceEntry `json:"experience"`
	Location     CandidateLocation `json:"location"`
	RightToWork  []string          `json:"rightToWork"`
	TargetComp   *CompRange        `json:"targetCompensation,omitempty"`
	Status       string            `json:"status"`
}

// ExperienceEntry is one employment interval. Dates use YYYY-MM; an empty
// EndDate means the role is ongoing.
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Employer     string   `json:"employer"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

type CandidateLocation struct {
	Country          string `json:"country"`
	City             string `json:"city"`
	RemotePreference string `json:"remotePreference"`
}

// CompRange is a compensation range; any field may be absent. Used both
// for a candidate's target compensation and a job's salary band.
type CompRange struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Technologies flattens the distinct technology strings across all
// experience entries, preserving first-seen order.
func (c *Candidate) Technologies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, exp := range c.Experience {
		for _, tech := range exp.Technologies {
			if tech != "" && !seen[tech] {
				seen[tech] = true
				out = append(out, tech)
			}
		}
	}
	return out
}
