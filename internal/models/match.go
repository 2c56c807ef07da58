// internal/models/match.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStrength is the qualitative outcome of matching one requirement.
type MatchStrength string

const (
	StrengthNone    MatchStrength = "none"
	StrengthPartial MatchStrength = "partial"
	StrengthExact   MatchStrength = "exact"
)

// RequirementEvidence records why a requirement matched (or didn't).
// Evidence is non-empty exactly when Strength != none.
type RequirementEvidence struct {
	Requirement string        `json:"requirement"`
	Strength    MatchStrength `json:"strength"`
	Evidence    string        `json:"evidence,omitempty"`
	Weight      float64       `json:"weight"`
}

// CategoryScore is one category's raw score and its weighted contribution
// to the overall score.
type CategoryScore struct {
	Score        float64 `json:"score"`
	Contribution float64 `json:"contribution"`
}

// Breakdown exposes every category for audit and testing.
type Breakdown struct {
	SkillsMustHave CategoryScore `json:"skillsMustHave"`
	SkillsNiceHave CategoryScore `json:"skillsNiceHave"`
	Experience     CategoryScore `json:"experience"`
	Location       CategoryScore `json:"location"`
	Salary         CategoryScore `json:"salary"`
	RightToWork    CategoryScore `json:"rightToWork"`
}

type ExperienceDetails struct {
	YearsRequired int     `json:"yearsRequired"`
	YearsActual   float64 `json:"yearsActual"`
}

type LocationDetails struct {
	RightToWork      bool `json:"rightToWork"`
	CountryMatch     bool `json:"countryMatch"`
	CityMatch        bool `json:"cityMatch"`
	RemoteCompatible bool `json:"remoteCompatible"`
}

type SalaryDetails struct {
	Reason       string  `json:"reason"`
	CandidateAvg float64 `json:"candidateAvg,omitempty"`
	JobAvg       float64 `json:"jobAvg,omitempty"`
	OverlapRatio float64 `json:"overlapRatio,omitempty"`
	Penalty      float64 `json:"penalty,omitempty"`
}

// MatchResult is the engine's output for one (candidate, job) pair. A new
// result replaces any prior one for the same pair; it is never mutated.
type MatchResult struct {
	CandidateID  uuid.UUID             `json:"candidateId"`
	JobPostingID uuid.UUID             `json:"jobPostingId"`
	OverallScore float64               `json:"overallScore"`
	Breakdown    Breakdown             `json:"breakdown"`
	Evidence     []RequirementEvidence `json:"evidence"`
	Experience   ExperienceDetails     `json:"experience"`
	Location     LocationDetails       `json:"location"`
	Salary       SalaryDetails         `json:"salary"`
}

// MatchProfile is the persisted form of a MatchResult, keyed by the
// (candidate, job) pair. The storage collaborator upserts it atomically.
type MatchProfile struct {
	ID           uuid.UUID    `json:"id"`
	CandidateID  uuid.UUID    `json:"candidateId"`
	JobPostingID uuid.UUID    `json:"jobPostingId"`
	ProfileName  string       `json:"profileName"`
	CompanyName  string       `json:"companyName"`
	RoleTitle    string       `json:"roleTitle"`
	MatchScore   float64      `json:"matchScore"`
	MatchDetails *MatchResult `json:"matchDetails,omitempty"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
