package match

import (
	"strings"
	"unicode"

	"recruit-match/internal/models"
)

// Contribution of each match strength to a weighted requirement score.
const (
	exactContribution   = 1.0
	partialContribution = 0.5
)

// MatchSkill scores one requirement against a candidate's skill and
// technology inventory.
//
// Exact: the normalized requirement appears inside a normalized skill.
// Skills are scanned before technologies, both in snapshot order, and the
// first hit supplies the evidence. Partial: at least half of the
// requirement's tokens appear among the skill's tokens. A requirement like
// "Node.js & TypeScript" against a bare "Node.js" is partial, not exact:
// holding one of two required skills is partial evidence.
func MatchSkill(requirement string, skills, technologies []string) (models.MatchStrength, string) {
	reqNorm := NormalizeSkill(requirement)
	if reqNorm == "" {
		return models.StrengthNone, ""
	}

	for _, inventory := range [][]string{skills, technologies} {
		for _, skill := range inventory {
			if strings.Contains(NormalizeSkill(skill), reqNorm) {
				return models.StrengthExact, skill
			}
		}
	}

	reqTokens := tokenizeSkill(reqNorm)
	if len(reqTokens) == 0 {
		return models.StrengthNone, ""
	}

	for _, inventory := range [][]string{skills, technologies} {
		for _, skill := range inventory {
			skillTokens := tokenizeSkill(NormalizeSkill(skill))
			overlap := 0
			for tok := range reqTokens {
				if skillTokens[tok] {
					overlap++
				}
			}
			if overlap > 0 && float64(overlap) >= float64(len(reqTokens))*0.5 {
				return models.StrengthPartial, skill
			}
		}
	}

	return models.StrengthNone, ""
}

// tokenizeSkill splits a normalized label on whitespace and ()/& and
// keeps tokens longer than 2 runes, so connectives like "&" or "of" never
// count toward overlap.
func tokenizeSkill(s string) map[string]bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == '/' || r == '&'
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			tokens[f] = true
		}
	}
	return tokens
}

// ScoreRequirements computes the weighted score for one requirement list:
// sum(contribution*weight) / sum(weight). An empty list (or all-zero
// weights) scores 0 rather than erroring. Every requirement gets an
// evidence entry; evidence text is empty exactly when the strength is none.
func ScoreRequirements(reqs []models.Requirement, skills, technologies []string) (float64, []models.RequirementEvidence) {
	if len(reqs) == 0 {
		return 0, nil
	}

	totalWeight := 0.0
	for _, req := range reqs {
		totalWeight += req.Weight
	}

	evidence := make([]models.RequirementEvidence, 0, len(reqs))
	score := 0.0
	for _, req := range reqs {
		strength, matched := MatchSkill(req.Name, skills, technologies)
		evidence = append(evidence, models.RequirementEvidence{
			Requirement: req.Name,
			Strength:    strength,
			Evidence:    matched,
			Weight:      req.Weight,
		})

		if totalWeight <= 0 {
			continue
		}
		switch strength {
		case models.StrengthExact:
			score += exactContribution * req.Weight / totalWeight
		case models.StrengthPartial:
			score += partialContribution * req.Weight / totalWeight
		}
	}

	return score, evidence
}
