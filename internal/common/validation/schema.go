// Package validation checks snapshot payloads at the process boundary
// before they are decoded into model structs. The scorers themselves
// never validate; anything that passes here is trusted downstream.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"recruit-match/internal/common/errors"
)

const candidateSchema = `{
	"type": "object",
	"required": ["id", "fullName", "skills"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"fullName": {"type": "string", "minLength": 1},
		"skills": {
			"type": "array",
			"items": {"type": "string"}
		},
		"experience": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["startDate"],
				"properties": {
					"title": {"type": "string"},
					"employer": {"type": "string"},
					"startDate": {"type": "string"},
					"endDate": {"type": "string"},
					"technologies": {
						"type": "array",
						"items": {"type": "string"}
					}
				}
			}
		},
		"location": {
			"type": "object",
			"properties": {
				"country": {"type": "string"},
				"city": {"type": "string"},
				"remotePreference": {
					"type": "string",
					"enum": ["remote", "hybrid", "onsite", "unspecified", ""]
				}
			}
		},
		"rightToWork": {
			"type": "array",
			"items": {"type": "string"}
		},
		"targetCompensation": {"$ref": "#/definitions/compRange"},
		"status": {"type": "string"}
	},
	"definitions": {
		"compRange": {
			"type": "object",
			"properties": {
				"min": {"type": "number", "minimum": 0},
				"max": {"type": "number", "minimum": 0},
				"currency": {"type": "string"}
			}
		}
	}
}`

const jobPostingSchema = `{
	"type": "object",
	"required": ["id", "title", "requirements"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"client": {"type": "string"},
		"requirements": {
			"type": "object",
			"properties": {
				"mustHaves": {
					"type": "array",
					"items": {"$ref": "#/definitions/requirement"}
				},
				"niceToHaves": {
					"type": "array",
					"items": {"$ref": "#/definitions/requirement"}
				},
				"yearsExperienceMin": {"type": "integer", "minimum": 0}
			}
		},
		"location": {
			"type": "object",
			"properties": {
				"country": {"type": "string"},
				"city": {"type": "string"},
				"policy": {
					"type": "string",
					"enum": ["remote", "hybrid", "onsite", ""]
				}
			}
		},
		"salaryBand": {
			"type": "object",
			"properties": {
				"min": {"type": "number", "minimum": 0},
				"max": {"type": "number", "minimum": 0},
				"currency": {"type": "string"}
			}
		},
		"status": {"type": "string"}
	},
	"definitions": {
		"requirement": {
			"type": "object",
			"required": ["name", "weight"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"weight": {"type": "number", "minimum": 0, "maximum": 1},
				"evidenceHint": {"type": "string"}
			}
		}
	}
}`

var (
	compiledCandidateSchema  = mustCompile(candidateSchema)
	compiledJobPostingSchema = mustCompile(jobPostingSchema)
)

func mustCompile(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// ValidateCandidateSnapshot checks a raw candidate payload against the
// snapshot contract. Returns a non-retryable SNAPSHOT_INVALID error
// listing every violation.
func ValidateCandidateSnapshot(raw []byte) error {
	return validate(compiledCandidateSchema, "candidate", raw)
}

// ValidateJobPostingSnapshot checks a raw job posting payload against
// the snapshot contract.
func ValidateJobPostingSnapshot(raw []byte) error {
	return validate(compiledJobPostingSchema, "jobPosting", raw)
}

func validate(schema *gojsonschema.Schema, entity string, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.NewSnapshotInvalidError(fmt.Sprintf("%s: %s", entity, err.Error()))
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		violations = append(violations, resultErr.String())
	}
	return errors.NewSnapshotInvalidError(
		fmt.Sprintf("%s: %s", entity, strings.Join(violations, "; ")),
	)
}
