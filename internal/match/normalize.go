package match

import "strings"

// aliasRule maps a label variant to its canonical spelling.
type aliasRule struct {
	alias     string
	canonical string
}

// aliasTable is applied in order, each rule exactly once. The table is
// fixed: order matters ("node" must run before "js") and the output of a
// substitution is not re-scanned from the top, so normalization is total
// and deterministic for any input.
var aliasTable = []aliasRule{
	{"node", "node.js"},
	{"nodejs", "node.js"},
	{"js", "javascript"},
	{"reactjs", "react"},
	{"vuejs", "vue"},
	{"postgres", "postgresql"},
	{"aws", "amazon web services"},
}

// NormalizeSkill canonicalizes a skill or technology label for comparison:
// lower-case, trim, then a single ordered pass over the alias table.
func NormalizeSkill(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, rule := range aliasTable {
		if strings.Contains(normalized, rule.alias) {
			normalized = strings.ReplaceAll(normalized, rule.alias, rule.canonical)
		}
	}
	return normalized
}
