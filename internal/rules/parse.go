package rules

import (
	"strings"

	"tally/internal/core"
)

const separator = "=>"

// Parse converts rule text into the ordered rule list. One rule per line,
// "keyword(s) => CATEGORY". Blank lines and '#' comment lines are skipped;
// lines missing the separator or with an empty side are dropped without
// error; a malformed line must never block the rules after it. Source
// order is preserved and is semantically significant (first match wins).
func Parse(text string) []core.Rule {
	var out []core.Rule
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		i := strings.Index(trimmed, separator)
		if i < 0 {
			continue
		}
		r := core.Rule{
			Keyword:  strings.ToLower(strings.TrimSpace(trimmed[:i])),
			Category: strings.ToUpper(strings.TrimSpace(trimmed[i+len(separator):])),
		}
		if r.Validate() != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Serialize renders a rule list back to rule text. Parse(Serialize(rs))
// yields a list identical to rs for well-formed input; whitespace is
// normalized, not preserved.
func Serialize(rs []core.Rule) string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.Keyword)
		b.WriteString(" " + separator + " ")
		b.WriteString(r.Category)
		b.WriteString("\n")
	}
	return b.String()
}
