// Package rules implements the keyword rule list: parsing the line-based
// rule text, matching keywords against transaction descriptions, and
// applying the ordered list to a transaction set.
package rules

import "strings"

// isWordChar reports whether r belongs to a merchant-code "word".
// Letters, digits, '&', '.' and '_' form one run, so codes like
// "PYPL*UBER" split at '*' but "AT&T" stays whole.
func isWordChar(r byte) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '&', r == '.', r == '_':
		return true
	}
	return false
}

// Matches reports whether description satisfies keyword. The keyword is
// split on whitespace; every token must appear in the description as a
// delimited substring (string boundary or non-word character on each
// side), in any order. Matching is case-insensitive. An empty keyword
// never matches.
func Matches(description, keyword string) bool {
	tokens := strings.Fields(strings.ToLower(keyword))
	if len(tokens) == 0 {
		return false
	}
	desc := strings.ToLower(description)
	for _, tok := range tokens {
		if !containsToken(desc, tok) {
			return false
		}
	}
	return true
}

func containsToken(desc, tok string) bool {
	for start := 0; ; {
		i := strings.Index(desc[start:], tok)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(tok)
		leftOK := i == 0 || !isWordChar(desc[i-1])
		rightOK := end == len(desc) || !isWordChar(desc[end])
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}
