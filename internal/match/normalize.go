package match

import (
	"regexp"
	"strings"
)

// parenPattern removes parenthetical content, e.g. "BMW (Automotive)" -> "BMW ".
var parenPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// dashPattern covers the ASCII hyphen plus the Unicode hyphen/dash family.
var dashPattern = regexp.MustCompile("[-‐‑‒–—]")

// legalSuffixPattern matches legal-entity suffix tokens as whole words or
// phrases. Phrase forms come first so they win over their component tokens
// ("GmbH & Co. KG" strips as one unit, not as "gmbh" leaving a stray "&").
var legalSuffixPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:` +
	`gmbh & co\. ?kg|` +
	`ug \(haftungsbeschränkt\)|` +
	`& co\.|` +
	`e\.v\.|` +
	`corporation|company|corp\.?|gmbh|inc\.?|ltd\.?|llc|ohg|co\.?|ag|se|kg|ug` +
	`)(?:\s|$)`)

var multiSpacePattern = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a company name for comparison. In order: trim,
// lowercase, drop parenthetical content, map hyphen/dash variants to spaces,
// strip legal-entity suffixes, collapse whitespace. Total and idempotent;
// empty or whitespace-only input normalizes to "".
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}

	n = parenPattern.ReplaceAllString(n, " ")
	n = dashPattern.ReplaceAllString(n, " ")

	// Suffixes can stack ("Acme Holding AG SE") and each replacement consumes
	// its trailing separator, so strip to a fixpoint.
	for {
		stripped := legalSuffixPattern.ReplaceAllString(n, " ")
		if stripped == n {
			break
		}
		n = stripped
	}

	n = multiSpacePattern.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}
