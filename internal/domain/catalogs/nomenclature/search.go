package nomenclature

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize prepares text for prefix matching: compatibility decomposition
// (NFKD) followed by lowercasing. "Ｃafé" and "café" normalize equally.
func Normalize(s string) string {
	return lower.String(norm.NFKD.String(strings.TrimSpace(s)))
}

// HasPrefix reports whether s starts with prefix after normalization.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(Normalize(s), Normalize(prefix))
}

// Filter returns items matching q, keeping order.
func Filter(items []Item, q Query) []Item {
	name := Normalize(q.Name)
	code := Normalize(q.Code)
	if name == "" && code == "" {
		return items
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if name != "" && !strings.HasPrefix(Normalize(it.Label), name) {
			continue
		}
		if code != "" && !strings.HasPrefix(Normalize(it.Code), code) {
			continue
		}
		out = append(out, it)
	}
	return out
}
