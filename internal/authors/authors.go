// Package authors parses and canonicalises the free-text author lists
// found in spec metadata tables. Near-duplicate spellings (diacritics,
// casing) are resolved to one preferred display form per batch.
package authors

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/specsync/internal/core/domain"
)

var (
	// name <email> or name (canonical) annotations.
	annotation = regexp.MustCompile(`\(.*\)|<.*>`)
	// A plausible display name after normalisation. Anything else is
	// treated as noise from the rendered document (stray punctuation,
	// split mention fragments).
	validName = regexp.MustCompile(`^[a-zA-Z ]+$`)
	splitter  = regexp.MustCompile(`[,;]`)
)

// Parse splits a raw author field into individual display names.
// Email addresses and parenthesised annotations are stripped, and
// entries that are not plain names after normalisation are dropped.
func Parse(raw string) []string {
	parts := splitter.Split(raw, -1)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(annotation.ReplaceAllString(part, ""))
		if name == "" {
			continue
		}
		if !validName.MatchString(Normalize(name)) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// accentFolds maps the accented Latin letters seen in author names to
// their unaccented base letter. Applied after casefolding.
var accentFolds = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'ç': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ÿ': 'y',
}

// Normalize computes the identity key for an author name: casefold, then
// fold accented Latin letters to their base letter. "García" and "garcia"
// normalise to the same key.
func Normalize(name string) string {
	return strings.Map(func(r rune) rune {
		if base, ok := accentFolds[r]; ok {
			return base
		}
		return r
	}, strings.ToLower(name))
}

// Unify rewrites every author name across the given records to one
// canonical display spelling per normalised identity: the first form
// encountered in record order wins. Pure: the input records are not
// mutated. Idempotent: re-applying the result is a no-op.
func Unify(records []domain.SpecRecord) []domain.SpecRecord {
	canonical := make(map[string]string)
	for _, rec := range records {
		for _, author := range rec.Authors {
			key := Normalize(author)
			if _, seen := canonical[key]; !seen {
				canonical[key] = author
			}
		}
	}

	unified := make([]domain.SpecRecord, len(records))
	for i, rec := range records {
		out := rec
		out.Authors = make([]string, len(rec.Authors))
		for j, author := range rec.Authors {
			out.Authors[j] = canonical[Normalize(author)]
		}
		unified[i] = out
	}
	return unified
}
