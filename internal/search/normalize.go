// Package search folds Vietnamese text so lookups ignore case and diacritics.
package search

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ/Đ is a distinct letter, not a base letter plus a combining mark.
var letterFold = strings.NewReplacer("đ", "d", "Đ", "d")

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = letterFold.Replace(out)
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Key joins the normalized form of every non-empty part.
func Key(parts ...string) string {
	keep := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			keep = append(keep, n)
		}
	}
	return strings.Join(keep, " ")
}

// LikeClause matches a search_key column against a pattern built by Like.
const LikeClause = "search_key LIKE ? ESCAPE '!'"

var (
	likeEscape     = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	phoneSeparator = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
	phoneQuery     = regexp.MustCompile(`^\+?[0-9][0-9 .()-]*$`)
)

// Like returns a LIKE pattern for a normalized query, or "" when empty.
// Wildcards typed by the user match literally. A query that looks like a
// phone number loses its separators, as stored phones have none.
func Like(query string) string {
	q := Normalize(query)
	if q == "" {
		return ""
	}
	if phoneQuery.MatchString(q) {
		q = phoneSeparator.Replace(q)
	}
	return "%" + likeEscape.Replace(q) + "%"
}
