package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Upstream documents mix encodings for the Ukrainian apostrophe; both the
// typographic variant and its mojibake form collapse to a plain '.
var apostropheReplacer = strings.NewReplacer("â€™", "'", "’", "'")

// Normalize collapses whitespace runs (newlines included) to single spaces,
// trims the ends and repairs broken apostrophes.
func Normalize(s string) string {
	return apostropheReplacer.Replace(strings.TrimSpace(spaceRun.ReplaceAllString(s, " ")))
}

// CollapseSpaces flattens whitespace runs without trimming or other
// repairs.
func CollapseSpaces(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// Fold reduces s to its lowercase alphanumeric runes. Folded strings are
// only ever compared against other folded strings, never displayed.
func Fold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Levenshtein computes the edit distance between a and b with unit
// insert, delete and substitute costs, single-row DP over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j, cb := range rb {
		cur := make([]int, 1, len(ra)+1)
		cur[0] = j + 1
		for i, ca := range ra {
			if ca == cb {
				cur = append(cur, prev[i])
			} else {
				cur = append(cur, 1+min(prev[i], prev[i+1], cur[i]))
			}
		}
		prev = cur
	}
	return prev[len(prev)-1]
}

// ContainsWord reports whether keyword occurs as a whole word in content,
// case-insensitively. RE2's \b only knows ASCII word characters, so
// Cyrillic content is tokenized by hand instead of anchored with a regex.
func ContainsWord(content, keyword string) bool {
	for _, word := range strings.FieldsFunc(content, isNonAlnum) {
		if strings.EqualFold(word, keyword) {
			return true
		}
	}
	return false
}

func isNonAlnum(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
