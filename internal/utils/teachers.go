package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTeacherTitles lists the academic title patterns recognized in
// lesson cells, ordered longest first. The order is load-bearing: "ст.
// викл." must never be consumed as a bare "викл.", so the combined regex
// tries the longer alternatives before their prefixes.
var DefaultTeacherTitles = []string{
	`(?:с|c)т\. ?викл\.+`,
	`асист\.+`,
	`викл\.+`,
	`проф\.+`,
	`доц\.+`,
	`ас\.+`,
}

// initialsPattern matches a pair of initials such as "О.П." or "О,П,".
const initialsPattern = `[А-ЯІЇЄ][.,]\s*[А-ЯІЇЄ][.,]`

var initialsReplacer = strings.NewReplacer(",", ".", " ", "")

// TeacherExtractor recognizes teacher names inside free-text lesson cells:
// an optional academic title, a capitalized surname and initials on one
// side of it.
type TeacherExtractor struct {
	re *regexp.Regexp
}

// NewTeacherExtractor compiles the combined title/initials/surname pattern
// from an ordered title table.
func NewTeacherExtractor(titles []string) *TeacherExtractor {
	pattern := fmt.Sprintf(`(%s)?\s*(%s)?\s*([А-ЯІЇЄ][а-яіїє]+)\s*(%s)?`,
		strings.Join(titles, "|"), initialsPattern, initialsPattern)
	return &TeacherExtractor{re: regexp.MustCompile(pattern)}
}

// Extract returns the residual subject text and the teacher names found,
// in text order. A capitalized word counts as a teacher only when initials
// sit next to it; a bare surname stays in the subject text. Names are
// canonicalized to "title Surname X.Y." with commas and inner spaces of
// the initials normalized away. No teachers found is a valid outcome, not
// an error.
func (e *TeacherExtractor) Extract(detail string) (string, []string) {
	detail = CollapseSpaces(detail)
	teachers := []string{}
	residual := detail

	for _, match := range e.re.FindAllStringSubmatch(detail, -1) {
		title, preInitials, surname, postInitials := match[1], match[2], match[3], match[4]
		initials := preInitials
		if initials == "" {
			initials = postInitials
		}
		if initials == "" {
			continue
		}

		name := surname + " " + initialsReplacer.Replace(initials)
		if title != "" {
			name = title + " " + name
		}
		teachers = append(teachers, strings.TrimSpace(name))
		residual = strings.TrimSpace(strings.ReplaceAll(residual, strings.TrimSpace(match[0]), ""))
	}

	residual = strings.TrimSpace(strings.TrimRight(residual, ","))
	return residual, teachers
}
