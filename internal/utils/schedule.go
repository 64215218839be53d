package utils

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Fybex/naukma-schedule-parser/internal/models"
)

var (
	// ErrMalformedTimeSlot marks a time cell without exactly one "-"
	// separator.
	ErrMalformedTimeSlot = errors.New("malformed time slot")
	// ErrMalformedWeekSpec marks a week cell with a non-numeric token or
	// an inverted range.
	ErrMalformedWeekSpec = errors.New("malformed week spec")
)

// dayTypoThreshold allows at most one typo in a day-of-week cell.
const dayTypoThreshold = 1

// DetectDay reports whether the cell names a day of the week, tolerating a
// single character insertion, deletion or substitution. The cell is
// normalized but not lowercased while day names are lowercased, so an
// uppercase first letter consumes the edit budget — this mirrors how the
// source documents are written.
func DetectDay(cell string) (models.DayOfWeek, bool) {
	if cell == "" {
		return "", false
	}

	normalized := Normalize(cell)
	for _, day := range models.Days {
		if Levenshtein(normalized, strings.ToLower(string(day))) <= dayTypoThreshold {
			return day, true
		}
	}
	return "", false
}

// ParseTimeSlot splits a "9:30-11:05" style cell into its start and end
// times.
func ParseTimeSlot(text string) (models.TimeSlot, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return models.TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, text)
	}
	return models.TimeSlot{
		Start: strings.TrimSpace(parts[0]),
		End:   strings.TrimSpace(parts[1]),
	}, nil
}

// ParseWeeks expands a week spec like "1-3, 5, 7-9" into a sorted,
// deduplicated list of week numbers.
func ParseWeeks(text string) ([]int, error) {
	seen := make(map[int]bool)
	var weeks []int
	add := func(week int) {
		if !seen[week] {
			seen[week] = true
			weeks = append(weeks, week)
		}
	}

	for _, segment := range strings.Split(text, ",") {
		segment = strings.TrimSpace(segment)
		if first, last, isRange := strings.Cut(segment, "-"); isRange {
			start, errStart := strconv.Atoi(strings.TrimSpace(first))
			end, errEnd := strconv.Atoi(strings.TrimSpace(last))
			if errStart != nil || errEnd != nil {
				return nil, fmt.Errorf("%w: %q", ErrMalformedWeekSpec, segment)
			}
			if start > end {
				return nil, fmt.Errorf("%w: inverted range %q", ErrMalformedWeekSpec, segment)
			}
			for w := start; w <= end; w++ {
				add(w)
			}
			continue
		}
		week, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedWeekSpec, segment)
		}
		add(week)
	}

	sort.Ints(weeks)
	return weeks, nil
}

// ParseLessonKindAndGroup classifies a kind cell. A cell containing the
// word for lecture is a Lecture; a cell starting with a digit is a
// Practice whose group number is the concatenation of all digits in the
// cell; anything else, the empty cell included, is Unknown.
func ParseLessonKindAndGroup(text string) (models.LessonKind, *int) {
	s := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(s, string(models.Lecture)) {
		return models.Lecture, nil
	}

	runes := []rune(s)
	if len(runes) > 0 && unicode.IsDigit(runes[0]) {
		var digits strings.Builder
		for _, r := range runes {
			if unicode.IsDigit(r) {
				digits.WriteRune(r)
			}
		}
		if group, err := strconv.Atoi(digits.String()); err == nil {
			return models.Practice, &group
		}
	}
	return models.Unknown, nil
}

// Speciality names appear either in guillemets or straight double quotes.
var quotedSpecialityRegexes = []*regexp.Regexp{
	regexp.MustCompile(`«([^»]*)»`),
	regexp.MustCompile(`"([^"]*)"`),
}

// ExtractSpecialities pulls every quoted speciality name out of a raw
// header cell. An empty cell yields no specialities, not an error.
func ExtractSpecialities(raw string) []string {
	if raw == "" {
		return nil
	}

	var specialities []string
	for _, re := range quotedSpecialityRegexes {
		for _, match := range re.FindAllStringSubmatch(raw, -1) {
			specialities = append(specialities, strings.TrimSpace(match[1]))
		}
	}
	return specialities
}
