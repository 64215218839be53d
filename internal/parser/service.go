// Package parser implements the schedule extraction engine: it walks a
// normalized sheet, locates the faculty/speciality/semester header, tracks
// the current day of week and folds lesson rows into per-speciality
// schedules.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Fybex/naukma-schedule-parser/internal/logger"
	"github.com/Fybex/naukma-schedule-parser/internal/models"
	"github.com/Fybex/naukma-schedule-parser/internal/sheet"
	"github.com/Fybex/naukma-schedule-parser/internal/utils"
)

// Fixed column layout of a lesson row.
const (
	colDay = iota
	colTime
	colDetail
	colKind
	colWeeks
	colLocation
)

// Marker words that identify header cells above the first day row.
const (
	facultyKeyword    = "факультет"
	specialityKeyword = "спеціальність"
	semesterKeyword   = "семестр"
)

var (
	parenGroupRegex    = regexp.MustCompile(`\(([^)]+)\)`)
	codeSeparatorRegex = regexp.MustCompile(`[+,]`)
)

// Header carries the document-level labels found above the first day row.
type Header struct {
	Faculty      string
	Specialities []string
	Semester     *string
}

// Service runs the extraction engine over normalized sheets. It holds no
// state between calls; each Assemble owns its registry, so separate sheets
// may be parsed concurrently by the caller.
type Service struct {
	log         *logger.Logger
	extractor   *utils.TeacherExtractor
	skipBadRows bool
}

type Option func(*Service)

// WithSkipBadRows makes Assemble log malformed lesson rows and continue
// instead of aborting the sheet.
func WithSkipBadRows() Option {
	return func(s *Service) { s.skipBadRows = true }
}

func New(log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log,
		extractor: utils.NewTeacherExtractor(utils.DefaultTeacherTitles),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assemble parses one sheet into its per-faculty schedules. A sheet whose
// header names no specialities yields an empty result rather than an
// error.
func (s *Service) Assemble(sh *sheet.Sheet) (models.FacultySchedules, error) {
	header := LocateHeader(sh)
	reg := newRegistry(header.Specialities)

	var currentDay models.DayOfWeek
	haveDay := false
	for row := 0; row < sh.NumRows(); row++ {
		if day, ok := utils.DetectDay(sh.Cell(row, colDay)); ok {
			currentDay, haveDay = day, true
		}
		// Header rows, blank separators and merged-cell artifacts are
		// expected; only rows with both a time and a detail cell count.
		if !haveDay || sh.Cell(row, colTime) == "" || sh.Cell(row, colDetail) == "" {
			continue
		}

		if err := s.parseLessonRow(sh, row, currentDay, header.Specialities, reg); err != nil {
			rowErr := &RowError{Row: row, Faculty: header.Faculty, Err: err}
			if !s.skipBadRows {
				return nil, rowErr
			}
			s.log.Warn("skipping malformed row",
				"row", row, "faculty", header.Faculty, "error", err)
		}
	}

	schedules := make([]models.Schedule, 0, len(header.Specialities))
	for _, speciality := range header.Specialities {
		schedules = append(schedules, models.Schedule{
			Speciality: speciality,
			Semester:   header.Semester,
			Subjects:   reg[speciality],
		})
	}
	return models.FacultySchedules{header.Faculty: schedules}, nil
}

func (s *Service) parseLessonRow(sh *sheet.Sheet, row int, day models.DayOfWeek, known []string, reg registry) error {
	slot, err := utils.ParseTimeSlot(sh.Cell(row, colTime))
	if err != nil {
		return err
	}
	weeks, err := utils.ParseWeeks(sh.Cell(row, colWeeks))
	if err != nil {
		return err
	}

	residual, teachers := s.extractor.Extract(sh.Cell(row, colDetail))
	subject, specialities := SplitSubjectAndSpecialities(residual, known)
	kind, group := utils.ParseLessonKindAndGroup(sh.Cell(row, colKind))

	item := models.ScheduleItem{
		Kind:     kind,
		Group:    group,
		Time:     slot,
		Weeks:    weeks,
		Location: sh.Cell(row, colLocation),
		Day:      day,
		Teachers: teachers,
	}
	for _, speciality := range specialities {
		reg.upsert(speciality, subject, item)
	}
	return nil
}

// LocateHeader scans cells in row-major order until the first day-of-week
// marker, collecting faculty, speciality and semester cells along the way
// (the last match wins for each). A sheet with no day marker is scanned in
// full and whatever partial header was found is returned.
func LocateHeader(sh *sheet.Sheet) Header {
	var header Header
	var rawSpeciality string

	for _, row := range sh.Rows {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			if _, ok := utils.DetectDay(cell); ok {
				header.Specialities = utils.ExtractSpecialities(rawSpeciality)
				return header
			}
			switch {
			case utils.ContainsWord(cell, facultyKeyword):
				header.Faculty = cell
			case utils.ContainsWord(cell, specialityKeyword):
				rawSpeciality = cell
			case utils.ContainsWord(cell, semesterKeyword):
				semester := cell
				header.Semester = &semester
			}
		}
	}

	header.Specialities = utils.ExtractSpecialities(rawSpeciality)
	return header
}

// SplitSubjectAndSpecialities resolves the trailing parenthesized
// abbreviation group of a raw subject line against the known speciality
// names. Every parenthesized group is stripped from the subject name. A
// subject without such a group applies to every known speciality.
func SplitSubjectAndSpecialities(rawSubject string, known []string) (string, []string) {
	matches := parenGroupRegex.FindAllStringSubmatch(rawSubject, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(rawSubject), known
	}

	codes := codeSeparatorRegex.Split(matches[len(matches)-1][1], -1)
	var applicable []string
	for _, speciality := range known {
		if matchesAnyCode(speciality, codes) {
			applicable = append(applicable, speciality)
		}
	}

	subject := utils.Normalize(parenGroupRegex.ReplaceAllString(rawSubject, ""))
	return subject, applicable
}

// matchesAnyCode reports whether any abbreviation code selects the
// speciality: either the folded code is a substring of the folded name, or
// it equals the name's word-initial acronym (КН ↔ «Комп'ютерні науки»).
func matchesAnyCode(speciality string, codes []string) bool {
	folded := utils.Fold(speciality)
	acronym := wordInitials(speciality)
	for _, code := range codes {
		foldedCode := utils.Fold(code)
		if foldedCode == "" {
			continue
		}
		if strings.Contains(folded, foldedCode) || foldedCode == acronym {
			return true
		}
	}
	return false
}

func wordInitials(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		for _, r := range word {
			b.WriteRune(unicode.ToLower(r))
			break
		}
	}
	return b.String()
}
