package parser

import (
	"github.com/Fybex/naukma-schedule-parser/internal/models"
)

// registry is the nested speciality → subject → lesson accumulator built
// while walking a sheet. One registry is owned by one Assemble call;
// upsert is its only mutation path.
type registry map[string]map[string]models.Lesson

func newRegistry(specialities []string) registry {
	reg := make(registry, len(specialities))
	for _, speciality := range specialities {
		reg[speciality] = make(map[string]models.Lesson)
	}
	return reg
}

// upsert inserts item under speciality/subject. An existing entry that
// matches item on every field except the week set is replaced in place
// with the week-set union, so unrelated entries keep their order and no
// true duplicate is ever appended.
func (r registry) upsert(speciality, subject string, item models.ScheduleItem) {
	subjects, ok := r[speciality]
	if !ok {
		subjects = make(map[string]models.Lesson)
		r[speciality] = subjects
	}

	lesson := subjects[subject]
	for i, existing := range lesson {
		if existing.SameOccurrence(item) {
			lesson[i] = existing.MergeWeeks(item)
			subjects[subject] = lesson
			return
		}
	}
	subjects[subject] = append(lesson, item)
}
