package models

import (
	"slices"
	"sort"
)

// DayOfWeek is a day's canonical display name as it appears in the source
// documents.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Понеділок"
	Tuesday   DayOfWeek = "Вівторок"
	Wednesday DayOfWeek = "Середа"
	Thursday  DayOfWeek = "Четвер"
	Friday    DayOfWeek = "П'ятниця"
	Saturday  DayOfWeek = "Субота"
)

// Days lists the weekdays in declared order. Fuzzy day matching scans this
// slice front to back, so when several days fall within the typo threshold
// the first declared one wins.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// LessonKind classifies a lesson row. Only Practice carries a group number.
type LessonKind string

const (
	Lecture  LessonKind = "лекція"
	Practice LessonKind = "практика"
	Unknown  LessonKind = "невизначено"
)

// TimeSlot is a start/end pair of clock-time strings. The engine never
// validates them beyond splitting the source cell.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleItem is one concrete lesson occurrence. Group is set only for
// Practice items whose group number could be determined.
type ScheduleItem struct {
	Kind     LessonKind `json:"type"`
	Group    *int       `json:"group"`
	Time     TimeSlot   `json:"time"`
	Weeks    []int      `json:"weeks"`
	Location string     `json:"location"`
	Day      DayOfWeek  `json:"day"`
	Teachers []string   `json:"teachers"`
}

// SameOccurrence reports whether other belongs to the same occurrence
// family as i: equal on every field except the week set.
func (i ScheduleItem) SameOccurrence(other ScheduleItem) bool {
	if i.Kind != other.Kind || i.Time != other.Time ||
		i.Location != other.Location || i.Day != other.Day {
		return false
	}
	if (i.Group == nil) != (other.Group == nil) {
		return false
	}
	if i.Group != nil && *i.Group != *other.Group {
		return false
	}
	return slices.Equal(i.Teachers, other.Teachers)
}

// MergeWeeks returns a copy of i whose week set is the sorted, deduplicated
// union of both items' weeks.
func (i ScheduleItem) MergeWeeks(other ScheduleItem) ScheduleItem {
	seen := make(map[int]bool, len(i.Weeks)+len(other.Weeks))
	weeks := make([]int, 0, len(i.Weeks)+len(other.Weeks))
	for _, w := range i.Weeks {
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	for _, w := range other.Weeks {
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Ints(weeks)

	merged := i
	merged.Weeks = weeks
	return merged
}

// Lesson holds all occurrence families of one subject within one
// speciality.
type Lesson []ScheduleItem

// Schedule is one speciality's timetable.
type Schedule struct {
	Speciality string            `json:"speciality"`
	Semester   *string           `json:"semester"`
	Subjects   map[string]Lesson `json:"subjects"`
}

// FacultySchedules maps a faculty name to the schedules of its
// specialities. An unrecognized faculty is keyed under "".
type FacultySchedules map[string][]Schedule

// Merge folds other into f. When two documents claim the same faculty key
// the entry from other wins, matching the shallow dictionary merge the
// legacy pipeline performed.
func (f FacultySchedules) Merge(other FacultySchedules) {
	for faculty, schedules := range other {
		f[faculty] = schedules
	}
}
