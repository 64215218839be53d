package utils

import (
	"sort"

	"github.com/Fybex/naukma-schedule-parser/internal/models"
)

// TeacherLesson is one occurrence family seen from a teacher's point of
// view.
type TeacherLesson struct {
	Faculty    string              `json:"faculty"`
	Speciality string              `json:"speciality"`
	Subject    string              `json:"subject"`
	Item       models.ScheduleItem `json:"item"`
}

// BuildTeacherIndex inverts parsed schedules into a per-teacher view. Map
// keys are walked in sorted order so repeated runs over the same input
// produce identical lesson ordering.
func BuildTeacherIndex(schedules models.FacultySchedules) map[string][]TeacherLesson {
	index := make(map[string][]TeacherLesson)

	faculties := make([]string, 0, len(schedules))
	for faculty := range schedules {
		faculties = append(faculties, faculty)
	}
	sort.Strings(faculties)

	for _, faculty := range faculties {
		for _, schedule := range schedules[faculty] {
			subjects := make([]string, 0, len(schedule.Subjects))
			for subject := range schedule.Subjects {
				subjects = append(subjects, subject)
			}
			sort.Strings(subjects)

			for _, subject := range subjects {
				for _, item := range schedule.Subjects[subject] {
					for _, teacher := range item.Teachers {
						index[teacher] = append(index[teacher], TeacherLesson{
							Faculty:    faculty,
							Speciality: schedule.Speciality,
							Subject:    subject,
							Item:       item,
						})
					}
				}
			}
		}
	}
	return index
}
