package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fybex/naukma-schedule-parser/internal/models"
)

func TestBuildTeacherIndex(t *testing.T) {
	item := models.ScheduleItem{
		Kind:     models.Lecture,
		Time:     models.TimeSlot{Start: "9:30", End: "11:05"},
		Weeks:    []int{1, 2},
		Day:      models.Monday,
		Teachers: []string{"доц. Іваненко О.П.", "ас. Петренко І.В."},
	}
	schedules := models.FacultySchedules{
		"Факультет інформатики": {
			{
				Speciality: "Комп'ютерні науки",
				Subjects:   map[string]models.Lesson{"Алгебра": {item}},
			},
		},
	}

	index := BuildTeacherIndex(schedules)

	require.Len(t, index, 2)
	lessons := index["доц. Іваненко О.П."]
	require.Len(t, lessons, 1)
	assert.Equal(t, "Факультет інформатики", lessons[0].Faculty)
	assert.Equal(t, "Комп'ютерні науки", lessons[0].Speciality)
	assert.Equal(t, "Алгебра", lessons[0].Subject)
	assert.Equal(t, []int{1, 2}, lessons[0].Item.Weeks)
}

func TestBuildTeacherIndex_SkipsTeacherlessItems(t *testing.T) {
	schedules := models.FacultySchedules{
		"": {
			{
				Speciality: "Фізика",
				Subjects: map[string]models.Lesson{
					"Семінар": {{Kind: models.Unknown, Teachers: []string{}}},
				},
			},
		},
	}
	assert.Empty(t, BuildTeacherIndex(schedules))
}
