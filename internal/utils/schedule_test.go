package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fybex/naukma-schedule-parser/internal/models"
)

func TestDetectDay_ExactLowercaseNames(t *testing.T) {
	for _, day := range models.Days {
		got, ok := DetectDay(string(day))
		assert.True(t, ok, "day %q", day)
		assert.Equal(t, day, got)
	}
}

func TestDetectDay_ToleratesOneTypo(t *testing.T) {
	cases := []struct {
		cell string
		want models.DayOfWeek
	}{
		{"поніділок", models.Monday},  // substitution
		{"понеділо", models.Monday},   // deletion
		{"середда", models.Wednesday}, // insertion
		{"П’ятниця", models.Friday},   // typographic apostrophe repaired, case costs the edit
		{" субота \n", models.Saturday},
	}
	for _, tc := range cases {
		got, ok := DetectDay(tc.cell)
		assert.True(t, ok, "cell %q", tc.cell)
		assert.Equal(t, tc.want, got, "cell %q", tc.cell)
	}
}

func TestDetectDay_RejectsTwoOrMoreEdits(t *testing.T) {
	for _, cell := range []string{"сіредда", "поніділак", "9:30-11:05", "Розклад занять"} {
		_, ok := DetectDay(cell)
		assert.False(t, ok, "cell %q", cell)
	}
}

func TestDetectDay_EmptyCell(t *testing.T) {
	_, ok := DetectDay("")
	assert.False(t, ok)
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("9:30-11:05")
	require.NoError(t, err)
	assert.Equal(t, models.TimeSlot{Start: "9:30", End: "11:05"}, slot)

	slot, err = ParseTimeSlot(" 16:20 - 17:55 ")
	require.NoError(t, err)
	assert.Equal(t, models.TimeSlot{Start: "16:20", End: "17:55"}, slot)
}

func TestParseTimeSlot_Malformed(t *testing.T) {
	for _, cell := range []string{"9:30", "", "9-30-11"} {
		_, err := ParseTimeSlot(cell)
		assert.ErrorIs(t, err, ErrMalformedTimeSlot, "cell %q", cell)
	}
}

func TestParseWeeks(t *testing.T) {
	weeks, err := ParseWeeks("1-3,5,7-9")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 5, 7, 8, 9}, weeks)
}

func TestParseWeeks_SortsAndDeduplicates(t *testing.T) {
	weeks, err := ParseWeeks("4,2,1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, weeks)

	weeks, err = ParseWeeks("1-3, 2, 3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, weeks)
}

func TestParseWeeks_Malformed(t *testing.T) {
	for _, cell := range []string{"", "1,абв", "5-3", "1-3-5", "1;2"} {
		_, err := ParseWeeks(cell)
		assert.ErrorIs(t, err, ErrMalformedWeekSpec, "cell %q", cell)
	}
}

func TestParseLessonKindAndGroup(t *testing.T) {
	kind, group := ParseLessonKindAndGroup("лекція")
	assert.Equal(t, models.Lecture, kind)
	assert.Nil(t, group)

	kind, group = ParseLessonKindAndGroup("Лекція")
	assert.Equal(t, models.Lecture, kind)
	assert.Nil(t, group)

	kind, group = ParseLessonKindAndGroup("2 підгрупа")
	assert.Equal(t, models.Practice, kind)
	require.NotNil(t, group)
	assert.Equal(t, 2, *group)

	kind, group = ParseLessonKindAndGroup("семінар")
	assert.Equal(t, models.Unknown, kind)
	assert.Nil(t, group)
}

func TestParseLessonKindAndGroup_EmptyCellIsUnknown(t *testing.T) {
	kind, group := ParseLessonKindAndGroup("")
	assert.Equal(t, models.Unknown, kind)
	assert.Nil(t, group)
}

func TestExtractSpecialities(t *testing.T) {
	raw := `Спеціальність «Комп'ютерні науки» та "Прикладна математика"`
	assert.Equal(t,
		[]string{"Комп'ютерні науки", "Прикладна математика"},
		ExtractSpecialities(raw))
}

func TestExtractSpecialities_EmptyInput(t *testing.T) {
	assert.Empty(t, ExtractSpecialities(""))
	assert.Empty(t, ExtractSpecialities("Спеціальність без лапок"))
}
