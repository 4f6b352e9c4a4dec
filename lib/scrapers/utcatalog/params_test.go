package utcatalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuesDefaults(t *testing.T) {
	v := SearchParams{}.Values(1)

	require.Equal(t, "all", v.Get("type"))
	require.Equal(t, "1", v.Get("page"))
	require.False(t, v.Has("q"))
	require.False(t, v.Has("faculty_id"))
	require.False(t, v.Has("facet"))
}

func TestValuesKeywordAndFaculty(t *testing.T) {
	v := SearchParams{
		Keyword:     "量子力学",
		Institution: SeniorDivision,
		Faculty:     FacultyScience,
	}.Values(3)

	require.Equal(t, "ug", v.Get("type"))
	require.Equal(t, "3", v.Get("page"))
	require.Equal(t, "量子力学", v.Get("q"))
	require.Equal(t, "5", v.Get("faculty_id"))
}

func TestValuesFacet(t *testing.T) {
	practical := true
	v := SearchParams{
		Grades:              []int{3},
		Semesters:           []Semester{SemesterA1},
		Weekdays:            []Weekday{Mon},
		Periods:             []int{3},
		PracticalExperience: &practical,
	}.Values(1)

	// grade codes pass through, periods shift to zero-based, weekday codes
	// are 1000 + weekday*100, and booleans render Python-style
	require.Equal(t,
		`{"grades_codes":["3"],"semester_codes":["A1"],"period_codes":["2"],"wday_codes":["1000"],"operational_experience_flag":["True"]}`,
		v.Get("facet"))
}

func TestValuesFacetPracticalExperienceFalse(t *testing.T) {
	practical := false
	v := SearchParams{PracticalExperience: &practical}.Values(1)

	require.Equal(t, `{"operational_experience_flag":["False"]}`, v.Get("facet"))
}

func TestValuesFacetWeekdayCodes(t *testing.T) {
	v := SearchParams{Weekdays: []Weekday{Mon, Wed, Sat}}.Values(1)

	require.Equal(t, `{"wday_codes":["1000","1200","1500"]}`, v.Get("facet"))
}
