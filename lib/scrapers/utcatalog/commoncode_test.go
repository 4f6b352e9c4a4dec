package utcatalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommonCodeDecomposition(t *testing.T) {
	code := CommonCode("FSC-MA2301L1")

	institution, ok := code.Institution()
	require.True(t, ok)
	require.Equal(t, SeniorDivision, institution)

	faculty, err := code.Faculty()
	require.NoError(t, err)
	require.Equal(t, FacultyScience, faculty)

	require.Equal(t, "MA", code.DepartmentCode())
	require.Equal(t, "数学科", code.DepartmentName())
	require.Equal(t, "2", code.Level())
	require.Equal(t, "301", code.ReferenceNumber())

	form, ok := code.ClassForm()
	require.True(t, ok)
	require.Equal(t, Lecture, form)

	language, ok := code.Language()
	require.True(t, ok)
	require.Equal(t, Japanese, language)

	require.Equal(t, "MA", code.LargeCategory())
	require.Equal(t, "3", code.MiddleCategory())
	require.Equal(t, "01", code.SmallCategory())
}

func TestCommonCodeGraduate(t *testing.T) {
	code := CommonCode("GIF-CS5001L3")

	institution, ok := code.Institution()
	require.True(t, ok)
	require.Equal(t, Graduate, institution)

	faculty, err := code.Faculty()
	require.NoError(t, err)
	require.Equal(t, GradInformationScienceTech, faculty)
	require.Equal(t, "コンピュータ科学", code.DepartmentName())

	language, ok := code.Language()
	require.True(t, ok)
	require.Equal(t, English, language)
}

func TestCommonCodeJuniorDivision(t *testing.T) {
	code := CommonCode("CAS-GC1D23L1")

	institution, ok := code.Institution()
	require.True(t, ok)
	require.Equal(t, JuniorDivision, institution)

	faculty, err := code.Faculty()
	require.NoError(t, err)
	require.Equal(t, CollegeArtsSciencesJuniorDiv, faculty)
	require.Equal(t, "総合科目", code.DepartmentName())
}

func TestCommonCodeTooShort(t *testing.T) {
	code := CommonCode("FSC")

	institution, ok := code.Institution()
	require.True(t, ok)
	require.Equal(t, SeniorDivision, institution)

	require.Equal(t, "", code.DepartmentCode())
	require.Equal(t, "", code.ReferenceNumber())

	_, ok = code.ClassForm()
	require.False(t, ok)
	_, ok = code.Language()
	require.False(t, ok)
}

func TestFacultyFromName(t *testing.T) {
	faculty, err := FacultyFromName("理学部")
	require.NoError(t, err)
	require.Equal(t, FacultyScience, faculty)

	// the detail page spells the junior division with parentheses
	faculty, err = FacultyFromName("教養学部（前期課程）")
	require.NoError(t, err)
	require.Equal(t, CollegeArtsSciencesJuniorDiv, faculty)

	_, err = FacultyFromName("謎の学部")
	require.Error(t, err)
}
