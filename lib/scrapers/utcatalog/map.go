package utcatalog

import (
	"strconv"
	"strings"

	"utcatalog-backend/lib/textutil"
)

// parseWeekdayPeriods turns the site's slot text into typed slots.
//
//	"月曜3限"            -> [{Mon 3}]
//	"月曜3限、木曜3限"    -> [{Mon 3} {Thu 3}]
//	"Mon 3"              -> [{Mon 3}] (English rendering, split at the
//	                        first whitespace boundary)
//	"集中"               -> none (intensive courses have no weekly slot)
//	"S1:集中、A1:月曜3限他" -> none (composite per-term forms are skipped)
func parseWeekdayPeriods(text string) []WeekdayPeriod {
	text = textutil.CollapseText(text)
	if text == "" || strings.Contains(text, ":") || strings.Contains(text, "：") {
		return nil
	}
	if strings.Contains(text, "集中") {
		return nil
	}

	var out []WeekdayPeriod
	for _, part := range strings.Split(text, "、") {
		if part == "" {
			return nil
		}
		weekdayPart := part
		if i := strings.IndexAny(part, " 　"); i >= 0 {
			weekdayPart = part[:i]
		}
		weekday, ok := ParseWeekday(weekdayPart)
		if !ok {
			continue
		}
		digits := digitsRegex.FindString(part)
		if digits == "" {
			continue
		}
		period, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		out = append(out, WeekdayPeriod{Weekday: weekday, Period: period})
	}
	return out
}

func parseSemesters(texts []string) []Semester {
	var out []Semester
	for _, t := range texts {
		s, ok := ParseSemester(t)
		if !ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

// parseCredits parses a credits cell, returning CreditsUnknown for
// placeholders like "TBD" instead of failing the record.
func parseCredits(text string) int {
	text = textutil.CollapseText(text)
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	// the site occasionally renders integral credit counts as decimals
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return CreditsUnknown
}

// mapSearchRow normalizes one raw search card into a typed item. Only the
// timetable code is required, everything else degrades to defaults.
func mapSearchRow(raw rawSearchRow) (SearchResultItem, error) {
	if raw.Code == "" {
		return SearchResultItem{}, &MappingError{Field: "code"}
	}
	return SearchResultItem{
		Code:       raw.Code,
		CommonCode: CommonCode(raw.CommonCode),
		Title:      raw.Title,
		Lecturer:   raw.Lecturer,
		Semesters:  parseSemesters(raw.Semesters),
		Periods:    parseWeekdayPeriods(raw.Period),
		Aim:        raw.Aim,
	}, nil
}

// mapDetail normalizes a raw detail page. As with search rows the timetable
// code is the only required field.
func mapDetail(raw rawDetail, year int) (CourseDetail, error) {
	if raw.Code == "" {
		return CourseDetail{}, &MappingError{Field: "code"}
	}

	faculty, err := FacultyFromName(raw.Faculty)
	if err != nil {
		faculty = FacultyUnknown
	}

	return CourseDetail{
		Code:       raw.Code,
		CommonCode: CommonCode(raw.CommonCode),
		Year:       year,
		Title:      raw.Title,
		Lecturer:   raw.Lecturer,
		Semesters:  parseSemesters(raw.Semesters),
		Periods:    parseWeekdayPeriods(raw.Period),
		Credits:    parseCredits(raw.Credits),
		// the cell reads 不可 when other faculties may not enroll
		OtherFacultyEligible: raw.OtherFaculty != "" && !strings.Contains(raw.OtherFaculty, "不可"),
		Language:             raw.Language,
		PracticalExperience:  strings.Contains(raw.PracticalExperience, "YES"),
		Faculty:              faculty,
		Aim:                  raw.Aim,
		Schedule:             raw.Cards["授業計画"],
		Methods:              raw.Cards["授業の方法"],
		Evaluation:           raw.Cards["成績評価方法"],
		Textbook:             raw.Cards["教科書"],
		Reference:            raw.Cards["参考書"],
		Notes:                raw.Cards["履修上の注意"],
		Links:                raw.Links,
	}, nil
}
