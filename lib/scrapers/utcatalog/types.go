package utcatalog

import (
	"strconv"
	"strings"

	"utcatalog-backend/lib/htmlutil"
	"utcatalog-backend/lib/timezone"
)

// PageSize is the fixed number of search result cards the catalogue renders
// per page.
const PageSize = 10

// CreditsUnknown marks a credits field whose cell text could not be parsed
// as a number (the site occasionally renders placeholders there).
const CreditsUnknown = -1

type Weekday int

const (
	Mon Weekday = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var weekdayKanji = []rune("月火水木金土日")
var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (w Weekday) String() string {
	if w < Mon || w > Sun {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNames[w]
}

// Kanji returns the single character the site uses for this weekday.
func (w Weekday) Kanji() string {
	if w < Mon || w > Sun {
		return "?"
	}
	return string(weekdayKanji[w])
}

// ParseWeekday recognizes both the site's kanji ("月", or a longer form like
// "月曜") and English abbreviations ("Mon").
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for i, k := range weekdayKanji {
		if strings.ContainsRune(s, k) {
			return Weekday(i), true
		}
	}
	for i, n := range weekdayNames {
		if strings.HasPrefix(s, n) {
			return Weekday(i), true
		}
	}
	return 0, false
}

// Semester is one of the five terms a course may run in.
type Semester string

const (
	SemesterS1 Semester = "S1"
	SemesterS2 Semester = "S2"
	SemesterA1 Semester = "A1"
	SemesterA2 Semester = "A2"
	SemesterW  Semester = "W"
)

func ParseSemester(s string) (Semester, bool) {
	switch Semester(strings.TrimSpace(s)) {
	case SemesterS1, SemesterS2, SemesterA1, SemesterA2, SemesterW:
		return Semester(strings.TrimSpace(s)), true
	}
	return "", false
}

// Institution selects the division searched over, it maps directly onto the
// catalogue's `type` query parameter.
type Institution string

const (
	JuniorDivision  Institution = "jd"
	SeniorDivision  Institution = "ug"
	Graduate        Institution = "g"
	AllInstitutions Institution = "all"
)

// Language of instruction as encoded in the common course code.
type Language string

const (
	Japanese           Language = "ja"
	English            Language = "en"
	JapaneseAndEnglish Language = "ja,en"
	OtherLanguagesToo  Language = "other"
	OnlyOtherLanguages Language = "only_other"
	OtherLanguage      Language = "others"
)

// ClassForm as encoded in the common course code.
type ClassForm string

const (
	Lecture          ClassForm = "L"
	Seminar          ClassForm = "S"
	Experiment       ClassForm = "E"
	Practicum        ClassForm = "P"
	GraduationThesis ClassForm = "T"
	OtherForm        ClassForm = "Z"
)

// WeekdayPeriod is one weekly slot, e.g. 月曜3限 is {Mon, 3}.
type WeekdayPeriod struct {
	Weekday Weekday
	Period  int
}

func (wp WeekdayPeriod) String() string {
	return wp.Weekday.String() + " " + strconv.Itoa(wp.Period)
}

// SearchResultItem is one card of a search listing. Constructed once per
// parsed row and never mutated afterwards.
type SearchResultItem struct {
	// Code is the timetable code (時間割コード), the identifier the detail
	// endpoint is keyed on.
	Code       string
	CommonCode CommonCode
	Title      string
	Lecturer   string
	Semesters  []Semester
	Periods    []WeekdayPeriod
	// Aim is the short course description shown on the card (ねらい).
	Aim string
}

// SearchResult is one page of a search listing plus the pagination metadata
// the site reports alongside it. Indexes are 1-based as displayed.
type SearchResult struct {
	Items        []SearchResultItem
	FirstIndex   int
	LastIndex    int
	CurrentCount int
	TotalCount   int
	CurrentPage  int
	TotalPages   int
}

// CourseDetail is the full record of one course detail page.
type CourseDetail struct {
	Code       string
	CommonCode CommonCode
	Year       int
	Title      string
	Lecturer   string
	Semesters  []Semester
	Periods    []WeekdayPeriod
	// Credits is CreditsUnknown when the cell did not hold a number.
	Credits              int
	OtherFacultyEligible bool
	Language             string
	PracticalExperience  bool
	Faculty              Faculty
	// Aim is the course objective blurb (ねらい).
	Aim string

	// syllabus cards, empty when the corresponding card is absent
	Schedule   string // 授業計画
	Methods    string // 授業の方法
	Evaluation string // 成績評価方法
	Textbook   string // 教科書
	Reference  string // 参考書
	Notes      string // 履修上の注意

	Links []htmlutil.Anchor
}

// CurrentFiscalYear returns the academic year the catalogue currently serves,
// the Japanese fiscal year starts in April.
func CurrentFiscalYear() int {
	now := timezone.Now()
	if now.Month() >= 4 {
		return now.Year()
	}
	return now.Year() - 1
}
