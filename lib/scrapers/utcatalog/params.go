package utcatalog

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// SearchParams are the optional filters of the search endpoint. The zero
// value searches the whole catalogue. Unset fields are omitted from the
// outgoing query entirely, the upstream treats empty strings as filters.
//
// All the facet filters are AND searches, not OR.
type SearchParams struct {
	// Keyword becomes the `q` parameter.
	Keyword string
	// Institution becomes the `type` parameter, defaulting to all divisions.
	Institution Institution
	// Faculty becomes the `faculty_id` parameter.
	Faculty Faculty
	// Grades filters on eligible student years.
	Grades    []int
	Semesters []Semester
	Weekdays  []Weekday
	// Periods are 1-based as displayed on the site.
	Periods []int
	// Languages filters on the language-of-instruction codes.
	Languages []string
	// CrossPrograms filters on 横断型教育プログラム codes.
	CrossPrograms []string
	// PracticalExperience filters on courses taught by instructors with
	// practical work experience. nil means no filter.
	PracticalExperience *bool
	// SubjectNDC filters on the NDC subject classification.
	SubjectNDC []string
}

// facetQuery mirrors the site's `facet` parameter, a compact JSON object of
// string arrays. Field order matters to keep cache keys stable.
type facetQuery struct {
	CrossPrograms       []string `json:"uwide_cross_program_codes,omitempty"`
	Grades              []string `json:"grades_codes,omitempty"`
	Semesters           []string `json:"semester_codes,omitempty"`
	Periods             []string `json:"period_codes,omitempty"`
	Weekdays            []string `json:"wday_codes,omitempty"`
	Languages           []string `json:"course_language_codes,omitempty"`
	PracticalExperience []string `json:"operational_experience_flag,omitempty"`
	// not a typo, the upstream API spells this one without the plural
	SubjectNDC []string `json:"subject_code,omitempty"`
}

func (f facetQuery) empty() bool {
	return f.CrossPrograms == nil &&
		f.Grades == nil &&
		f.Semesters == nil &&
		f.Periods == nil &&
		f.Weekdays == nil &&
		f.Languages == nil &&
		f.PracticalExperience == nil &&
		f.SubjectNDC == nil
}

// Values serializes the params plus a page number into the query string the
// search endpoint expects.
func (p SearchParams) Values(page int) url.Values {
	v := url.Values{}

	institution := p.Institution
	if institution == "" {
		institution = AllInstitutions
	}
	v.Set("type", string(institution))
	v.Set("page", strconv.Itoa(page))

	if p.Keyword != "" {
		v.Set("q", p.Keyword)
	}
	if p.Faculty != FacultyUnknown {
		v.Set("faculty_id", strconv.Itoa(int(p.Faculty)))
	}

	facet := facetQuery{
		CrossPrograms: p.CrossPrograms,
		Languages:     p.Languages,
		SubjectNDC:    p.SubjectNDC,
	}
	for _, g := range p.Grades {
		facet.Grades = append(facet.Grades, strconv.Itoa(g))
	}
	for _, s := range p.Semesters {
		facet.Semesters = append(facet.Semesters, string(s))
	}
	for _, period := range p.Periods {
		// the site indexes periods from zero
		facet.Periods = append(facet.Periods, strconv.Itoa(period-1))
	}
	for _, w := range p.Weekdays {
		// weekday facet codes are 1000 + weekday*100
		facet.Weekdays = append(facet.Weekdays, strconv.Itoa(int(w)*100+1000))
	}
	if p.PracticalExperience != nil {
		// the upstream expects Python-style capitalized booleans here
		if *p.PracticalExperience {
			facet.PracticalExperience = []string{"True"}
		} else {
			facet.PracticalExperience = []string{"False"}
		}
	}

	if !facet.empty() {
		encoded, err := json.Marshal(facet)
		// marshalling a struct of string slices cannot fail
		if err == nil {
			v.Set("facet", string(encoded))
		}
	}

	return v
}
