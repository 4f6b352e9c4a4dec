package utcatalog

import (
	"fmt"

	"utcatalog-backend/lib/textutil"
)

// Faculty is the numeric id the catalogue assigns to each faculty and
// graduate school, it maps directly onto the `faculty_id` query parameter.
type Faculty int

const (
	FacultyUnknown Faculty = 0

	FacultyLaw                    Faculty = 1  // 法学部
	FacultyMedicine               Faculty = 2  // 医学部
	FacultyEngineering            Faculty = 3  // 工学部
	FacultyLetters                Faculty = 4  // 文学部
	FacultyScience                Faculty = 5  // 理学部
	FacultyAgriculture            Faculty = 6  // 農学部
	FacultyEconomics              Faculty = 7  // 経済学部
	FacultyArtsAndSciences        Faculty = 8  // 教養学部
	FacultyEducation              Faculty = 9  // 教育学部
	FacultyPharmaceutical         Faculty = 10 // 薬学部
	GradHumanitiesSociology       Faculty = 11 // 人文社会系研究科
	GradEducation                 Faculty = 12 // 教育学研究科
	GradLawPolitics               Faculty = 13 // 法学政治学研究科
	GradEconomics                 Faculty = 14 // 経済学研究科
	GradArtsSciences              Faculty = 15 // 総合文化研究科
	GradScience                   Faculty = 16 // 理学系研究科
	GradEngineering               Faculty = 17 // 工学系研究科
	GradAgriculturalLifeSciences  Faculty = 18 // 農学生命科学研究科
	GradMedicine                  Faculty = 19 // 医学系研究科
	GradPharmaceutical            Faculty = 20 // 薬学系研究科
	GradMathematicalSciences      Faculty = 21 // 数理科学研究科
	GradFrontierSciences          Faculty = 22 // 新領域創成科学研究科
	GradInformationScienceTech    Faculty = 23 // 情報理工学系研究科
	GradInterdisciplinaryInfo     Faculty = 24 // 学際情報学府
	GradPublicPolicy              Faculty = 25 // 公共政策学教育部
	CollegeArtsSciencesJuniorDiv  Faculty = 26 // 教養学部前期課程
)

var facultyNames = map[Faculty]string{
	FacultyLaw:                   "法学部",
	FacultyMedicine:              "医学部",
	FacultyEngineering:           "工学部",
	FacultyLetters:               "文学部",
	FacultyScience:               "理学部",
	FacultyAgriculture:           "農学部",
	FacultyEconomics:             "経済学部",
	FacultyArtsAndSciences:       "教養学部",
	FacultyEducation:             "教育学部",
	FacultyPharmaceutical:        "薬学部",
	GradHumanitiesSociology:      "人文社会系研究科",
	GradEducation:                "教育学研究科",
	GradLawPolitics:              "法学政治学研究科",
	GradEconomics:                "経済学研究科",
	GradArtsSciences:             "総合文化研究科",
	GradScience:                  "理学系研究科",
	GradEngineering:              "工学系研究科",
	GradAgriculturalLifeSciences: "農学生命科学研究科",
	GradMedicine:                 "医学系研究科",
	GradPharmaceutical:           "薬学系研究科",
	GradMathematicalSciences:     "数理科学研究科",
	GradFrontierSciences:         "新領域創成科学研究科",
	GradInformationScienceTech:   "情報理工学系研究科",
	GradInterdisciplinaryInfo:    "学際情報学府",
	GradPublicPolicy:             "公共政策学教育部",
	CollegeArtsSciencesJuniorDiv: "教養学部前期課程",
}

func (f Faculty) String() string {
	name, ok := facultyNames[f]
	if !ok {
		return fmt.Sprintf("Faculty(%d)", int(f))
	}
	return name
}

// FacultyFromName converts a display name found on the website into a
// Faculty. The detail page writes the junior division with parentheses,
// which differs from the search form's spelling.
func FacultyFromName(name string) (Faculty, error) {
	name = textutil.CollapseText(name)
	for f, n := range facultyNames {
		if n == name {
			return f, nil
		}
	}
	if name == "教養学部（前期課程）" {
		return CollegeArtsSciencesJuniorDiv, nil
	}
	return FacultyUnknown, fmt.Errorf("unknown faculty name: %q", name)
}
