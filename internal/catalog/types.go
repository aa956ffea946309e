package catalog

import "fmt"

// Specialization identifies one professional track.
type Specialization string

const (
	Accounting          Specialization = "accounting"
	DigitalMarketing    Specialization = "digital_marketing"
	ProjectManagement   Specialization = "project_management"
	BusinessDevelopment Specialization = "business_development"
	Entrepreneurship    Specialization = "entrepreneurship"
	Finance             Specialization = "finance"
	Investment          Specialization = "investment"
)

// AllSpecializations returns every known identifier, including ones
// without a catalog entry.
func AllSpecializations() []Specialization {
	return []Specialization{
		Accounting,
		DigitalMarketing,
		ProjectManagement,
		BusinessDevelopment,
		Entrepreneurship,
		Finance,
		Investment,
	}
}

// ParseSpecialization converts a string into a known Specialization.
func ParseSpecialization(s string) (Specialization, error) {
	for _, sp := range AllSpecializations() {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("unknown specialization %q", s)
}

// Language is the UI and content language of a session.
type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
)

// DefaultLanguage is used for new sessions.
const DefaultLanguage = Arabic

// ParseLanguage accepts "ar" or "en".
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case Arabic, English:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Name returns the English name of the language, as used in prompts.
func (l Language) Name() string {
	if l == Arabic {
		return "Arabic"
	}
	return "English"
}

// Text is a bilingual string.
type Text struct {
	AR string `yaml:"ar" json:"ar"`
	EN string `yaml:"en" json:"en"`
}

// In returns the text for the given language.
func (t Text) In(lang Language) string {
	if lang == Arabic {
		return t.AR
	}
	return t.EN
}

// TextList is a bilingual ordered list.
type TextList struct {
	AR []string `yaml:"ar" json:"ar"`
	EN []string `yaml:"en" json:"en"`
}

// In returns the list for the given language.
func (t TextList) In(lang Language) []string {
	if lang == Arabic {
		return t.AR
	}
	return t.EN
}

// Level is one stage of a track's roadmap.
type Level struct {
	ID      int      `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Modules []string `yaml:"modules" json:"modules"`
}

// Info is the static descriptive record of a specialization.
type Info struct {
	ID               Specialization `yaml:"id" json:"id"`
	Title            Text           `yaml:"title" json:"title"`
	Description      Text           `yaml:"description" json:"description"`
	Responsibilities Text           `yaml:"responsibilities" json:"responsibilities"`
	Demand2026       Text           `yaml:"demand_2026" json:"demand2026"`
	CareerPath       TextList       `yaml:"career_path" json:"careerPath"`
	Skills           []string       `yaml:"skills" json:"skills"`
	Roadmap          []Level        `yaml:"roadmap" json:"roadmap"`
}

// RoadmapLevels is the fixed number of levels in every roadmap.
const RoadmapLevels = 3
