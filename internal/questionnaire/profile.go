package questionnaire

import (
	"slices"
	"sort"
	"strconv"
)

// Profile describes the respondent. Empty Industry or Occupation and a nil
// Skills slice mean "not given".
type Profile struct {
	Industry        string   `json:"industry" yaml:"industry"`
	Occupation      string   `json:"occupation" yaml:"occupation"`
	ExperienceYears int      `json:"experience_years" yaml:"experience_years"`
	Skills          []string `json:"skills" yaml:"skills"`
}

// NewProfile validates every field against the profile domains. Skills are
// deduplicated and put in catalog order.
func NewProfile(industry, occupation string, years int, skills []string) (Profile, error) {
	if industry != "" && indexOf(Industries, industry) < 0 {
		return Profile{}, &InputError{Field: "industry", Value: industry}
	}
	if occupation != "" && indexOf(Occupations, occupation) < 0 {
		return Profile{}, &InputError{Field: "occupation", Value: occupation}
	}
	if years < MinExperience || years > MaxExperience {
		return Profile{}, &InputError{Field: "experience_years", Value: strconv.Itoa(years)}
	}

	seen := make(map[string]bool, len(skills))
	var normalized []string
	for _, s := range skills {
		if indexOf(Skills, s) < 0 {
			return Profile{}, &InputError{Field: "skill", Value: s}
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		normalized = append(normalized, s)
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return indexOf(Skills, normalized[i]) < indexOf(Skills, normalized[j])
	})

	return Profile{
		Industry:        industry,
		Occupation:      occupation,
		ExperienceYears: years,
		Skills:          normalized,
	}, nil
}

// Equal reports whether p and o describe the same respondent. Skills are
// compared in order, which NewProfile normalizes.
func (p Profile) Equal(o Profile) bool {
	return p.Industry == o.Industry &&
		p.Occupation == o.Occupation &&
		p.ExperienceYears == o.ExperienceYears &&
		slices.Equal(p.Skills, o.Skills)
}
