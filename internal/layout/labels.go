package layout

// Section keys accepted in a Labels override.
const (
	SectionSummary       = "summary"
	SectionExperience    = "experience"
	SectionEducation     = "education"
	SectionSkills        = "skills"
	SectionProjects      = "projects"
	SectionLinks         = "links"
	SectionOrganizations = "organizations"
	SectionCertificates  = "certificates"
	SectionLanguages     = "languages"
	SectionInterests     = "interests"
)

// Labels maps a section key to the heading printed for it.
type Labels map[string]string

// DefaultLabels returns the English headings.
func DefaultLabels() Labels {
	return Labels{
		SectionSummary:       "SUMMARY",
		SectionExperience:    "WORK EXPERIENCE",
		SectionEducation:     "EDUCATION",
		SectionSkills:        "SKILLS",
		SectionProjects:      "PERSONAL PROJECTS",
		SectionLinks:         "LINKS",
		SectionOrganizations: "ORGANIZATIONS",
		SectionCertificates:  "CERTIFICATES",
		SectionLanguages:     "LANGUAGES",
		SectionInterests:     "INTERESTS",
	}
}

// Merge returns the defaults with any non-empty override applied. Unknown
// keys are ignored.
func (l Labels) Merge(overrides map[string]string) Labels {
	out := Labels{}
	for k, v := range l {
		out[k] = v
	}
	for k, v := range overrides {
		if _, ok := out[k]; ok && v != "" {
			out[k] = v
		}
	}
	return out
}

// Get returns the heading for key, falling back to the English default.
func (l Labels) Get(key string) string {
	if v := l[key]; v != "" {
		return v
	}
	return DefaultLabels()[key]
}
