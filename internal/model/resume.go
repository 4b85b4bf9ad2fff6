package model

import (
	"strings"

	"github.com/google/uuid"
)

// Go models that match resume.schema.json. Every field is optional: a resume
// is edited incrementally and may be exported at any point.

type Personal struct {
	FullName string `json:"fullName,omitempty"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

type Experience struct {
	ID          string `json:"id,omitempty"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

type Project struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

type SocialLink struct {
	ID       string `json:"id,omitempty"`
	Platform string `json:"platform,omitempty"`
	URL      string `json:"url,omitempty"`
}

type Organization struct {
	Name string `json:"name,omitempty"`
}

type Certificate struct {
	Name string `json:"name,omitempty"`
}

type Language struct {
	Name        string `json:"name,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

type Resume struct {
	Personal      *Personal      `json:"personal,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Experience    []Experience   `json:"experience,omitempty"`
	Education     []Education    `json:"education,omitempty"`
	Skills        []string       `json:"skills,omitempty"`
	Projects      []Project      `json:"projects,omitempty"`
	Social        []SocialLink   `json:"social,omitempty"`
	Organizations []Organization `json:"organizations,omitempty"`
	Certificates  []Certificate  `json:"certificates,omitempty"`
	Languages     []Language     `json:"languages,omitempty"`
	Interests     []string       `json:"interests,omitempty"`
}

// Empty returns the record used when a user starts from scratch.
func Empty() Resume {
	return Resume{
		Personal:   &Personal{},
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []string{},
		Social:     []SocialLink{},
	}
}

// Scratch is the wire form of Empty. Unlike Resume it keeps every personal
// key and the editor's lists when they hold nothing.
type Scratch struct {
	Personal struct {
		FullName string `json:"fullName"`
		Position string `json:"position"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	} `json:"personal"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	Social     []SocialLink `json:"social"`
}

// ScratchRecord returns Empty in the shape a new editor session expects.
func ScratchRecord() Scratch {
	return Scratch{
		Experience: []Experience{},
		Education:  []Education{},
		Skills:     []string{},
		Social:     []SocialLink{},
	}
}

// HeaderSummary is the pitch shown in template headers: the personal summary
// when present, otherwise the top-level summary.
func (r *Resume) HeaderSummary() string {
	if r.Personal != nil && r.Personal.Summary != "" {
		return r.Personal.Summary
	}
	return r.Summary
}

// ContactLine joins e-mail and phone with " | ", skipping absent parts.
func (r *Resume) ContactLine() string {
	if r.Personal == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	if r.Personal.Email != "" {
		parts = append(parts, r.Personal.Email)
	}
	if r.Personal.Phone != "" {
		parts = append(parts, r.Personal.Phone)
	}
	return strings.Join(parts, " | ")
}

// DisplayName prefers Name and falls back to Title.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Title
}

// Normalize trims every string, drops list entries that carry no content and
// assigns ids to entries the editor keys by id. It is idempotent.
func (r *Resume) Normalize() {
	if r.Personal != nil {
		p := r.Personal
		p.FullName = strings.TrimSpace(p.FullName)
		p.Position = strings.TrimSpace(p.Position)
		p.Email = strings.TrimSpace(p.Email)
		p.Phone = strings.TrimSpace(p.Phone)
		p.Address = strings.TrimSpace(p.Address)
		p.Summary = strings.TrimSpace(p.Summary)
	}
	r.Summary = strings.TrimSpace(r.Summary)

	exp := r.Experience[:0]
	for _, e := range r.Experience {
		e.Company = strings.TrimSpace(e.Company)
		e.Position = strings.TrimSpace(e.Position)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		e.Description = strings.TrimSpace(e.Description)
		if e.Company == "" && e.Position == "" && e.Description == "" {
			continue
		}
		e.ID = ensureID(e.ID)
		exp = append(exp, e)
	}
	r.Experience = exp

	edu := r.Education[:0]
	for _, e := range r.Education {
		e.Institution = strings.TrimSpace(e.Institution)
		e.Degree = strings.TrimSpace(e.Degree)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		if e.Institution == "" && e.Degree == "" {
			continue
		}
		e.ID = ensureID(e.ID)
		edu = append(edu, e)
	}
	r.Education = edu

	prj := r.Projects[:0]
	for _, p := range r.Projects {
		p.Name = strings.TrimSpace(p.Name)
		p.Title = strings.TrimSpace(p.Title)
		p.Description = strings.TrimSpace(p.Description)
		p.Technologies = strings.TrimSpace(p.Technologies)
		p.Link = strings.TrimSpace(p.Link)
		if p.DisplayName() == "" && p.Description == "" {
			continue
		}
		p.ID = ensureID(p.ID)
		prj = append(prj, p)
	}
	r.Projects = prj

	soc := r.Social[:0]
	for _, s := range r.Social {
		s.Platform = strings.TrimSpace(s.Platform)
		s.URL = strings.TrimSpace(s.URL)
		if s.URL == "" {
			continue
		}
		s.ID = ensureID(s.ID)
		soc = append(soc, s)
	}
	r.Social = soc

	orgs := r.Organizations[:0]
	for _, o := range r.Organizations {
		if o.Name = strings.TrimSpace(o.Name); o.Name != "" {
			orgs = append(orgs, o)
		}
	}
	r.Organizations = orgs

	certs := r.Certificates[:0]
	for _, c := range r.Certificates {
		if c.Name = strings.TrimSpace(c.Name); c.Name != "" {
			certs = append(certs, c)
		}
	}
	r.Certificates = certs

	langs := r.Languages[:0]
	for _, l := range r.Languages {
		l.Name = strings.TrimSpace(l.Name)
		l.Proficiency = strings.TrimSpace(l.Proficiency)
		if l.Name != "" {
			langs = append(langs, l)
		}
	}
	r.Languages = langs

	r.Skills = compactStrings(r.Skills)
	r.Interests = compactStrings(r.Interests)
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func compactStrings(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of r.
func (r Resume) Clone() Resume {
	out := r
	if r.Personal != nil {
		p := *r.Personal
		out.Personal = &p
	}
	out.Experience = cloneSlice(r.Experience)
	out.Education = cloneSlice(r.Education)
	out.Skills = cloneSlice(r.Skills)
	out.Projects = cloneSlice(r.Projects)
	out.Social = cloneSlice(r.Social)
	out.Organizations = cloneSlice(r.Organizations)
	out.Certificates = cloneSlice(r.Certificates)
	out.Languages = cloneSlice(r.Languages)
	out.Interests = cloneSlice(r.Interests)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
