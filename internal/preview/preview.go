// Package preview renders the HTML version of a resume: the live preview the
// editor shows and the page a headless browser prints for "print to PDF".
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"resume-builder/internal/catalog"
	"resume-builder/internal/layout"
	"resume-builder/internal/model"

	"github.com/yuin/goldmark"
	"golang.org/x/net/publicsuffix"
)

//go:embed templates/resume.html.tmpl templates/style.css
var files embed.FS

type Renderer struct {
	page *template.Template
	css  string
	md   goldmark.Markdown
}

func NewRenderer() (*Renderer, error) {
	page, err := template.ParseFS(files, "templates/resume.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}
	css, err := files.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("read preview stylesheet: %w", err)
	}
	return &Renderer{page: page, css: string(css), md: goldmark.New()}, nil
}

type entry struct {
	Company, Position, Dates string
	Description              template.HTML
}

type school struct {
	Degree, Institution, Dates string
}

type project struct {
	Name, Technologies, Link string
	Description              template.HTML
}

type link struct {
	Platform, URL, Label string
}

type view struct {
	Template      catalog.Template
	CSS           template.CSS
	HasPersonal   bool
	Personal      model.Personal
	Contact       bool
	HeaderSummary template.HTML
	Summary       template.HTML
	Experience    []entry
	Education     []school
	Skills        []string
	Projects      []project
	Social        []link
	Organizations []string
	Certificates  []string
	Languages     []string
	Interests     []string

	labels layout.Labels
}

func (v *view) Heading(key string) string { return v.labels.Get(key) }

// Render writes a self-contained HTML page for r. The stylesheet is inlined
// so the page can be saved or printed without further requests.
func (r *Renderer) Render(w io.Writer, templateID string, res *model.Resume, labels layout.Labels) error {
	tpl, _ := catalog.Lookup(templateID)
	if labels == nil {
		labels = layout.DefaultLabels()
	}

	v := &view{
		Template: tpl,
		CSS:      template.CSS(paletteCSS(tpl.Style) + r.css),
		Skills:   res.Skills,
		labels:   labels,
	}

	if res.Personal != nil {
		v.HasPersonal = true
		v.Personal = *res.Personal
		v.Contact = res.Personal.Email != "" || res.Personal.Phone != "" || res.Personal.Address != ""
	}
	v.HeaderSummary = r.markdown(res.HeaderSummary())
	// classic and modern already show the summary in the header
	if tpl.ID != catalog.Classic && tpl.ID != catalog.Modern {
		v.Summary = r.markdown(res.Summary)
	}

	for _, e := range res.Experience {
		end := e.EndDate
		if end == "" && e.StartDate != "" {
			end = "Present"
		}
		v.Experience = append(v.Experience, entry{
			Company:     e.Company,
			Position:    e.Position,
			Dates:       joinDash(e.StartDate, end),
			Description: r.markdown(e.Description),
		})
	}
	for _, e := range res.Education {
		v.Education = append(v.Education, school{Degree: e.Degree, Institution: e.Institution, Dates: joinDash(e.StartDate, e.EndDate)})
	}
	for _, p := range res.Projects {
		v.Projects = append(v.Projects, project{
			Name:         p.DisplayName(),
			Technologies: p.Technologies,
			Link:         p.Link,
			Description:  r.markdown(p.Description),
		})
	}
	for _, s := range res.Social {
		v.Social = append(v.Social, link{Platform: s.Platform, URL: s.URL, Label: URLLabel(s.URL)})
	}
	for _, o := range res.Organizations {
		v.Organizations = append(v.Organizations, o.Name)
	}
	for _, c := range res.Certificates {
		v.Certificates = append(v.Certificates, c.Name)
	}
	for _, l := range res.Languages {
		v.Languages = append(v.Languages, joinDash(l.Name, l.Proficiency))
	}
	v.Interests = res.Interests

	return r.page.Execute(w, v)
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(templateID string, res *model.Resume, labels layout.Labels) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, templateID, res, labels); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// markdown converts light Markdown to HTML. Raw HTML in the source is
// omitted by goldmark's default renderer.
func (r *Renderer) markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// URLLabel returns a short human label for a link: the registrable domain
// followed by the path, without scheme or "www.".
func URLLabel(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	// eTLD+1 keeps user subdomains on public suffixes such as github.io
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = etld
	}
	if p := strings.TrimSuffix(u.EscapedPath(), "/"); p != "" {
		label += p
	}
	return label
}

func paletteCSS(s catalog.Style) string {
	return fmt.Sprintf(":root{--header-bg:%s;--header-text:%s;--accent:%s;--section:%s;--text:%s;--contact-bar:%s}\n",
		rgb(s.HeaderBg), rgb(s.HeaderText), rgb(s.Accent), rgb(s.Section), rgb(s.Text), rgb(s.ContactBarBg))
}

func rgb(c catalog.RGB) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

func joinDash(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " - " + b
	}
}
