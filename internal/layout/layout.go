// Package layout renders a resume to PDF by flowing text blocks down the page
// with a single vertical cursor. Each template only changes the header block,
// the section heading decoration and the palette; sections always appear in
// the same order and a new page starts when the cursor passes BreakY.
package layout

import (
	"strings"

	"resume-builder/internal/catalog"
	"resume-builder/internal/model"
)

// Geometry in millimetres on an A4 page.
const (
	Margin          = 20.0
	BreakY          = 250.0
	ClassicBandH    = 50.0
	ClassicContentY = 60.0
	ContactBarH     = 15.0

	ptToMM = 25.4 / 72
)

type textOpts struct {
	size     float64
	bold     bool
	color    *catalog.RGB
	maxWidth float64
	center   bool
}

type cursor struct {
	c      Canvas
	tpl    catalog.Template
	labels Labels
	width  float64
	y      float64
}

// Draw lays r out on c using tpl. labels may be nil.
func Draw(c Canvas, tpl catalog.Template, r *model.Resume, labels Labels) {
	if labels == nil {
		labels = DefaultLabels()
	}
	l := &cursor{c: c, tpl: tpl, labels: labels, width: c.PageWidth(), y: Margin}

	switch tpl.ID {
	case catalog.Classic:
		l.classicHeader(r)
	case catalog.Modern:
		l.modernHeader(r)
	default:
		l.plainHeader(r)
	}

	c.SetDrawColor(catalog.Black)
	c.Line(Margin, l.y, l.width-Margin, l.y)
	l.y += 10

	// classic and modern already print the summary in the header
	if r.Summary != "" && tpl.ID != catalog.Classic && tpl.ID != catalog.Modern {
		l.section(SectionSummary)
		l.y = l.text(r.Summary, Margin, l.y, textOpts{}) + 15
	}

	if len(r.Experience) > 0 {
		l.section(SectionExperience)
		for _, exp := range r.Experience {
			l.breakPage()
			l.y = l.text(exp.Company, Margin, l.y, textOpts{size: 11, bold: true}) + 2
			l.y = l.text(exp.Position, Margin, l.y, textOpts{}) + 2
			end := exp.EndDate
			if end == "" && exp.StartDate != "" {
				end = "Present"
			}
			l.y = l.text(dateRange(exp.StartDate, end), Margin, l.y, textOpts{size: 9}) + 5
			if exp.Description != "" {
				l.y = l.text(exp.Description, Margin, l.y, textOpts{}) + 10
			}
		}
	}

	if len(r.Education) > 0 {
		l.section(SectionEducation)
		for _, edu := range r.Education {
			l.breakPage()
			l.y = l.text(edu.Degree, Margin, l.y, textOpts{size: 11, bold: true}) + 2
			l.y = l.text(edu.Institution, Margin, l.y, textOpts{}) + 2
			l.y = l.text(dateRange(edu.StartDate, edu.EndDate), Margin, l.y, textOpts{size: 9}) + 10
		}
	}

	if len(r.Skills) > 0 {
		l.section(SectionSkills)
		l.y = l.text(strings.Join(r.Skills, ", "), Margin, l.y, textOpts{}) + 10
	}

	if len(r.Projects) > 0 {
		l.section(SectionProjects)
		for _, p := range r.Projects {
			l.breakPage()
			l.y = l.text(p.DisplayName(), Margin, l.y, textOpts{size: 11, bold: true}) + 2
			if p.Technologies != "" {
				l.y = l.text(p.Technologies, Margin, l.y, textOpts{size: 9}) + 2
			}
			if p.Description != "" {
				l.y = l.text(p.Description, Margin, l.y, textOpts{}) + 8
			}
		}
	}

	if len(r.Social) > 0 {
		l.section(SectionLinks)
		for _, s := range r.Social {
			l.breakPage()
			line := s.URL
			if s.Platform != "" {
				line = s.Platform + ": " + s.URL
			}
			l.y = l.text(line, Margin, l.y, textOpts{}) + 5
		}
	}

	if len(r.Organizations) > 0 {
		l.section(SectionOrganizations)
		for _, o := range r.Organizations {
			l.breakPage()
			l.y = l.text(o.Name, Margin, l.y, textOpts{}) + 5
		}
	}

	if len(r.Certificates) > 0 {
		l.section(SectionCertificates)
		for _, cert := range r.Certificates {
			l.breakPage()
			l.y = l.text(cert.Name, Margin, l.y, textOpts{}) + 5
		}
	}

	if len(r.Languages) > 0 {
		l.section(SectionLanguages)
		for _, lang := range r.Languages {
			l.breakPage()
			l.y = l.text(dateRange(lang.Name, lang.Proficiency), Margin, l.y, textOpts{}) + 5
		}
	}

	if len(r.Interests) > 0 {
		l.section(SectionInterests)
		l.y = l.text(strings.Join(r.Interests, ", "), Margin, l.y, textOpts{}) + 10
	}
}

func (l *cursor) classicHeader(r *model.Resume) {
	if r.Personal == nil {
		return
	}
	st := l.tpl.Style
	l.c.SetFillColor(st.HeaderBg)
	l.c.FillRect(0, 0, l.width, ClassicBandH)

	p := r.Personal
	if p.FullName != "" {
		l.y = l.text(p.FullName, Margin, l.y+5, textOpts{size: 20, bold: true, color: &st.HeaderText}) + 2
	}
	if p.Position != "" {
		l.y = l.text(p.Position, Margin, l.y, textOpts{size: 12, color: &st.HeaderText}) + 2
	}
	if s := r.HeaderSummary(); s != "" {
		l.y = l.text(s, Margin, l.y, textOpts{color: &st.HeaderText}) + 10
	}

	l.y = ClassicContentY
	if contact := r.ContactLine(); contact != "" {
		l.y = l.text(contact, Margin, l.y, textOpts{}) + 5
	}
}

func (l *cursor) modernHeader(r *model.Resume) {
	if r.Personal == nil {
		return
	}
	st := l.tpl.Style
	mid := l.width / 2

	p := r.Personal
	if p.FullName != "" {
		l.y = l.text(p.FullName, mid, l.y, textOpts{size: 20, bold: true, center: true}) + 2
	}
	if p.Position != "" {
		l.y = l.text(p.Position, mid, l.y, textOpts{size: 12, color: &st.Accent, center: true}) + 2
	}
	if s := r.HeaderSummary(); s != "" {
		l.y = l.text(s, mid, l.y, textOpts{center: true}) + 5
	}

	if contact := r.ContactLine(); contact != "" {
		l.c.SetFillColor(st.ContactBarBg)
		l.c.FillRect(0, l.y, l.width, ContactBarH)
		white := catalog.White
		l.y = l.text(contact, mid, l.y+10, textOpts{color: &white, center: true}) + 10
	}
}

func (l *cursor) plainHeader(r *model.Resume) {
	if r.Personal == nil {
		return
	}
	st := l.tpl.Style

	p := r.Personal
	if p.FullName != "" {
		l.y = l.text(p.FullName, Margin, l.y, textOpts{size: 20, bold: true}) + 2
	}
	if p.Position != "" {
		l.y = l.text(p.Position, Margin, l.y, textOpts{size: 12, color: &st.Accent}) + 2
	}
	if s := r.HeaderSummary(); s != "" {
		l.y = l.text(s, Margin, l.y, textOpts{}) + 5
	}
	if contact := r.ContactLine(); contact != "" {
		l.y = l.text(contact, Margin, l.y, textOpts{}) + 15
	}
}

// section prints a heading, starting a new page first when the cursor is
// already past the break line.
func (l *cursor) section(key string) {
	l.breakPage()
	st := l.tpl.Style
	if l.tpl.ID == catalog.Minimal {
		l.c.SetFillColor(st.Accent)
		l.c.FillRect(Margin-5, l.y-5, 3, 12)
	}
	l.y = l.text(l.labels.Get(key), Margin, l.y, textOpts{size: 12, bold: true, color: &st.Section}) + 5
}

func (l *cursor) breakPage() {
	if l.y > BreakY {
		l.c.AddPage()
		l.y = Margin
	}
}

// text draws s wrapped to the content width and returns the cursor below the
// last line. Empty text draws nothing and leaves y unchanged.
func (l *cursor) text(s string, x, y float64, o textOpts) float64 {
	if s == "" {
		return y
	}
	if o.size == 0 {
		o.size = 10
	}
	if o.maxWidth == 0 {
		o.maxWidth = l.width - 2*Margin
	}
	color := l.tpl.Style.Text
	if o.color != nil {
		color = *o.color
	}
	lineHeight := o.size * 1.2 * ptToMM

	l.c.SetFont(o.bold, o.size)
	l.c.SetTextColor(color)

	lines := Wrap(l.c, s, o.maxWidth)
	for i, line := range lines {
		lx := x
		if o.center {
			lx = x - l.c.StringWidth(line)/2
		}
		l.c.Text(lx, y+float64(i)*lineHeight, line)
	}
	return y + float64(len(lines))*lineHeight
}

func dateRange(from, to string) string {
	switch {
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}

// Wrap breaks s into lines no wider than maxWidth as measured by c. Explicit
// newlines are kept; words wider than a line are split by rune.
func Wrap(c Canvas, s string, maxWidth float64) []string {
	var lines []string
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for c.StringWidth(w) > maxWidth {
				head, tail := splitWord(c, w, maxWidth)
				if tail == "" {
					break
				}
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, head)
				w = tail
			}
			if line == "" {
				line = w
				continue
			}
			if candidate := line + " " + w; c.StringWidth(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// splitWord returns the longest prefix of w (at least one rune) that fits.
func splitWord(c Canvas, w string, maxWidth float64) (head, tail string) {
	runes := []rune(w)
	n := 1
	for n < len(runes) && c.StringWidth(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
