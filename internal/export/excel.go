// Package export writes drafts to spreadsheet form.
package export

import (
	"fmt"
	"io"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order. Sections without content get no sheet,
// except Profile which is always present.
const (
	SheetProfile       = "Profile"
	SheetExperience    = "Experience"
	SheetEducation     = "Education"
	SheetSkills        = "Skills"
	SheetProjects      = "Projects"
	SheetLinks         = "Links"
	SheetOrganizations = "Organizations"
	SheetCertificates  = "Certificates"
	SheetLanguages     = "Languages"
	SheetInterests     = "Interests"
)

type table struct {
	name   string
	header []interface{}
	rows   [][]interface{}
	widths []float64
}

// WriteDraft writes d as an .xlsx workbook with one sheet per section.
func WriteDraft(w io.Writer, d *domain.Draft) error {
	f := excelize.NewFile()
	defer f.Close()

	tables := tablesFor(d)
	if err := f.SetSheetName("Sheet1", SheetProfile); err != nil {
		return fmt.Errorf("rename profile sheet: %w", err)
	}
	for _, t := range tables[1:] {
		if _, err := f.NewSheet(t.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", t.name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"475569"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	for _, t := range tables {
		if err := writeTable(f, t, headerStyle, wrapStyle); err != nil {
			return fmt.Errorf("write sheet %s: %w", t.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, t table, headerStyle, wrapStyle int) error {
	if err := f.SetSheetRow(t.name, "A1", &t.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.name, cell, &row); err != nil {
			return err
		}
	}
	if len(t.rows) > 0 {
		end, err := excelize.CoordinatesToCellName(len(t.header), len(t.rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(t.name, "A2", end, wrapStyle); err != nil {
			return err
		}
	}

	for i, width := range t.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func tablesFor(d *domain.Draft) []table {
	r := d.Resume
	p := model.Personal{}
	if r.Personal != nil {
		p = *r.Personal
	}

	profile := table{
		name:   SheetProfile,
		header: []interface{}{"Field", "Value"},
		widths: []float64{18, 80},
		rows: [][]interface{}{
			{"Full name", p.FullName},
			{"Position", p.Position},
			{"Email", p.Email},
			{"Phone", p.Phone},
			{"Address", p.Address},
			{"Summary", r.HeaderSummary()},
			{"Template", d.Template},
			{"Updated", d.UpdatedAt.UTC().Format("2006-01-02 15:04:05")},
		},
	}
	tables := []table{profile}

	add := func(t table) {
		if len(t.rows) > 0 {
			tables = append(tables, t)
		}
	}

	exp := table{name: SheetExperience, header: []interface{}{"Company", "Position", "Start", "End", "Description"}, widths: []float64{24, 24, 12, 12, 70}}
	for _, e := range r.Experience {
		exp.rows = append(exp.rows, []interface{}{e.Company, e.Position, e.StartDate, e.EndDate, e.Description})
	}
	add(exp)

	edu := table{name: SheetEducation, header: []interface{}{"Institution", "Degree", "Start", "End"}, widths: []float64{32, 32, 12, 12}}
	for _, e := range r.Education {
		edu.rows = append(edu.rows, []interface{}{e.Institution, e.Degree, e.StartDate, e.EndDate})
	}
	add(edu)

	add(list(SheetSkills, "Skill", r.Skills))

	prj := table{name: SheetProjects, header: []interface{}{"Name", "Technologies", "Link", "Description"}, widths: []float64{24, 28, 36, 60}}
	for _, p := range r.Projects {
		prj.rows = append(prj.rows, []interface{}{p.DisplayName(), p.Technologies, p.Link, p.Description})
	}
	add(prj)

	links := table{name: SheetLinks, header: []interface{}{"Platform", "URL"}, widths: []float64{18, 60}}
	for _, s := range r.Social {
		links.rows = append(links.rows, []interface{}{s.Platform, s.URL})
	}
	add(links)

	var orgs, certs []string
	for _, o := range r.Organizations {
		orgs = append(orgs, o.Name)
	}
	for _, c := range r.Certificates {
		certs = append(certs, c.Name)
	}
	add(list(SheetOrganizations, "Organization", orgs))
	add(list(SheetCertificates, "Certificate", certs))

	langs := table{name: SheetLanguages, header: []interface{}{"Language", "Proficiency"}, widths: []float64{24, 24}}
	for _, l := range r.Languages {
		langs.rows = append(langs.rows, []interface{}{l.Name, l.Proficiency})
	}
	add(langs)

	add(list(SheetInterests, "Interest", r.Interests))
	return tables
}

func list(name, header string, items []string) table {
	t := table{name: name, header: []interface{}{header}, widths: []float64{40}}
	for _, s := range items {
		t.rows = append(t.rows, []interface{}{s})
	}
	return t
}
