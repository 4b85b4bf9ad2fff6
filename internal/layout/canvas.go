package layout

import (
	"io"
	"time"

	"resume-builder/internal/catalog"

	"github.com/go-pdf/fpdf"
)

// Canvas is the imperative drawing surface the layout writes to. Units are
// millimetres with the origin at the top-left corner of the current page;
// font sizes are points.
type Canvas interface {
	PageWidth() float64
	AddPage()
	SetFont(bold bool, size float64)
	SetTextColor(c catalog.RGB)
	SetFillColor(c catalog.RGB)
	SetDrawColor(c catalog.RGB)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	// Text draws s with its baseline at y.
	Text(x, y float64, s string)
	// StringWidth measures s in the current font.
	StringWidth(s string) float64
}

const fontFamily = "Helvetica"

// pdfCanvas draws on an A4 fpdf document using the core Helvetica font.
// Text is translated to cp1252 since core fonts carry no Unicode tables.
type pdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(created time.Time) *pdfCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("resume-builder", true)
	pdf.SetCatalogSort(true)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
		pdf.SetModificationDate(created)
	}
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 10)
	return &pdfCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *pdfCanvas) PageWidth() float64 {
	w, _ := c.pdf.GetPageSize()
	return w
}

func (c *pdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *pdfCanvas) SetFont(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *pdfCanvas) SetTextColor(rgb catalog.RGB) { c.pdf.SetTextColor(rgb[0], rgb[1], rgb[2]) }
func (c *pdfCanvas) SetFillColor(rgb catalog.RGB) { c.pdf.SetFillColor(rgb[0], rgb[1], rgb[2]) }
func (c *pdfCanvas) SetDrawColor(rgb catalog.RGB) { c.pdf.SetDrawColor(rgb[0], rgb[1], rgb[2]) }

func (c *pdfCanvas) FillRect(x, y, w, h float64) { c.pdf.Rect(x, y, w, h, "F") }

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) { c.pdf.Line(x1, y1, x2, y2) }

func (c *pdfCanvas) Text(x, y float64, s string) { c.pdf.Text(x, y, c.tr(s)) }

func (c *pdfCanvas) StringWidth(s string) float64 { return c.pdf.GetStringWidth(c.tr(s)) }

func (c *pdfCanvas) setTitle(title string) {
	if title != "" {
		c.pdf.SetTitle(title, true)
		c.pdf.SetAuthor(title, true)
	}
}

func (c *pdfCanvas) pages() int { return c.pdf.PageCount() }

func (c *pdfCanvas) output(w io.Writer) error {
	return c.pdf.Output(w)
}
