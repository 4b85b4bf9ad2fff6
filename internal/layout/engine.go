package layout

import (
	"errors"
	"fmt"
	"io"
	"time"

	"resume-builder/internal/catalog"
	"resume-builder/internal/model"
)

// ErrRender wraps failures reported by the PDF writer.
var ErrRender = errors.New("pdf rendering failed")

// Engine renders resumes to PDF documents.
type Engine struct {
	// Now stamps document creation dates; nil means time.Now.
	Now func() time.Time
}

func NewEngine() *Engine { return &Engine{} }

// Result describes a rendered document.
type Result struct {
	Template string
	Pages    int
}

// Render writes the PDF for r in the template named templateID to w. Unknown
// template ids render with the default template.
func (e *Engine) Render(w io.Writer, templateID string, r *model.Resume, labels Labels) (Result, error) {
	tpl, _ := catalog.Lookup(templateID)

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	c := newPDFCanvas(now())
	if r.Personal != nil {
		c.setTitle(r.Personal.FullName)
	}

	Draw(c, tpl, r, labels)

	if err := c.output(w); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return Result{Template: tpl.ID, Pages: c.pages()}, nil
}
