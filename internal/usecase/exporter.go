package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/export"
	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/internal/preview"
)

// ErrNoBrowser is returned by PrintPDF when no headless browser is configured.
var ErrNoBrowser = errors.New("browser print is not available")

// Renderer prints an HTML document to PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ExportRequest is the body shared by the export routes: the resume fields
// at top level plus the chosen template and optional heading overrides.
type ExportRequest struct {
	Template string
	Labels   map[string]string
	Resume   model.Resume
}

// DecodeExportRequest validates raw against the resume schema and decodes it.
func DecodeExportRequest(raw []byte) (ExportRequest, error) {
	if err := model.Validate(raw); err != nil {
		return ExportRequest{}, err
	}
	var opts struct {
		Template string            `json:"template"`
		Labels   map[string]string `json:"labels"`
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		return ExportRequest{}, fmt.Errorf("%w: %v", model.ErrInvalidResume, err)
	}
	var r model.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return ExportRequest{}, fmt.Errorf("%w: %v", model.ErrInvalidResume, err)
	}
	return ExportRequest{Template: opts.Template, Labels: opts.Labels, Resume: r}, nil
}

func (req ExportRequest) labels() layout.Labels {
	return layout.DefaultLabels().Merge(req.Labels)
}

// prepared returns a normalized copy of the resume so callers keep theirs.
func (req ExportRequest) prepared() *model.Resume {
	r := req.Resume.Clone()
	r.Normalize()
	return &r
}

// PDFEngine draws a resume as a PDF document.
type PDFEngine interface {
	Render(w io.Writer, templateID string, r *model.Resume, labels layout.Labels) (layout.Result, error)
}

// Exporter produces the downloadable forms of a resume.
type Exporter struct {
	engine  PDFEngine
	preview *preview.Renderer
	browser Renderer
}

// NewExporter wires the exporters. browser may be nil, which disables
// PrintPDF.
func NewExporter(engine PDFEngine, pv *preview.Renderer, browser Renderer) *Exporter {
	return &Exporter{engine: engine, preview: pv, browser: browser}
}

// PDF draws the resume with the built-in layout engine.
func (e *Exporter) PDF(w io.Writer, req ExportRequest) (layout.Result, error) {
	start := time.Now()
	res, err := e.engine.Render(w, req.Template, req.prepared(), req.labels())
	if err != nil {
		return layout.Result{}, err
	}
	slog.Info("exporter: pdf generated", "template", res.Template, "pages", res.Pages, "duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

// HTML writes the preview page.
func (e *Exporter) HTML(w io.Writer, req ExportRequest) error {
	return e.preview.Render(w, req.Template, req.prepared(), req.labels())
}

// PrintPDF prints the preview page through the headless browser.
func (e *Exporter) PrintPDF(ctx context.Context, req ExportRequest) ([]byte, error) {
	if e.browser == nil {
		return nil, ErrNoBrowser
	}
	html, err := e.preview.RenderString(req.Template, req.prepared(), req.labels())
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	start := time.Now()
	pdf, err := e.browser.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	slog.Info("exporter: browser pdf printed", "template", req.Template, "bytes", len(pdf), "duration_ms", time.Since(start).Milliseconds())
	return pdf, nil
}

// Spreadsheet writes the draft as an .xlsx workbook.
func (e *Exporter) Spreadsheet(w io.Writer, d *domain.Draft) error {
	return export.WriteDraft(w, d)
}
