package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"resume-builder/internal/catalog"
	"resume-builder/internal/model"
	"resume-builder/internal/parser"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	exporter *usecase.Exporter
	drafts   *usecase.Drafts
	parser   *parser.Service
}

func NewHandler(e *usecase.Exporter, d *usecase.Drafts, p *parser.Service) *Handler {
	return &Handler{exporter: e, drafts: d, parser: p}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Templates(c *fiber.Ctx) error {
	return c.JSON(catalog.All())
}

// GeneratePDF answers with the resume drawn by the layout engine. Any
// rendering failure is reported with a fixed message.
func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	req, err := usecase.DecodeExportRequest(c.Body())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := h.exporter.PDF(&buf, req); err != nil {
		slog.Error("generate pdf failed", "error", err, "template", req.Template, "request_id", requestID(c))
		return NewApiError(fiber.StatusInternalServerError, "Failed to generate PDF", "")
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=resume.pdf")
	return c.Send(buf.Bytes())
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	req, err := usecase.DecodeExportRequest(c.Body())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.exporter.HTML(&buf, req); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// PrintPDF is the server side of the browser's print dialog: the preview
// page printed by headless Chrome.
func (h *Handler) PrintPDF(c *fiber.Ctx) error {
	req, err := usecase.DecodeExportRequest(c.Body())
	if err != nil {
		return err
	}
	pdf, err := h.exporter.PrintPDF(c.UserContext(), req)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=resume.pdf")
	return c.Send(pdf)
}

// Parse extracts a resume from an uploaded document. "scratch" skips the
// upload and returns an empty resume.
func (h *Handler) Parse(c *fiber.Ctx) error {
	if s := c.FormValue("scratch"); s == "true" || s == "1" {
		return c.JSON(model.ScratchRecord())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return parser.ErrNoFile
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	r, err := h.parser.Parse(c.UserContext(), parser.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func draftID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, ErrBadRequest("invalid draft id")
	}
	return id, nil
}

// decodeResume validates and decodes an embedded resume. An absent resume is
// the empty one.
func decodeResume(raw json.RawMessage) (model.Resume, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return model.Empty(), nil
	}
	if err := model.Validate(raw); err != nil {
		return model.Resume{}, err
	}
	var r model.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return model.Resume{}, ErrBadRequest(err.Error())
	}
	return r, nil
}

type draftBody struct {
	Template string          `json:"template"`
	Resume   json.RawMessage `json:"resume"`
}

func parseDraftBody(c *fiber.Ctx) (draftBody, error) {
	var body draftBody
	if len(c.Body()) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return body, ErrBadRequest("invalid payload")
	}
	return body, nil
}

func (h *Handler) CreateDraft(c *fiber.Ctx) error {
	body, err := parseDraftBody(c)
	if err != nil {
		return err
	}
	r, err := decodeResume(body.Resume)
	if err != nil {
		return err
	}
	d, err := h.drafts.Create(c.UserContext(), body.Template, r)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	d, err := h.drafts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// SaveDraft is the autosave endpoint.
func (h *Handler) SaveDraft(c *fiber.Ctx) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	body, err := parseDraftBody(c)
	if err != nil {
		return err
	}
	r, err := decodeResume(body.Resume)
	if err != nil {
		return err
	}
	d, err := h.drafts.Save(c.UserContext(), id, r)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) SwitchTemplate(c *fiber.Ctx) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	body, err := parseDraftBody(c)
	if err != nil {
		return err
	}
	d, err := h.drafts.SwitchTemplate(c.UserContext(), id, body.Template)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *Handler) DeleteDraft(c *fiber.Ctx) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	if err := h.drafts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ExportDraft(c *fiber.Ctx) error {
	id, err := draftID(c)
	if err != nil {
		return err
	}
	d, err := h.drafts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.exporter.Spreadsheet(&buf, d); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=resume.xlsx")
	return c.Send(buf.Bytes())
}
