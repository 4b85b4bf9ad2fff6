package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/layout"
	"resume-builder/internal/model"
	"resume-builder/internal/parser"
	"resume-builder/internal/preview"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeBrowser struct{}

func (fakeBrowser) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.4 " + html[:10]), nil
}

type brokenEngine struct{}

func (brokenEngine) Render(io.Writer, string, *model.Resume, layout.Labels) (layout.Result, error) {
	return layout.Result{}, layout.ErrRender
}

type setup struct {
	engine  usecase.PDFEngine
	browser usecase.Renderer
	parser  *parser.Service
}

func newApp(t *testing.T, s setup) *fiber.App {
	t.Helper()
	pv, err := preview.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if s.engine == nil {
		s.engine = &layout.Engine{Now: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }}
	}
	if s.parser == nil {
		s.parser = parser.New(parser.Config{}, nil)
	}
	h := NewHandler(
		usecase.NewExporter(s.engine, pv, s.browser),
		usecase.NewDrafts(repository.NewMemoryDraftsRepo()),
		s.parser,
	)
	return NewApp(h, Options{})
}

func do(t *testing.T, app *fiber.App, method, path, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	return do(t, app, method, path, fiber.MIMEApplicationJSON, strings.NewReader(body))
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

const resumeBody = `{"template":"modern","personal":{"fullName":"John Doe","email":"john.doe@email.com"},"experience":[{"company":"Tech Corp","position":"Senior Software Engineer","startDate":"2021-01"}],"skills":["Go","SQL"]}`

func TestHealthAndTemplates(t *testing.T) {
	app := newApp(t, setup{})

	resp := do(t, app, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response carries no request id")
	}

	templates := decode[[]map[string]any](t, do(t, app, http.MethodGet, "/api/templates", "", nil))
	var ids []string
	for _, tpl := range templates {
		ids = append(ids, tpl["id"].(string))
	}
	if strings.Join(ids, ",") != "classic,modern,minimal,creative" {
		t.Errorf("template ids = %v", ids)
	}
}

func TestGeneratePDF(t *testing.T) {
	app := newApp(t, setup{})
	resp := doJSON(t, app, http.MethodPost, "/api/generate-pdf", resumeBody)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentType); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); got != "attachment; filename=resume.pdf" {
		t.Errorf("Content-Disposition = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Errorf("body is not a PDF: %.20q", body)
	}
}

func TestGeneratePDFFailure(t *testing.T) {
	app := newApp(t, setup{engine: brokenEngine{}})
	resp := doJSON(t, app, http.MethodPost, "/api/generate-pdf", resumeBody)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["error"] != "Failed to generate PDF" {
		t.Errorf("error = %v", body["error"])
	}
	if body["requestId"] == "" || body["requestId"] == nil {
		t.Error("error body has no request id")
	}
}

func TestGeneratePDFInvalidBody(t *testing.T) {
	app := newApp(t, setup{})
	resp := doJSON(t, app, http.MethodPost, "/api/generate-pdf", `{"skills":"Go","experience":{}}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[ApiError](t, resp)
	if len(body.Violations) < 2 {
		t.Errorf("violations = %q", body.Violations)
	}
}

func TestPreview(t *testing.T) {
	app := newApp(t, setup{})
	resp := doJSON(t, app, http.MethodPost, "/api/preview", resumeBody)
	defer resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html") {
		t.Errorf("Content-Type = %q", resp.Header.Get(fiber.HeaderContentType))
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "tpl-modern") || !strings.Contains(string(body), "John Doe") {
		t.Errorf("unexpected preview: %.200s", body)
	}
}

func TestPrintPDF(t *testing.T) {
	resp := doJSON(t, newApp(t, setup{}), http.MethodPost, "/api/print-pdf", resumeBody)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("without browser status = %d", resp.StatusCode)
	}

	resp = doJSON(t, newApp(t, setup{browser: fakeBrowser{}}), http.MethodPost, "/api/print-pdf", resumeBody)
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get(fiber.HeaderContentType) != "application/pdf" {
		t.Fatalf("status = %d, type = %q", resp.StatusCode, resp.Header.Get(fiber.HeaderContentType))
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Errorf("body = %.20q", body)
	}
}

func upload(t *testing.T, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(data)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestParse(t *testing.T) {
	small := parser.New(parser.Config{MaxBytes: 16}, nil)
	tests := []struct {
		name     string
		filename string
		data     []byte
		parser   *parser.Service
		want     int
	}{
		{"no file", "", nil, nil, fiber.StatusBadRequest},
		{"text file", "cv.txt", []byte("hello"), nil, fiber.StatusUnsupportedMediaType},
		{"word without parsing service", "cv.docx", []byte("PK\x03\x04 docx"), nil, fiber.StatusUnsupportedMediaType},
		{"too large", "cv.pdf", []byte("%PDF-1.4 and a lot more bytes"), small, fiber.StatusRequestEntityTooLarge},
		{"corrupt pdf", "cv.pdf", []byte("%PDF-1.4 this is not really a pdf"), nil, fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(t, setup{parser: tt.parser})
			body, ct := upload(t, tt.filename, tt.data)
			resp := do(t, app, http.MethodPost, "/api/parse", ct, body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestParseScratch(t *testing.T) {
	app := newApp(t, setup{})
	resp := do(t, app, http.MethodPost, "/api/parse?scratch=1", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[map[string]any](t, resp)
	for _, key := range []string{"experience", "education", "skills", "social"} {
		if list, ok := got[key].([]any); !ok || len(list) != 0 {
			t.Errorf("%s = %#v, want []", key, got[key])
		}
	}
	personal, ok := got["personal"].(map[string]any)
	if !ok {
		t.Fatalf("personal = %#v", got["personal"])
	}
	if name, ok := personal["fullName"]; !ok || name != "" {
		t.Errorf("personal.fullName = %#v, want \"\"", name)
	}
}

func TestDraftLifecycle(t *testing.T) {
	app := newApp(t, setup{})

	resp := doJSON(t, app, http.MethodPost, "/api/drafts", `{"template":"classic","resume":{"personal":{"fullName":"John Doe"},"skills":["Go",""]}}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[domain.Draft](t, resp)
	base := "/api/drafts/" + created.ID.String()

	resp = doJSON(t, app, http.MethodPut, base, `{"resume":{"personal":{"fullName":"John Doe"},"summary":"Builder.","skills":["Go",""]}}`)
	saved := decode[domain.Draft](t, resp)
	if saved.Template != "classic" || saved.Resume.Summary != "Builder." {
		t.Errorf("autosave = %+v", saved)
	}
	before, _ := json.Marshal(saved.Resume)

	resp = doJSON(t, app, http.MethodPut, base+"/template", `{"template":"creative"}`)
	switched := decode[domain.Draft](t, resp)
	after, _ := json.Marshal(switched.Resume)
	if switched.Template != "creative" || !bytes.Equal(before, after) {
		t.Errorf("switch template changed data:\n%s\n%s", before, after)
	}

	resp = doJSON(t, app, http.MethodPut, base+"/template", `{"template":"fancy"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("unknown template status = %d", resp.StatusCode)
	}

	resp = do(t, app, http.MethodGet, base+"/export.xlsx", "", nil)
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get(fiber.HeaderContentType) != mimeXLSX {
		t.Errorf("export status = %d, type = %q", resp.StatusCode, resp.Header.Get(fiber.HeaderContentType))
	}

	resp = do(t, app, http.MethodDelete, base, "", nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, app, http.MethodGet, base, "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
}

func TestDraftErrors(t *testing.T) {
	app := newApp(t, setup{})
	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"bad id", http.MethodGet, "/api/drafts/not-a-uuid", "", fiber.StatusBadRequest},
		{"unknown template", http.MethodPost, "/api/drafts", `{"template":"fancy"}`, fiber.StatusBadRequest},
		{"invalid resume", http.MethodPost, "/api/drafts", `{"resume":{"skills":"Go"}}`, fiber.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/drafts", `{`, fiber.StatusBadRequest},
		{"missing draft", http.MethodPut, "/api/drafts/9b2f6a1e-8f7d-4c39-9d3e-0b1c2d3e4f50", `{"resume":{}}`, fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestToApiError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{parser.ErrRemote, fiber.StatusBadGateway},
		{parser.ErrNoText, fiber.StatusUnprocessableEntity},
		{domain.ErrDraftNotFound, fiber.StatusNotFound},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := toApiError(tt.err).Code; got != tt.want {
			t.Errorf("toApiError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
