package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Options struct {
	AllowOrigins string
	BodyLimit    int
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(h *Handler, opts Options) *fiber.App {
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}
	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{ContextKey: requestIDKey}))
	app.Use(RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: opts.AllowOrigins}))

	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Get("/templates", h.Templates)
	api.Post("/generate-pdf", h.GeneratePDF)
	api.Post("/preview", h.Preview)
	api.Post("/print-pdf", h.PrintPDF)
	api.Post("/parse", h.Parse)

	drafts := api.Group("/drafts")
	drafts.Post("/", h.CreateDraft)
	drafts.Get("/:id", h.GetDraft)
	drafts.Put("/:id", h.SaveDraft)
	drafts.Put("/:id/template", h.SwitchTemplate)
	drafts.Delete("/:id", h.DeleteDraft)
	drafts.Get("/:id/export.xlsx", h.ExportDraft)

	return app
}
