// Package parser turns an uploaded resume document into a resume record.
// When a remote parsing service is configured the document is forwarded to
// it. Otherwise PDFs are read locally and mapped with simple heuristics.
package parser

import (
	"context"
	"fmt"
	"log/slog"

	"resume-builder/internal/model"
)

type Config struct {
	// Endpoint of the remote parsing service. Empty selects local parsing.
	Endpoint string
	APIKey   string
	MaxBytes int64
}

type Service struct {
	remote   *Client
	maxBytes int64
}

func New(cfg Config, remote *Client) *Service {
	if remote == nil && cfg.Endpoint != "" {
		remote = NewClient(cfg.Endpoint, cfg.APIKey, 0)
	}
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return &Service{remote: remote, maxBytes: limit}
}

// Remote reports whether uploads are forwarded to a parsing service.
func (s *Service) Remote() bool { return s.remote != nil }

// Parse validates u and returns the normalized resume found in it. A single
// attempt is made against the remote service.
func (s *Service) Parse(ctx context.Context, u Upload) (model.Resume, error) {
	kind, err := Check(u, s.maxBytes)
	if err != nil {
		return model.Resume{}, err
	}

	var r model.Resume
	if s.remote != nil {
		r, err = s.remote.Parse(ctx, u)
		if err != nil {
			slog.Warn("parser: remote parse failed", "file", u.Filename, "error", err)
			return model.Resume{}, err
		}
	} else {
		if kind != KindPDF {
			return model.Resume{}, fmt.Errorf("%w: %s needs a parsing service", ErrUnsupportedType, kind)
		}
		text, err := pdfText(u.Data)
		if err != nil {
			return model.Resume{}, err
		}
		r = ExtractFields(text)
	}

	r.Normalize()
	if r.Personal == nil {
		r.Personal = &model.Personal{}
	}
	slog.Info("parser: document parsed", "file", u.Filename, "kind", kind, "remote", s.remote != nil,
		"experience", len(r.Experience), "skills", len(r.Skills))
	return r, nil
}
