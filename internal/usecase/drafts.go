package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resume-builder/internal/catalog"
	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
)

type DraftsRepo interface {
	Save(ctx context.Context, d *domain.Draft) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Drafts manages autosaved resumes. The stored resume is kept exactly as the
// editor sent it; blank entries the user is still filling in survive.
type Drafts struct {
	repo DraftsRepo
	now  func() time.Time
}

func NewDrafts(repo DraftsRepo) *Drafts {
	return &Drafts{repo: repo, now: time.Now}
}

func checkTemplate(id string) (string, error) {
	if id == "" {
		return catalog.Default, nil
	}
	if !catalog.Known(id) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, id)
	}
	return id, nil
}

// Create stores a new draft. An empty template selects the default one.
func (s *Drafts) Create(ctx context.Context, template string, r model.Resume) (*domain.Draft, error) {
	tpl, err := checkTemplate(template)
	if err != nil {
		return nil, err
	}
	if r.Personal == nil {
		r.Personal = &model.Personal{}
	}
	now := s.now().UTC()
	d := &domain.Draft{ID: uuid.New(), Template: tpl, Resume: r, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	slog.Info("drafts: created", "id", d.ID, "template", tpl)
	return d, nil
}

func (s *Drafts) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	return s.repo.Get(ctx, id)
}

// Save replaces the resume of an existing draft and keeps its template.
func (s *Drafts) Save(ctx context.Context, id uuid.UUID, r model.Resume) (*domain.Draft, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Resume = r
	d.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	slog.Debug("drafts: autosaved", "id", id)
	return d, nil
}

// SwitchTemplate changes only the template; the resume is untouched.
func (s *Drafts) SwitchTemplate(ctx context.Context, id uuid.UUID, template string) (*domain.Draft, error) {
	if template == "" || !catalog.Known(template) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, template)
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Template = template
	d.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	slog.Info("drafts: template switched", "id", id, "template", template)
	return d, nil
}

// Delete discards a draft, the server side of "start over".
func (s *Drafts) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("drafts: deleted", "id", id)
	return nil
}
