package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DraftsRepo stores drafts in the drafts table; the resume lives in a jsonb
// column so the editor's shape can evolve without migrations.
type DraftsRepo struct {
	pool *pgxpool.Pool
}

func NewDraftsRepo(pool *pgxpool.Pool) *DraftsRepo {
	return &DraftsRepo{pool: pool}
}

func (r *DraftsRepo) Save(ctx context.Context, d *domain.Draft) error {
	data, err := json.Marshal(d.Resume)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", d.ID, err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO drafts (id, template, data, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET template = EXCLUDED.template, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		d.ID, d.Template, data, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert draft %s: %w", d.ID, err)
	}
	return nil
}

func (r *DraftsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var (
		d    domain.Draft
		data []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, template, data, created_at, updated_at FROM drafts WHERE id = $1`, id).
		Scan(&d.ID, &d.Template, &data, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select draft %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &d.Resume); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (r *DraftsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}
