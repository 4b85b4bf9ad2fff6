package domain

import (
	"errors"
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrUnknownTemplate = errors.New("unknown template")
)

// Draft is a resume being edited together with the template it is shown in.
// It is what the editor autosaves and what "start over" deletes.
type Draft struct {
	ID        uuid.UUID    `json:"id"`
	Template  string       `json:"template"`
	Resume    model.Resume `json:"resume"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
