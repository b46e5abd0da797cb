package repository

import (
	"context"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Character persists player snapshots. Load returns
// domain.ErrCharacterNotFound for an unknown id. SaveMany is all-or-nothing:
// either every snapshot is written or none is.
type Character interface {
	Load(ctx context.Context, id string) (domain.CharacterSnapshot, error)
	Save(ctx context.Context, snapshot domain.CharacterSnapshot) error
	SaveMany(ctx context.Context, snapshots []domain.CharacterSnapshot) error
}
