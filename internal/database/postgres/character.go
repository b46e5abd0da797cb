// Package postgres stores character snapshots and the event log in PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/logger"
)

const selectCharacter = `
	SELECT id, name, level, experience, hp, mp, gold, position_x, position_y,
	       attributes, inventory, equipment, skills, quests
	FROM characters
	WHERE id = $1`

const upsertCharacter = `
	INSERT INTO characters (id, name, level, experience, hp, mp, gold, position_x, position_y,
	                        attributes, inventory, equipment, skills, quests, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		level = EXCLUDED.level,
		experience = EXCLUDED.experience,
		hp = EXCLUDED.hp,
		mp = EXCLUDED.mp,
		gold = EXCLUDED.gold,
		position_x = EXCLUDED.position_x,
		position_y = EXCLUDED.position_y,
		attributes = EXCLUDED.attributes,
		inventory = EXCLUDED.inventory,
		equipment = EXCLUDED.equipment,
		skills = EXCLUDED.skills,
		quests = EXCLUDED.quests,
		updated_at = NOW()`

// CharacterRepository implements repository.Character for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Load reads one snapshot. Unknown ids return domain.ErrCharacterNotFound.
func (r *CharacterRepository) Load(ctx context.Context, id string) (domain.CharacterSnapshot, error) {
	var (
		s                                            domain.CharacterSnapshot
		attributes, inventory, equipment, skills, qs []byte
	)
	err := r.db.QueryRow(ctx, selectCharacter, id).Scan(
		&s.ID, &s.Name, &s.Level, &s.Experience, &s.Hp, &s.Mp, &s.Gold,
		&s.Position.X, &s.Position.Y,
		&attributes, &inventory, &equipment, &skills, &qs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CharacterSnapshot{}, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, id)
	}
	if err != nil {
		return domain.CharacterSnapshot{}, fmt.Errorf("%s %s: %w", ErrMsgFailedToLoadCharacter, id, err)
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{attributes, &s.Attributes},
		{inventory, &s.Inventory},
		{equipment, &s.Equipment},
		{skills, &s.Skills},
		{qs, &s.Quests},
	} {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return domain.CharacterSnapshot{}, fmt.Errorf("%s %s: %w", ErrMsgFailedToDecodeSnapshot, id, err)
		}
	}
	return s, nil
}

// Save upserts one snapshot.
func (r *CharacterRepository) Save(ctx context.Context, s domain.CharacterSnapshot) error {
	args, err := upsertArgs(s)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, upsertCharacter, args...); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveCharacter, s.ID, err)
	}
	return nil
}

// SaveMany upserts all snapshots in a single transaction. Either every
// snapshot is stored or none is.
func (r *CharacterRepository) SaveMany(ctx context.Context, snapshots []domain.CharacterSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		args, err := upsertArgs(s)
		if err != nil {
			return err
		}
		batch.Queue(upsertCharacter, args...)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	results := tx.SendBatch(ctx, batch)
	for _, s := range snapshots {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveCharacter, s.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveCharacter, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSnapshotsSaved, "count", len(snapshots))
	return nil
}

func upsertArgs(s domain.CharacterSnapshot) ([]any, error) {
	args := []any{s.ID, s.Name, s.Level, s.Experience, s.Hp, s.Mp, s.Gold, s.Position.X, s.Position.Y}
	for _, v := range []any{s.Attributes, nonNil(s.Inventory), nonNil(s.Equipment), nonNil(s.Skills), nonNil(s.Quests)} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToEncodeSnapshot, s.ID, err)
		}
		args = append(args, raw)
	}
	return args, nil
}

// nonNil keeps empty columns as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
