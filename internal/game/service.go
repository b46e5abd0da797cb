// Package game connects the world to persistence and the transport: it logs
// characters in and out, forwards commands and runs autosaves.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Holmiboii/ummorpg/internal/concurrency"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/entity"
	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/metrics"
	"github.com/Holmiboii/ummorpg/internal/repository"
	"github.com/Holmiboii/ummorpg/internal/world"
)

// Service defines the interface for session and command operations
type Service interface {
	Login(ctx context.Context, id, name string) (world.View, error)
	Logout(ctx context.Context, id string) error
	Submit(ctx context.Context, id string, cmd world.Command) error
	View(ctx context.Context, id string) (world.View, error)
	Step(ctx context.Context)
	Autosave(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

// invalidator is implemented by caching repositories.
type invalidator interface {
	Invalidate(id string)
}

type service struct {
	world *world.World
	repo  repository.Character
	locks *concurrency.LockManager

	// saveMu orders persistence writes. It is held from taking a snapshot
	// until the write commits, so an older snapshot never lands after a
	// newer one.
	saveMu sync.Mutex
}

// NewService creates a game service over w that persists through repo
func NewService(w *world.World, repo repository.Character) Service {
	return &service{
		world: w,
		repo:  repo,
		locks: concurrency.NewLockManager(),
	}
}

// Login loads the character, or creates a fresh one when none is stored, and
// puts it into the world.
func (s *service) Login(ctx context.Context, id, name string) (world.View, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if s.world.Online(id) {
		return world.View{}, fmt.Errorf("%w: %s", domain.ErrAlreadyOnline, id)
	}

	ctx = logger.WithCharacterID(ctx, id)
	log := logger.FromContext(ctx)
	c := s.world.Catalog()
	snap, err := s.repo.Load(ctx, id)
	var e *entity.Entity
	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		if name == "" {
			name = id
		}
		e = entity.NewPlayer(id, name, c)
		log.Info(LogMsgNewCharacter, "name", name)
	case err != nil:
		return world.View{}, fmt.Errorf("%s %s: %w", ErrMsgLoadFailed, id, err)
	default:
		var dropped []domain.ItemSlot
		e, dropped = entity.FromSnapshot(snap, c, s.world.Clock().Now())
		if len(dropped) > 0 {
			log.Warn(LogMsgSnapshotRepaired, "dropped", dropped)
		}
	}

	if err := s.world.AddPlayer(e); err != nil {
		return world.View{}, err
	}
	log.Info(LogMsgLogin)
	return s.world.View(id)
}

// Logout saves the character and removes it from the world. When the save
// fails the character is put back so no progress is lost.
func (s *service) Logout(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()
	ctx = logger.WithCharacterID(ctx, id)

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap, err := s.world.RemovePlayer(id)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		logger.FromContext(ctx).Error(LogMsgLogoutSaveFailed, "error", err)
		e, _ := entity.FromSnapshot(snap, s.world.Catalog(), s.world.Clock().Now())
		if addErr := s.world.AddPlayer(e); addErr != nil {
			err = errors.Join(err, addErr)
		}
		return fmt.Errorf("%s %s: %w", ErrMsgSaveFailed, id, err)
	}
	if inv, ok := s.repo.(invalidator); ok {
		inv.Invalidate(id)
	}
	logger.FromContext(ctx).Info(LogMsgLogout)
	return nil
}

// Submit queues a command for the next step
func (s *service) Submit(_ context.Context, id string, cmd world.Command) error {
	if err := s.world.Submit(id, cmd); err != nil {
		return err
	}
	metrics.Commands.WithLabelValues(cmd.Kind(), metrics.OutcomeQueued).Inc()
	return nil
}

// View returns the current state of an online character
func (s *service) View(_ context.Context, id string) (world.View, error) {
	return s.world.View(id)
}

// Step advances the world once
func (s *service) Step(ctx context.Context) {
	s.world.Step(ctx)
}

// Autosave stores a consistent snapshot of every online character in one
// batch and returns how many were saved.
func (s *service) Autosave(ctx context.Context) (int, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snaps := s.world.Snapshots()
	if len(snaps) == 0 {
		return 0, nil
	}
	log := logger.FromContext(ctx)
	if err := s.repo.SaveMany(ctx, snaps); err != nil {
		metrics.Autosaves.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error(LogMsgAutosaveFailed, "count", len(snaps), "error", err)
		return 0, fmt.Errorf("%s: %w", ErrMsgAutosaveFailed, err)
	}
	metrics.Autosaves.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info(LogMsgAutosave, "count", len(snaps))
	return len(snaps), nil
}

// Shutdown runs a final autosave
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShuttingDown)
	_, err := s.Autosave(ctx)
	return err
}
