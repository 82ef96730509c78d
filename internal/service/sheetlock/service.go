// Package sheetlock manages persisted mask locks: the long-press locks
// that keep a segment hidden across reloads until explicitly released.
package sheetlock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

type lockRepo interface {
	Lock(ctx context.Context, entry domain.SheetLockEntry) error
	LockBatch(ctx context.Context, entries []domain.SheetLockEntry) error
	Unlock(ctx context.Context, maskKey string) error
	ListByWordIDs(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error)
	DeleteByWordAndSide(ctx context.Context, wordID int64, side domain.Side) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides sheet-lock operations.
type Service struct {
	locks lockRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new sheet-lock service.
func NewService(log *slog.Logger, locks lockRepo, tx txManager) *Service {
	return &Service{
		locks: locks,
		tx:    tx,
		log:   log.With("service", "sheetlock"),
	}
}

// SetLockInput addresses one masked segment.
type SetLockInput struct {
	MaskKey string
	WordID  int64
	Side    domain.Side
	Locked  bool
}

// SetLocked locks or unlocks one segment. Both directions are
// idempotent.
func (s *Service) SetLocked(ctx context.Context, input SetLockInput) error {
	entry := domain.SheetLockEntry{MaskKey: input.MaskKey, WordID: input.WordID, Side: input.Side}
	if err := entry.Validate(); err != nil {
		return err
	}

	if !input.Locked {
		if err := s.locks.Unlock(ctx, input.MaskKey); err != nil {
			return fmt.Errorf("unlock segment: %w", err)
		}
		return nil
	}

	if err := s.locks.Lock(ctx, entry); err != nil {
		return fmt.Errorf("lock segment: %w", err)
	}
	return nil
}

// SetManyLocked applies a batch of lock changes atomically: either the
// whole batch lands or none of it does.
func (s *Service) SetManyLocked(ctx context.Context, inputs []SetLockInput) error {
	var toLock []domain.SheetLockEntry
	var toUnlock []string

	for i, in := range inputs {
		entry := domain.SheetLockEntry{MaskKey: in.MaskKey, WordID: in.WordID, Side: in.Side}
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if in.Locked {
			toLock = append(toLock, entry)
		} else {
			toUnlock = append(toUnlock, in.MaskKey)
		}
	}

	if len(toLock) == 0 && len(toUnlock) == 0 {
		return nil
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.locks.LockBatch(ctx, toLock); err != nil {
			return err
		}
		for _, key := range toUnlock {
			if err := s.locks.Unlock(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply lock batch: %w", err)
	}

	s.log.InfoContext(ctx, "sheet locks updated",
		slog.Int("locked", len(toLock)),
		slog.Int("unlocked", len(toUnlock)),
	)
	return nil
}

// UnlockSide releases every lock on one word's side. A failed test
// retry uses this to re-expose the drilled side.
func (s *Service) UnlockSide(ctx context.Context, wordID int64, side domain.Side) error {
	if wordID <= 0 {
		return domain.NewValidationError("wordId", "must be positive")
	}
	if !side.IsValid() {
		return domain.NewValidationError("side", "must be left or right")
	}

	if err := s.locks.DeleteByWordAndSide(ctx, wordID, side); err != nil {
		return fmt.Errorf("unlock side: %w", err)
	}
	return nil
}

// ListForWords returns the locks of the given words.
func (s *Service) ListForWords(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error) {
	entries, err := s.locks.ListByWordIDs(ctx, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("list locks: %w", err)
	}
	return entries, nil
}
