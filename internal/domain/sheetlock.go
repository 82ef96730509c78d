package domain

import "time"

// SheetLockEntry is a persisted long-press lock on one masked segment.
// It survives reloads, independent of session masking state, and is
// cleared in bulk when a test retry unlocks a side.
type SheetLockEntry struct {
	ID        int64
	MaskKey   string // unique
	WordID    int64
	Side      Side
	CreatedAt time.Time
}

// Validate checks the lock entry fields.
func (e *SheetLockEntry) Validate() error {
	var errs []FieldError
	if e.MaskKey == "" {
		errs = append(errs, FieldError{Field: "maskKey", Message: "required"})
	}
	if e.WordID <= 0 {
		errs = append(errs, FieldError{Field: "wordId", Message: "must be positive"})
	}
	if !e.Side.IsValid() {
		errs = append(errs, FieldError{Field: "side", Message: "must be left or right"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
