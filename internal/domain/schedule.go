package domain

import "time"

// DateLayout is the wire format for calendar dates. ISO dates compare
// correctly as strings, which the schedule queries rely on.
const DateLayout = "2006-01-02"

// Schedule maps a scope to its planned test date. At most one date per
// scope (upsert semantics).
type Schedule struct {
	ScopeID   string
	Date      string // YYYY-MM-DD
	UpdatedAt time.Time
}

// Validate checks the schedule fields.
func (s *Schedule) Validate() error {
	if s.ScopeID == "" {
		return NewValidationError("scopeId", "required")
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return NewValidationError("date", "must be YYYY-MM-DD")
	}
	return nil
}
