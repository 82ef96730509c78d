// Package masking implements the red-sheet hiding state of a study
// view: at most one side hidden at a time, with per-segment reveals
// layered on top. The state is session-scoped and never persisted;
// durable per-segment locks live in the sheet-lock service.
package masking

import "github.com/kotobanote/kotoba-backend/internal/domain"

// Overlay titles shown on the side-toggle buttons.
const (
	OverlayTitleHide   = "タップで隠す"
	OverlayTitleReveal = "タップで表示"
)

// State is the masking state of one study view. The two hide flags are
// mutually exclusive; revealed holds the mask keys the user tapped open
// while the current side was hidden.
type State struct {
	HideLeft  bool
	HideRight bool

	revealed map[string]bool
}

// NewState returns a state with both sides shown.
func NewState() *State {
	return &State{revealed: make(map[string]bool)}
}

// ToggleSide activates hiding on the given side, or deactivates it when
// it is already active. Activating a side deactivates the other and
// clears all reveals; deactivating only turns the side off, so reveals
// survive a hide-off/hide-on round trip of the other side's segments.
func (s *State) ToggleSide(side domain.Side) {
	var activated bool
	switch side {
	case domain.SideLeft:
		activated = !s.HideLeft
		s.HideLeft = activated
		s.HideRight = false
	case domain.SideRight:
		activated = !s.HideRight
		s.HideRight = activated
		s.HideLeft = false
	default:
		return
	}
	if activated {
		s.revealed = make(map[string]bool)
	}
}

// ActiveSide returns the currently hidden side, or false when both
// sides are shown.
func (s *State) ActiveSide() (domain.Side, bool) {
	switch {
	case s.HideLeft:
		return domain.SideLeft, true
	case s.HideRight:
		return domain.SideRight, true
	}
	return "", false
}

// hiding reports whether the given side is currently hidden.
func (s *State) hiding(side domain.Side) bool {
	switch side {
	case domain.SideLeft:
		return s.HideLeft
	case domain.SideRight:
		return s.HideRight
	}
	return false
}

// HandleTap flips the reveal of one masked segment, regardless of which
// side is currently hidden. The view decides whether a tap reaches a
// segment at all; the state just records the flip. Returns whether the
// segment is revealed after the tap.
func (s *State) HandleTap(side domain.Side, maskKey string) bool {
	if s.revealed[maskKey] {
		delete(s.revealed, maskKey)
		return false
	}
	s.revealed[maskKey] = true
	return true
}

// IsHidden reports whether a masked segment renders hidden: its side is
// hidden and it has not been individually revealed. Durable sheet locks
// override reveals and are applied by the caller on top of this.
func (s *State) IsHidden(side domain.Side, maskKey string) bool {
	return s.hiding(side) && !s.revealed[maskKey]
}

// RevealedKeys returns the mask keys currently revealed, in no
// particular order.
func (s *State) RevealedKeys() []string {
	keys := make([]string, 0, len(s.revealed))
	for k := range s.revealed {
		keys = append(keys, k)
	}
	return keys
}

// Reset clears both hide flags and all reveals.
func (s *State) Reset() {
	s.HideLeft = false
	s.HideRight = false
	s.revealed = make(map[string]bool)
}

// OverlayTitle returns the toggle-button title for a side given the
// current state.
func (s *State) OverlayTitle(side domain.Side) string {
	if s.hiding(side) {
		return OverlayTitleReveal
	}
	return OverlayTitleHide
}
