package masking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

func TestState_ToggleSideExclusive(t *testing.T) {
	t.Parallel()

	s := NewState()

	s.ToggleSide(domain.SideLeft)
	assert.True(t, s.HideLeft)
	assert.False(t, s.HideRight)

	// activating the other side deactivates the first
	s.ToggleSide(domain.SideRight)
	assert.False(t, s.HideLeft)
	assert.True(t, s.HideRight)

	// toggling the active side off leaves both shown
	s.ToggleSide(domain.SideRight)
	assert.False(t, s.HideLeft)
	assert.False(t, s.HideRight)

	_, active := s.ActiveSide()
	assert.False(t, active)
}

func TestState_ToggleClearsReveals(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.ToggleSide(domain.SideLeft)
	s.HandleTap(domain.SideLeft, "10:left:word")
	assert.False(t, s.IsHidden(domain.SideLeft, "10:left:word"))

	s.ToggleSide(domain.SideRight)
	s.ToggleSide(domain.SideLeft)
	assert.True(t, s.IsHidden(domain.SideLeft, "10:left:word"))
}

func TestState_HandleTap(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.ToggleSide(domain.SideLeft)
	assert.True(t, s.IsHidden(domain.SideLeft, "10:left:word"))

	// first tap reveals, second hides again
	assert.True(t, s.HandleTap(domain.SideLeft, "10:left:word"))
	assert.False(t, s.IsHidden(domain.SideLeft, "10:left:word"))
	assert.False(t, s.HandleTap(domain.SideLeft, "10:left:word"))
	assert.True(t, s.IsHidden(domain.SideLeft, "10:left:word"))

	// reveals are per segment
	s.HandleTap(domain.SideLeft, "10:left:word")
	assert.True(t, s.IsHidden(domain.SideLeft, "10:left:yomigana"))
}

func TestState_HandleTapWithoutActiveSide(t *testing.T) {
	t.Parallel()

	// Taps flip the segment even when no side is hidden; the flag only
	// takes visible effect once the side is hidden again.
	s := NewState()
	assert.True(t, s.HandleTap(domain.SideLeft, "10:left:word"))
	assert.ElementsMatch(t, []string{"10:left:word"}, s.RevealedKeys())

	assert.False(t, s.HandleTap(domain.SideLeft, "10:left:word"))
	assert.Empty(t, s.RevealedKeys())
}

func TestState_DeactivatingKeepsReveals(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.ToggleSide(domain.SideLeft)
	s.HandleTap(domain.SideLeft, "10:left:word")

	// turning the active side off does not touch reveal state
	s.ToggleSide(domain.SideLeft)
	assert.ElementsMatch(t, []string{"10:left:word"}, s.RevealedKeys())

	// reactivating starts a fresh red sheet
	s.ToggleSide(domain.SideLeft)
	assert.True(t, s.IsHidden(domain.SideLeft, "10:left:word"))
	assert.Empty(t, s.RevealedKeys())
}

func TestState_OverlayTitle(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.Equal(t, OverlayTitleHide, s.OverlayTitle(domain.SideLeft))

	s.ToggleSide(domain.SideLeft)
	assert.Equal(t, OverlayTitleReveal, s.OverlayTitle(domain.SideLeft))
	assert.Equal(t, OverlayTitleHide, s.OverlayTitle(domain.SideRight))
}

func TestState_Reset(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.ToggleSide(domain.SideRight)
	s.HandleTap(domain.SideRight, "3:right:meaning")

	s.Reset()
	assert.False(t, s.HideLeft)
	assert.False(t, s.HideRight)
	assert.Empty(t, s.RevealedKeys())
}

func TestStore_GetCreatesAndExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	a := store.Get("session-a")
	a.ToggleSide(domain.SideLeft)

	// same session id returns the same state
	assert.True(t, store.Get("session-a").HideLeft)
	assert.Equal(t, 1, store.Len())

	// a different session is independent
	assert.False(t, store.Get("session-b").HideLeft)
	assert.Equal(t, 2, store.Len())

	// idle sessions are evicted past the ttl
	current = current.Add(2 * time.Minute)
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Get("session-a").HideLeft)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	store.Get("session-a").ToggleSide(domain.SideLeft)
	store.Delete("session-a")
	assert.False(t, store.Get("session-a").HideLeft)
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	store.Update("session-a", func(s *State) {
		s.ToggleSide(domain.SideRight)
	})

	var hidden bool
	store.Update("session-a", func(s *State) {
		hidden = s.IsHidden(domain.SideRight, "1:right:meaning")
	})
	assert.True(t, hidden)
}
