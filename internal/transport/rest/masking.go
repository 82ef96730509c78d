package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/masking"
)

// MaskingHandler serves the per-session masking state: side toggles,
// per-segment reveals and resets. State lives in memory only.
type MaskingHandler struct {
	store *masking.Store
	log   *slog.Logger
}

// NewMaskingHandler creates a MaskingHandler.
func NewMaskingHandler(store *masking.Store, logger *slog.Logger) *MaskingHandler {
	return &MaskingHandler{store: store, log: logger.With("handler", "masking")}
}

type maskingStateResponse struct {
	HideLeft     bool     `json:"hideLeft"`
	HideRight    bool     `json:"hideRight"`
	RevealedKeys []string `json:"revealedKeys"`
	OverlayLeft  string   `json:"overlayLeft"`
	OverlayRight string   `json:"overlayRight"`
}

func toStateResponse(state *masking.State) maskingStateResponse {
	revealed := state.RevealedKeys()
	if revealed == nil {
		revealed = []string{}
	}
	return maskingStateResponse{
		HideLeft:     state.HideLeft,
		HideRight:    state.HideRight,
		RevealedKeys: revealed,
		OverlayLeft:  state.OverlayTitle(domain.SideLeft),
		OverlayRight: state.OverlayTitle(domain.SideRight),
	}
}

// State handles GET /api/sessions/{sid}/masking.
func (h *MaskingHandler) State(w http.ResponseWriter, r *http.Request) {
	var resp maskingStateResponse
	h.store.Update(r.PathValue("sid"), func(state *masking.State) {
		resp = toStateResponse(state)
	})
	writeJSON(w, http.StatusOK, resp)
}

type toggleSideRequest struct {
	Side string `json:"side"`
}

// ToggleSide handles POST /api/sessions/{sid}/masking/toggle. Hiding
// one side releases the other and drops existing reveals; turning the
// active side off leaves reveals alone.
func (h *MaskingHandler) ToggleSide(w http.ResponseWriter, r *http.Request) {
	var req toggleSideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	side := domain.Side(req.Side)
	if !side.IsValid() {
		writeError(w, http.StatusBadRequest, "side must be left or right")
		return
	}

	var resp maskingStateResponse
	h.store.Update(r.PathValue("sid"), func(state *masking.State) {
		state.ToggleSide(side)
		resp = toStateResponse(state)
	})
	writeJSON(w, http.StatusOK, resp)
}

type tapRequest struct {
	Side    string `json:"side"`
	MaskKey string `json:"maskKey"`
}

type tapResponse struct {
	Hidden bool `json:"hidden"`
}

// Tap handles POST /api/sessions/{sid}/masking/tap: a tap on one
// segment flips its reveal. The view only sends taps for segments it
// renders as maskable.
func (h *MaskingHandler) Tap(w http.ResponseWriter, r *http.Request) {
	var req tapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	side := domain.Side(req.Side)
	if !side.IsValid() || req.MaskKey == "" {
		writeError(w, http.StatusBadRequest, "side and maskKey required")
		return
	}

	var resp tapResponse
	h.store.Update(r.PathValue("sid"), func(state *masking.State) {
		state.HandleTap(side, req.MaskKey)
		resp.Hidden = state.IsHidden(side, req.MaskKey)
	})
	writeJSON(w, http.StatusOK, resp)
}

// Reset handles POST /api/sessions/{sid}/masking/reset.
func (h *MaskingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var resp maskingStateResponse
	h.store.Update(r.PathValue("sid"), func(state *masking.State) {
		state.Reset()
		resp = toStateResponse(state)
	})
	writeJSON(w, http.StatusOK, resp)
}
