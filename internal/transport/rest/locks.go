package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/service/sheetlock"
)

// lockService defines the minimal interface needed by LocksHandler.
type lockService interface {
	SetLocked(ctx context.Context, input sheetlock.SetLockInput) error
	SetManyLocked(ctx context.Context, inputs []sheetlock.SetLockInput) error
	UnlockSide(ctx context.Context, wordID int64, side domain.Side) error
	ListForWords(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error)
}

// LocksHandler serves sheet-lock endpoints.
type LocksHandler struct {
	svc lockService
	log *slog.Logger
}

// NewLocksHandler creates a LocksHandler.
func NewLocksHandler(svc lockService, logger *slog.Logger) *LocksHandler {
	return &LocksHandler{svc: svc, log: logger.With("handler", "locks")}
}

type lockChange struct {
	MaskKey string `json:"maskKey"`
	WordID  int64  `json:"wordId"`
	Side    string `json:"side"`
	Locked  bool   `json:"locked"`
}

// Set handles PUT /api/locks: one lock change.
func (h *LocksHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req lockChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.SetLocked(r.Context(), sheetlock.SetLockInput{
		MaskKey: req.MaskKey,
		WordID:  req.WordID,
		Side:    domain.Side(req.Side),
		Locked:  req.Locked,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type lockBatchRequest struct {
	Changes []lockChange `json:"changes"`
}

// SetBatch handles PUT /api/locks/batch: an atomic batch of changes.
func (h *LocksHandler) SetBatch(w http.ResponseWriter, r *http.Request) {
	var req lockBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]sheetlock.SetLockInput, len(req.Changes))
	for i, c := range req.Changes {
		inputs[i] = sheetlock.SetLockInput{
			MaskKey: c.MaskKey,
			WordID:  c.WordID,
			Side:    domain.Side(c.Side),
			Locked:  c.Locked,
		}
	}

	if err := h.svc.SetManyLocked(r.Context(), inputs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type lockEntryResponse struct {
	ID      int64  `json:"id"`
	WordID  int64  `json:"wordId"`
	Side    string `json:"side"`
	MaskKey string `json:"maskKey"`
}

// List handles GET /api/locks?wordIds=1,2,3.
func (h *LocksHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDList(r.URL.Query().Get("wordIds"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid wordIds")
		return
	}

	entries, err := h.svc.ListForWords(r.Context(), ids)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := make([]lockEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = lockEntryResponse{
			ID:      e.ID,
			WordID:  e.WordID,
			Side:    string(e.Side),
			MaskKey: e.MaskKey,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"locks": resp})
}

// parseIDList splits a comma-separated id list; an empty value yields nil.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UnlockSide handles DELETE /api/words/{id}/locks/{side}.
func (h *LocksHandler) UnlockSide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.UnlockSide(r.Context(), id, domain.Side(r.PathValue("side"))); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
