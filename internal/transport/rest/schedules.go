package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kotobanote/kotoba-backend/internal/service/schedule"
)

// scheduleService defines the minimal interface needed by SchedulesHandler.
type scheduleService interface {
	SaveBatch(ctx context.Context, inputs []schedule.SaveInput) error
	DeleteBatch(ctx context.Context, scopeIDs []string) error
	NextTestDate(ctx context.Context, today string) (*string, error)
	GroupedScopes(ctx context.Context) ([]schedule.ScopeGroup, error)
}

// SchedulesHandler serves test-date scheduling endpoints.
type SchedulesHandler struct {
	svc scheduleService
	log *slog.Logger
}

// NewSchedulesHandler creates a SchedulesHandler.
func NewSchedulesHandler(svc scheduleService, logger *slog.Logger) *SchedulesHandler {
	return &SchedulesHandler{svc: svc, log: logger.With("handler", "schedules")}
}

type scheduleEntry struct {
	ScopeID string `json:"scopeId"`
	Date    string `json:"date"`
}

type saveSchedulesRequest struct {
	Schedules []scheduleEntry `json:"schedules"`
}

// Save handles PUT /api/schedules.
func (h *SchedulesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]schedule.SaveInput, len(req.Schedules))
	for i, s := range req.Schedules {
		inputs[i] = schedule.SaveInput{ScopeID: s.ScopeID, Date: s.Date}
	}

	if err := h.svc.SaveBatch(r.Context(), inputs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deleteSchedulesRequest struct {
	ScopeIDs []string `json:"scopeIds"`
}

// Delete handles DELETE /api/schedules.
func (h *SchedulesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.DeleteBatch(r.Context(), req.ScopeIDs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type nextDateResponse struct {
	Date      *string `json:"date"`
	DateLabel string  `json:"dateLabel,omitempty"`
}

// NextDate handles GET /api/schedules/next?today=YYYY-MM-DD.
func (h *SchedulesHandler) NextDate(w http.ResponseWriter, r *http.Request) {
	date, err := h.svc.NextTestDate(r.Context(), r.URL.Query().Get("today"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := nextDateResponse{Date: date}
	if date != nil {
		resp.DateLabel = schedule.FormatDate(*date)
	}
	writeJSON(w, http.StatusOK, resp)
}

type scopeEntryResponse struct {
	ScopeID   string  `json:"scopeId"`
	DisplayID *string `json:"displayId,omitempty"`
	StartPage int     `json:"startPage"`
	EndPage   int     `json:"endPage"`
	Category  string  `json:"category"`
	Date      *string `json:"date"`
	DateLabel string  `json:"dateLabel,omitempty"`
}

type scopeGroupResponse struct {
	Key    string               `json:"key"`
	Scopes []scopeEntryResponse `json:"scopes"`
}

// Scopes handles GET /api/scopes: every scope grouped by lesson slot,
// annotated with its scheduled test date.
func (h *SchedulesHandler) Scopes(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GroupedScopes(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]scopeGroupResponse, len(groups))
	for i, g := range groups {
		scopes := make([]scopeEntryResponse, len(g.Scopes))
		for j, entry := range g.Scopes {
			scopes[j] = scopeEntryResponse{
				ScopeID:   entry.Scope.ID,
				DisplayID: entry.Scope.DisplayID,
				StartPage: entry.Scope.StartPage,
				EndPage:   entry.Scope.EndPage,
				Category:  entry.Scope.Category.String(),
				Date:      entry.Date,
				DateLabel: entry.DateLabel,
			}
		}
		out[i] = scopeGroupResponse{Key: g.Key, Scopes: scopes}
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}
