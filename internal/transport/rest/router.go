package rest

import (
	"net/http"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Import    *ImportHandler
	Words     *WordsHandler
	Stats     *StatsHandler
	Locks     *LocksHandler
	Schedules *SchedulesHandler
	Masking   *MaskingHandler
}

// NewRouter builds the route table. Middleware is applied by the
// caller around the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/import", h.Import.Import)

	mux.HandleFunc("GET /api/scopes", h.Schedules.Scopes)
	mux.HandleFunc("GET /api/scopes/{scopeID}/words", h.Words.ListByScope)
	mux.HandleFunc("GET /api/scopes/{scopeID}/stats", h.Stats.Range)
	mux.HandleFunc("GET /api/scopes/{scopeID}/dashboard", h.Stats.Dashboard)

	mux.HandleFunc("GET /api/words/{id}", h.Words.Get)
	mux.HandleFunc("PUT /api/words/{id}", h.Words.Update)
	mux.HandleFunc("GET /api/words/{id}/test-card", h.Words.TestCard)
	mux.HandleFunc("PUT /api/words/{id}/learned", h.Words.SetLearned)
	mux.HandleFunc("POST /api/words/studied", h.Words.MarkStudied)
	mux.HandleFunc("DELETE /api/words/{id}/locks/{side}", h.Locks.UnlockSide)

	mux.HandleFunc("GET /api/locks", h.Locks.List)
	mux.HandleFunc("PUT /api/locks", h.Locks.Set)
	mux.HandleFunc("PUT /api/locks/batch", h.Locks.SetBatch)

	mux.HandleFunc("POST /api/stats/increment", h.Stats.Increment)
	mux.HandleFunc("DELETE /api/stats", h.Stats.Clear)

	mux.HandleFunc("PUT /api/schedules", h.Schedules.Save)
	mux.HandleFunc("DELETE /api/schedules", h.Schedules.Delete)
	mux.HandleFunc("GET /api/schedules/next", h.Schedules.NextDate)

	mux.HandleFunc("GET /api/sessions/{sid}/masking", h.Masking.State)
	mux.HandleFunc("POST /api/sessions/{sid}/masking/toggle", h.Masking.ToggleSide)
	mux.HandleFunc("POST /api/sessions/{sid}/masking/tap", h.Masking.Tap)
	mux.HandleFunc("POST /api/sessions/{sid}/masking/reset", h.Masking.Reset)

	return mux
}
