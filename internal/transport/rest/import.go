package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/service/imports"
)

// importService defines the minimal interface needed by ImportHandler.
type importService interface {
	ImportCSV(ctx context.Context, input imports.ImportInput) (*imports.ImportResult, error)
}

// ImportHandler serves the CSV import endpoint.
type ImportHandler struct {
	svc          importService
	maxFileBytes int64
	log          *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(svc importService, maxFileBytes int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, maxFileBytes: maxFileBytes, log: logger.With("handler", "import")}
}

type importResponse struct {
	Category       string   `json:"category"`
	Count          int      `json:"count"`
	Mapping        string   `json:"mapping"`
	AffectedPages  []int    `json:"affectedPages"`
	AffectedScopes []string `json:"affectedScopes"`
	ReplacedCount  int64    `json:"replacedCount"`
	DryRun         bool     `json:"dryRun"`
}

// Import handles POST /api/import. The CSV arrives either as a
// multipart "file" part or as the raw request body; ?dry_run=true
// parses and reports without writing.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dry_run") == "true"

	reader, cleanup, err := h.csvReader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	result, err := h.svc.ImportCSV(r.Context(), imports.ImportInput{
		Reader: reader,
		DryRun: dryRun,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Category:       result.Report.Category,
		Count:          result.Report.Count,
		Mapping:        result.Report.Mapping,
		AffectedPages:  result.AffectedPages,
		AffectedScopes: result.AffectedScopes,
		ReplacedCount:  result.ReplacedCount,
		DryRun:         result.DryRun,
	})
}

// csvReader extracts the CSV stream from the request, size-capped.
func (h *ImportHandler) csvReader(r *http.Request) (io.Reader, func(), error) {
	noop := func() {}

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return http.MaxBytesReader(nil, r.Body, h.maxFileBytes), noop, nil
	}

	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		return nil, noop, domain.NewValidationError("file", "invalid multipart form")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, noop, domain.NewValidationError("file", "required")
	}
	return file, func() { _ = file.Close() }, nil
}
