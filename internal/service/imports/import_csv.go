package imports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/importer"
)

// ImportInput is the payload of one CSV import run.
type ImportInput struct {
	Reader io.Reader
	// DryRun parses and reports without touching storage.
	DryRun bool
}

// ImportResult is the outcome of one import run.
type ImportResult struct {
	Report importer.Report
	// Words holds the imported records; on a dry run they carry no IDs.
	Words          []*domain.Word
	AffectedPages  []int
	AffectedScopes []string
	ReplacedCount  int64
	DryRun         bool
}

// ImportCSV parses a CSV stream and replaces the words of every
// affected page in one transaction. All sheet locks and all learning
// history go with them: unit keys and mask keys embed word IDs, and a
// re-import reassigns those, so rows from any earlier import are stale.
func (s *Service) ImportCSV(ctx context.Context, input ImportInput) (*ImportResult, error) {
	if input.Reader == nil {
		return nil, domain.NewValidationError("file", "required")
	}

	parsed, err := s.pipeline.Parse(input.Reader)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	words := make([]*domain.Word, len(parsed.Words))
	for i := range parsed.Words {
		words[i] = &parsed.Words[i]
	}

	if s.readings != nil {
		s.suggestReadings(words)
	}

	for _, w := range words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("row page=%d no=%d: %w", w.Page, w.NumberInPage, err)
		}
	}

	affectedScopes := s.affectedScopeIDs(parsed.AffectedPages)

	result := &ImportResult{
		Report:         parsed.Report,
		Words:          words,
		AffectedPages:  parsed.AffectedPages,
		AffectedScopes: affectedScopes,
		DryRun:         input.DryRun,
	}

	if input.DryRun {
		return result, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		replaced, err := s.words.DeleteByPages(ctx, parsed.AffectedPages)
		if err != nil {
			return err
		}
		result.ReplacedCount = replaced

		created, err := s.words.CreateBatch(ctx, words)
		if err != nil {
			return err
		}
		result.Words = created

		if err := s.locks.DeleteAll(ctx); err != nil {
			return err
		}
		return s.stats.DeleteAll(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("import words: %w", err)
	}

	s.log.InfoContext(ctx, "csv imported",
		slog.String("category", result.Report.Category),
		slog.Int("words", len(result.Words)),
		slog.Int("pages", len(result.AffectedPages)),
		slog.Int64("replaced", result.ReplacedCount),
	)

	return result, nil
}

// suggestReadings fills empty yomigana fields from morphological
// analysis. Best effort: a failed suggestion leaves the field empty.
func (s *Service) suggestReadings(words []*domain.Word) {
	for _, w := range words {
		if w.Yomigana == "" && w.RawWord != "" {
			w.Yomigana = s.readings.Suggest(w.RawWord)
		}
		for i := range w.GroupMembers {
			m := &w.GroupMembers[i]
			if m.Yomigana == "" && m.RawWord != "" {
				m.Yomigana = s.readings.Suggest(m.RawWord)
			}
		}
	}
}

// affectedScopeIDs resolves the distinct scopes covering the given
// pages, sorted for stable reporting. Out-of-scope pages contribute
// nothing.
func (s *Service) affectedScopeIDs(pages []int) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, page := range pages {
		sc, ok := s.scopes.ByPage(page)
		if !ok {
			continue
		}
		if !seen[sc.ID] {
			seen[sc.ID] = true
			ids = append(ids, sc.ID)
		}
	}
	sort.Strings(ids)
	if ids == nil {
		ids = []string{}
	}
	return ids
}
