package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/service/sheetlock"
)

type lockServiceMock struct {
	SetLockedFunc     func(ctx context.Context, input sheetlock.SetLockInput) error
	SetManyLockedFunc func(ctx context.Context, inputs []sheetlock.SetLockInput) error
	UnlockSideFunc    func(ctx context.Context, wordID int64, side domain.Side) error
	ListForWordsFunc  func(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error)
}

func (m *lockServiceMock) SetLocked(ctx context.Context, input sheetlock.SetLockInput) error {
	return m.SetLockedFunc(ctx, input)
}

func (m *lockServiceMock) SetManyLocked(ctx context.Context, inputs []sheetlock.SetLockInput) error {
	return m.SetManyLockedFunc(ctx, inputs)
}

func (m *lockServiceMock) UnlockSide(ctx context.Context, wordID int64, side domain.Side) error {
	return m.UnlockSideFunc(ctx, wordID, side)
}

func (m *lockServiceMock) ListForWords(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error) {
	return m.ListForWordsFunc(ctx, wordIDs)
}

func TestLocksSet_PassesInputThrough(t *testing.T) {
	t.Parallel()

	var got sheetlock.SetLockInput
	mock := &lockServiceMock{
		SetLockedFunc: func(_ context.Context, input sheetlock.SetLockInput) error {
			got = input
			return nil
		},
	}
	h := NewLocksHandler(mock, slog.Default())

	body := `{"maskKey":"7:left:word","wordId":7,"side":"left","locked":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/locks", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if got.MaskKey != "7:left:word" || got.WordID != 7 || got.Side != domain.SideLeft || !got.Locked {
		t.Errorf("unexpected input passed to service: %+v", got)
	}
}

func TestLocksSet_ValidationErrorMapsTo400(t *testing.T) {
	t.Parallel()

	mock := &lockServiceMock{
		SetLockedFunc: func(_ context.Context, _ sheetlock.SetLockInput) error {
			return domain.NewValidationError("maskKey", "required")
		},
	}
	h := NewLocksHandler(mock, slog.Default())

	req := httptest.NewRequest(http.MethodPut, "/api/locks",
		strings.NewReader(`{"wordId":7,"side":"left","locked":true}`))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLocksSet_MalformedBody(t *testing.T) {
	t.Parallel()

	h := NewLocksHandler(&lockServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodPut, "/api/locks", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLocksList_ParsesIDsAndRendersEntries(t *testing.T) {
	t.Parallel()

	mock := &lockServiceMock{
		ListForWordsFunc: func(_ context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error) {
			if len(wordIDs) != 2 || wordIDs[0] != 1 || wordIDs[1] != 2 {
				t.Errorf("unexpected wordIDs: %v", wordIDs)
			}
			return []domain.SheetLockEntry{
				{ID: 10, WordID: 1, Side: domain.SideLeft, MaskKey: "1:left:word"},
			}, nil
		},
	}
	h := NewLocksHandler(mock, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/locks?wordIds=1,2", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Locks []lockEntryResponse `json:"locks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Locks) != 1 {
		t.Fatalf("expected 1 lock, got %d", len(resp.Locks))
	}
	if resp.Locks[0].MaskKey != "1:left:word" || resp.Locks[0].Side != "left" {
		t.Errorf("unexpected lock entry: %+v", resp.Locks[0])
	}
}

func TestLocksList_InvalidIDs(t *testing.T) {
	t.Parallel()

	h := NewLocksHandler(&lockServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/locks?wordIds=1,abc", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLocksUnlockSide_UsesPathValues(t *testing.T) {
	t.Parallel()

	var gotID int64
	var gotSide domain.Side
	mock := &lockServiceMock{
		UnlockSideFunc: func(_ context.Context, wordID int64, side domain.Side) error {
			gotID = wordID
			gotSide = side
			return nil
		},
	}
	h := NewLocksHandler(mock, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/api/words/9/locks/right", nil)
	req.SetPathValue("id", "9")
	req.SetPathValue("side", "right")
	rec := httptest.NewRecorder()

	h.UnlockSide(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if gotID != 9 || gotSide != domain.SideRight {
		t.Errorf("expected (9, right), got (%d, %s)", gotID, gotSide)
	}
}
