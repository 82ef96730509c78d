package schedule

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

type scheduleRepoMock struct {
	UpsertBatchFunc  func(ctx context.Context, entries []domain.Schedule) error
	DeleteBatchFunc  func(ctx context.Context, scopeIDs []string) error
	GetByScopeIDFunc func(ctx context.Context, scopeID string) (*domain.Schedule, error)
	ListAllFunc      func(ctx context.Context) ([]domain.Schedule, error)

	upsertCalls [][]domain.Schedule
	deleteCalls [][]string
}

func (m *scheduleRepoMock) UpsertBatch(ctx context.Context, entries []domain.Schedule) error {
	m.upsertCalls = append(m.upsertCalls, entries)
	if m.UpsertBatchFunc == nil {
		return nil
	}
	return m.UpsertBatchFunc(ctx, entries)
}

func (m *scheduleRepoMock) DeleteBatch(ctx context.Context, scopeIDs []string) error {
	m.deleteCalls = append(m.deleteCalls, scopeIDs)
	if m.DeleteBatchFunc == nil {
		return nil
	}
	return m.DeleteBatchFunc(ctx, scopeIDs)
}

func (m *scheduleRepoMock) GetByScopeID(ctx context.Context, scopeID string) (*domain.Schedule, error) {
	return m.GetByScopeIDFunc(ctx, scopeID)
}

func (m *scheduleRepoMock) ListAll(ctx context.Context) ([]domain.Schedule, error) {
	if m.ListAllFunc == nil {
		return nil, nil
	}
	return m.ListAllFunc(ctx)
}

type resolverStub struct {
	scopes []domain.Scope
}

func (r *resolverStub) All() []domain.Scope { return r.scopes }

func (r *resolverStub) ByID(id string) (domain.Scope, bool) {
	for _, s := range r.scopes {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scope{}, false
}

func strPtr(s string) *string { return &s }

func testScopes() []domain.Scope {
	return []domain.Scope{
		{ID: "42A-01", DisplayID: strPtr("42A-01"), StartPage: 10, EndPage: 12, Category: domain.CategoryProverb},
		{ID: "42A-01P", DisplayID: strPtr("42A-01"), StartPage: 13, EndPage: 14, Category: domain.CategoryProverb},
		{ID: "42A-02", StartPage: 15, EndPage: 18, Category: domain.CategoryIdiom},
	}
}

func newTestService(repo *scheduleRepoMock) *Service {
	return NewService(slog.Default(), repo, &resolverStub{scopes: testScopes()})
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		want string
	}{
		{"2026-02-17", "2/17(火)"},
		{"2026-01-04", "1/4(日)"},
		{"2025-12-31", "12/31(水)"},
		{"not-a-date", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.date); got != tc.want {
			t.Errorf("FormatDate(%q): got %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestSaveBatch_ExpandsGroup(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{}
	svc := newTestService(repo)

	err := svc.SaveBatch(context.Background(), []SaveInput{
		{ScopeID: "42A-01", Date: "2026-03-01"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.upsertCalls) != 1 {
		t.Fatalf("upsert calls: got %d, want 1", len(repo.upsertCalls))
	}
	entries := repo.upsertCalls[0]
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2 (group expansion)", len(entries))
	}
	for _, e := range entries {
		if e.Date != "2026-03-01" {
			t.Errorf("entry %s date: got %q", e.ScopeID, e.Date)
		}
	}
	if entries[0].ScopeID != "42A-01" || entries[1].ScopeID != "42A-01P" {
		t.Errorf("scope ids: got %q, %q", entries[0].ScopeID, entries[1].ScopeID)
	}
}

func TestSaveBatch_UngroupedScope(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{}
	svc := newTestService(repo)

	err := svc.SaveBatch(context.Background(), []SaveInput{
		{ScopeID: "42A-02", Date: "2026-03-05"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upsertCalls[0]) != 1 {
		t.Errorf("entries: got %d, want 1", len(repo.upsertCalls[0]))
	}
}

func TestSaveBatch_UnknownScope(t *testing.T) {
	t.Parallel()

	svc := newTestService(&scheduleRepoMock{})

	err := svc.SaveBatch(context.Background(), []SaveInput{
		{ScopeID: "nope", Date: "2026-03-01"},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveBatch_InvalidDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(&scheduleRepoMock{})

	err := svc.SaveBatch(context.Background(), []SaveInput{
		{ScopeID: "42A-01", Date: "03/01/2026"},
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDeleteBatch_ExpandsGroup(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{}
	svc := newTestService(repo)

	if err := svc.DeleteBatch(context.Background(), []string{"42A-01P"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleteCalls) != 1 {
		t.Fatalf("delete calls: got %d, want 1", len(repo.deleteCalls))
	}
	got := repo.deleteCalls[0]
	if len(got) != 2 || got[0] != "42A-01" || got[1] != "42A-01P" {
		t.Errorf("deleted ids: got %v", got)
	}
}

func TestNextTestDate(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ScopeID: "42A-01", Date: "2026-01-20"},
				{ScopeID: "42A-01P", Date: "2026-02-03"},
				{ScopeID: "42A-02", Date: "2026-02-10"},
			}, nil
		},
	}
	svc := newTestService(repo)

	got, err := svc.NextTestDate(context.Background(), "2026-02-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != "2026-02-03" {
		t.Errorf("next date: got %v, want 2026-02-03", got)
	}
}

func TestNextTestDate_NoneUpcoming(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Schedule, error) {
			return []domain.Schedule{{ScopeID: "42A-01", Date: "2026-01-20"}}, nil
		},
	}
	svc := newTestService(repo)

	got, err := svc.NextTestDate(context.Background(), "2026-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("next date: got %v, want nil", *got)
	}
}

func TestNextTestDate_InvalidToday(t *testing.T) {
	t.Parallel()

	svc := newTestService(&scheduleRepoMock{})
	_, err := svc.NextTestDate(context.Background(), "yesterday")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGroupedScopes(t *testing.T) {
	t.Parallel()

	repo := &scheduleRepoMock{
		ListAllFunc: func(ctx context.Context) ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ScopeID: "42A-01", Date: "2026-02-17"},
				{ScopeID: "42A-01P", Date: "2026-02-17"},
			}, nil
		},
	}
	svc := newTestService(repo)

	groups, err := svc.GroupedScopes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(groups))
	}

	first := groups[0]
	if first.Key != "42A-01" {
		t.Errorf("group key: got %q, want 42A-01", first.Key)
	}
	if len(first.Scopes) != 2 {
		t.Fatalf("group scopes: got %d, want 2", len(first.Scopes))
	}
	for _, entry := range first.Scopes {
		if entry.Date == nil || *entry.Date != "2026-02-17" {
			t.Errorf("scope %s date: got %v", entry.Scope.ID, entry.Date)
		}
		if entry.DateLabel != "2/17(火)" {
			t.Errorf("scope %s label: got %q", entry.Scope.ID, entry.DateLabel)
		}
	}

	second := groups[1]
	if second.Key != "42A-02" || len(second.Scopes) != 1 {
		t.Fatalf("second group: got key %q with %d scopes", second.Key, len(second.Scopes))
	}
	if second.Scopes[0].Date != nil {
		t.Errorf("unscheduled scope date: got %v, want nil", *second.Scopes[0].Date)
	}
	if second.Scopes[0].DateLabel != "" {
		t.Errorf("unscheduled scope label: got %q, want empty", second.Scopes[0].DateLabel)
	}
}
