package imports

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/importer"
)

type wordRepoMock struct {
	DeleteByPagesFunc func(ctx context.Context, pages []int) (int64, error)
	CreateBatchFunc   func(ctx context.Context, words []*domain.Word) ([]*domain.Word, error)

	deleteCalls [][]int
	createCalls [][]*domain.Word
}

func (m *wordRepoMock) DeleteByPages(ctx context.Context, pages []int) (int64, error) {
	m.deleteCalls = append(m.deleteCalls, pages)
	if m.DeleteByPagesFunc == nil {
		return 0, nil
	}
	return m.DeleteByPagesFunc(ctx, pages)
}

func (m *wordRepoMock) CreateBatch(ctx context.Context, words []*domain.Word) ([]*domain.Word, error) {
	m.createCalls = append(m.createCalls, words)
	if m.CreateBatchFunc == nil {
		created := make([]*domain.Word, len(words))
		for i, w := range words {
			c := *w
			c.ID = int64(i + 1)
			created[i] = &c
		}
		return created, nil
	}
	return m.CreateBatchFunc(ctx, words)
}

type statRepoMock struct {
	deleteAllCalls int
}

func (m *statRepoMock) DeleteAll(ctx context.Context) error {
	m.deleteAllCalls++
	return nil
}

type lockRepoMock struct {
	deleteAllCalls int
}

func (m *lockRepoMock) DeleteAll(ctx context.Context) error {
	m.deleteAllCalls++
	return nil
}

// txPassthrough runs the function without a real transaction.
type txPassthrough struct{}

func (txPassthrough) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type resolverStub struct{}

func (resolverStub) ByPage(page int) (domain.Scope, bool) {
	if page >= 10 && page <= 12 {
		return domain.Scope{ID: "42A-01", StartPage: 10, EndPage: 12, Category: domain.CategoryProverb}, true
	}
	return domain.Scope{}, false
}

type suggesterStub struct{}

func (suggesterStub) Suggest(text string) string {
	if text == "猫に小判" {
		return "ねこにこばん"
	}
	return ""
}

func newTestService(words *wordRepoMock, stats *statRepoMock, locks *lockRepoMock, readings ReadingSuggester) *Service {
	pipeline := importer.NewPipeline(resolverStub{}, importer.NewRegistry())
	return NewService(slog.Default(), pipeline, resolverStub{}, words, stats, locks, txPassthrough{}, readings)
}

const proverbCSV = "ページ,番号,ことわざ,よみがな,意味\n" +
	"10,1,猫に小判,ねこにこばん,価値のわからない者には無意味\n" +
	"10,2,馬の耳に念仏,うまのみみにねんぶつ,いくら言っても効き目がない\n" +
	"11,1,犬も歩けば棒に当たる,いぬもあるけばぼうにあたる,出歩けば思わぬ幸運に会う\n"

func TestImportCSV_ReplacesAffectedPages(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{
		DeleteByPagesFunc: func(ctx context.Context, pages []int) (int64, error) {
			return 5, nil
		},
	}
	stats := &statRepoMock{}
	locks := &lockRepoMock{}
	svc := newTestService(words, stats, locks, nil)

	result, err := svc.ImportCSV(context.Background(), ImportInput{Reader: strings.NewReader(proverbCSV)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Report.Count != 3 {
		t.Errorf("report count: got %d, want 3", result.Report.Count)
	}
	if result.Report.Category != "ことわざ" {
		t.Errorf("report category: got %q", result.Report.Category)
	}
	if len(result.Words) != 3 {
		t.Fatalf("words: got %d, want 3", len(result.Words))
	}
	if result.Words[0].ID == 0 {
		t.Error("imported words should carry assigned ids")
	}
	if got := result.AffectedPages; len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Errorf("affected pages: got %v, want [10 11]", got)
	}
	if got := result.AffectedScopes; len(got) != 1 || got[0] != "42A-01" {
		t.Errorf("affected scopes: got %v, want [42A-01]", got)
	}
	if result.ReplacedCount != 5 {
		t.Errorf("replaced count: got %d, want 5", result.ReplacedCount)
	}

	if len(words.deleteCalls) != 1 || len(words.createCalls) != 1 {
		t.Fatalf("repo calls: delete %d, create %d", len(words.deleteCalls), len(words.createCalls))
	}
	// A re-import invalidates every unit key, so all progress goes.
	if stats.deleteAllCalls != 1 {
		t.Errorf("stat wipes: got %d, want 1", stats.deleteAllCalls)
	}
	if locks.deleteAllCalls != 1 {
		t.Errorf("lock wipes: got %d, want 1", locks.deleteAllCalls)
	}
}

func TestImportCSV_DryRun(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{}
	stats := &statRepoMock{}
	locks := &lockRepoMock{}
	svc := newTestService(words, stats, locks, nil)

	result, err := svc.ImportCSV(context.Background(), ImportInput{
		Reader: strings.NewReader(proverbCSV),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.DryRun {
		t.Error("result not flagged as dry run")
	}
	if len(result.Words) != 3 {
		t.Errorf("words: got %d, want 3", len(result.Words))
	}
	if result.Words[0].ID != 0 {
		t.Error("dry run words should carry no ids")
	}
	if len(words.deleteCalls) != 0 || len(words.createCalls) != 0 ||
		stats.deleteAllCalls != 0 || locks.deleteAllCalls != 0 {
		t.Error("dry run touched storage")
	}
}

func TestImportCSV_SuggestsMissingReadings(t *testing.T) {
	t.Parallel()

	csv := "ページ,番号,ことわざ,よみがな,意味\n" +
		"10,1,猫に小判,,価値のわからない者には無意味\n"

	words := &wordRepoMock{}
	svc := newTestService(words, &statRepoMock{}, &lockRepoMock{}, suggesterStub{})

	result, err := svc.ImportCSV(context.Background(), ImportInput{
		Reader: strings.NewReader(csv),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Words[0].Yomigana; got != "ねこにこばん" {
		t.Errorf("suggested yomigana: got %q", got)
	}
}

func TestImportCSV_KeepsProvidedReadings(t *testing.T) {
	t.Parallel()

	csv := "ページ,番号,ことわざ,よみがな,意味\n" +
		"10,1,猫に小判,ねこ,価値のわからない者には無意味\n"

	svc := newTestService(&wordRepoMock{}, &statRepoMock{}, &lockRepoMock{}, suggesterStub{})

	result, err := svc.ImportCSV(context.Background(), ImportInput{
		Reader: strings.NewReader(csv),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Words[0].Yomigana; got != "ねこ" {
		t.Errorf("yomigana overwritten: got %q", got)
	}
}

func TestImportCSV_NilReader(t *testing.T) {
	t.Parallel()

	svc := newTestService(&wordRepoMock{}, &statRepoMock{}, &lockRepoMock{}, nil)

	var verr *domain.ValidationError
	if _, err := svc.ImportCSV(context.Background(), ImportInput{}); !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	t.Parallel()

	words := &wordRepoMock{}
	svc := newTestService(words, &statRepoMock{}, &lockRepoMock{}, nil)

	result, err := svc.ImportCSV(context.Background(), ImportInput{
		Reader: strings.NewReader(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Words) != 0 {
		t.Errorf("words: got %d, want 0", len(result.Words))
	}
	if len(result.AffectedScopes) != 0 {
		t.Errorf("scopes: got %v, want none", result.AffectedScopes)
	}
}
