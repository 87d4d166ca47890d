package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testVacancy(id string) *Vacancy {
	from := 200000
	currency := "RUR"
	gross := true
	return &Vacancy{
		ID:               id,
		Experience:       "От 3 до 6 лет",
		Schedule:         "Удаленная работа",
		Employment:       "Полная занятость",
		Description:      "Python developer wanted",
		KeySkills:        `["Python","Django"]`,
		EmployerID:       "99",
		EmployerName:     "Acme",
		EmployerURL:      "https://example.com/acme",
		PublishedAt:      time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		CreatedAt:        time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		InitialCreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		SalaryFrom:       &from,
		SalaryCurrency:   &currency,
		SalaryGross:      &gross,
		TypeOpen:         "open",
	}
}

func TestSaveVacancyInsertAndUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveVacancy(ctx, testVacancy("1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	stored, err := s.HasVacancy(ctx, "1")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	if !stored {
		t.Fatal("expected vacancy 1 to be stored")
	}

	updated := testVacancy("1")
	updated.Description = "Senior Python developer wanted"
	if err := s.SaveVacancy(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	jobs, err := s.UnappliedDescriptions(ctx)
	if err != nil {
		t.Fatalf("descriptions: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("re-saving the same id must not create a duplicate, got %d rows", len(jobs))
	}
	if jobs[0].Description != "Senior Python developer wanted" {
		t.Fatalf("expected updated description, got %q", jobs[0].Description)
	}
}

func TestHasVacancyMissing(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.HasVacancy(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored {
		t.Fatal("expected missing vacancy")
	}
}

func TestSetAppliedExcludesFromDescriptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveVacancy(ctx, testVacancy("1")); err != nil {
		t.Fatalf("insert 1: %v", err)
	}
	if err := s.SaveVacancy(ctx, testVacancy("2")); err != nil {
		t.Fatalf("insert 2: %v", err)
	}

	if err := s.SetApplied(ctx, "1", true); err != nil {
		t.Fatalf("set applied: %v", err)
	}

	jobs, err := s.UnappliedDescriptions(ctx)
	if err != nil {
		t.Fatalf("descriptions: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "2" {
		t.Fatalf("expected only vacancy 2, got %+v", jobs)
	}

	// Updating the row must not clear the applied flag.
	if err := s.SaveVacancy(ctx, testVacancy("1")); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	jobs, err = s.UnappliedDescriptions(ctx)
	if err != nil {
		t.Fatalf("descriptions: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("applied flag lost on update, got %+v", jobs)
	}
}

func TestSetAppliedUnknownID(t *testing.T) {
	s := newTestStore(t)

	err := s.SetApplied(context.Background(), "nope", true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveTokenizationUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	row := &Tokenization{
		ID:               "1",
		CommonTokens:     `["python"]`,
		LenCommonTokens:  1,
		MissingTokens:    `["java"]`,
		LenMissingTokens: 1,
		Tokens:           `["python","java"]`,
		Score:            0.5,
	}
	if err := s.SaveTokenization(ctx, row); err != nil {
		t.Fatalf("insert: %v", err)
	}

	row.Score = 0.75
	row.CommonTokens = `["python","django"]`
	row.LenCommonTokens = 2
	if err := s.SaveTokenization(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, err := s.AllTokenizations(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(rows))
	}
	if rows[0].Score != 0.75 || rows[0].LenCommonTokens != 2 {
		t.Fatalf("row not replaced: %+v", rows[0])
	}
}

func TestAllTokenizationsKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		if err := s.SaveTokenization(ctx, &Tokenization{ID: id}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	rows, err := s.AllTokenizations(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if rows[0].ID != "b" || rows[1].ID != "a" || rows[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", rows)
	}
}
