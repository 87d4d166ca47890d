package ingest

import (
	"testing"
	"time"

	"github.com/denisxab/finding-favorite-job/internal/headhunter"
)

func TestParseLocalTimeStripsOffset(t *testing.T) {
	got, err := parseLocalTime("2024-01-02T15:04:05+0300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeVacancy(t *testing.T) {
	from, to := 200000, 300000
	gross := true

	v := &headhunter.Vacancy{
		ID:          "42",
		Experience:  headhunter.IDName{ID: "between3And6", Name: "От 3 до 6 лет"},
		Schedule:    headhunter.IDName{ID: "remote", Name: "Удаленная работа"},
		Employment:  headhunter.IDName{ID: "full", Name: "Полная занятость"},
		Description: "<p>Нужен <b>Python</b> разработчик</p>",
		KeySkills: []struct {
			Name string `json:"name,omitempty"`
		}{{Name: "Python"}, {Name: "Django"}},
		Salary:           &headhunter.Salary{From: &from, To: &to, Currency: "RUR", Gross: &gross},
		Type:             headhunter.IDName{ID: "open", Name: "Открытая"},
		PublishedAt:      "2024-01-02T15:04:05+0300",
		CreatedAt:        "2024-01-02T15:04:05+0300",
		InitialCreatedAt: "2024-01-01T10:00:00+0300",
	}
	v.Employer.ID = "99"
	v.Employer.Name = "Acme"
	v.Employer.URL = "https://example.com/acme"

	row, err := normalizeVacancy(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if row.Experience != "От 3 до 6 лет" || row.Schedule != "Удаленная работа" {
		t.Fatalf("dictionary values not flattened to names: %+v", row)
	}
	if row.KeySkills != `["Python","Django"]` {
		t.Fatalf("unexpected key skills: %q", row.KeySkills)
	}
	if row.EmployerName != "Acme" || row.EmployerURL != "https://example.com/acme" {
		t.Fatalf("employer not carried over: %+v", row)
	}
	if *row.SalaryFrom != 200000 || *row.SalaryTo != 300000 || *row.SalaryCurrency != "RUR" || !*row.SalaryGross {
		t.Fatalf("salary not carried over: %+v", row)
	}
	if row.TypeOpen != "open" {
		t.Fatalf("expected type id, got %q", row.TypeOpen)
	}
	if row.InitialCreatedAt != time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected initial_created_at: %v", row.InitialCreatedAt)
	}
}

func TestNormalizeVacancyNoSalary(t *testing.T) {
	v := &headhunter.Vacancy{
		ID:               "1",
		PublishedAt:      "2024-01-02T15:04:05+0300",
		CreatedAt:        "2024-01-02T15:04:05+0300",
		InitialCreatedAt: "2024-01-02T15:04:05+0300",
	}

	row, err := normalizeVacancy(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.SalaryFrom != nil || row.SalaryTo != nil || row.SalaryCurrency != nil || row.SalaryGross != nil {
		t.Fatalf("expected nil salary fields, got %+v", row)
	}
	if row.KeySkills != "" {
		t.Fatalf("expected empty key skills, got %q", row.KeySkills)
	}
}

func TestNormalizeVacancyRejectsMissingID(t *testing.T) {
	if _, err := normalizeVacancy(&headhunter.Vacancy{}); err == nil {
		t.Fatal("expected error for payload without id")
	}
}
