package match

import (
	"testing"

	"github.com/denisxab/finding-favorite-job/internal/store"
)

func TestFrequentSkillsReportCommonTokens(t *testing.T) {
	rows := []store.Tokenization{
		{ID: "1", CommonTokens: `["a","b"]`},
		{ID: "2", CommonTokens: `["a"]`},
	}

	report, err := FrequentSkillsReport(rows, LangAll, TokenTypeCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.AllCount != 2 {
		t.Fatalf("expected 2 scanned rows, got %d", report.AllCount)
	}
	if len(report.Message) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.Message))
	}

	first, second := report.Message[0], report.Message[1]
	if first.Name != "a" || first.Count != 2 || first.Percent != 100.0 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if second.Name != "b" || second.Count != 1 || second.Percent != 50.0 {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestFrequentSkillsReportSkipsEmptyRows(t *testing.T) {
	rows := []store.Tokenization{
		{ID: "1", MissingTokens: `["kafka"]`},
		{ID: "2", MissingTokens: ""},
		{ID: "3", MissingTokens: `["kafka","scala"]`},
	}

	report, err := FrequentSkillsReport(rows, LangAll, TokenTypeMissing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.AllCount != 2 {
		t.Fatalf("rows with no tokens must not be scanned, got %d", report.AllCount)
	}
	if report.Message[0].Name != "kafka" || report.Message[0].Percent != 100.0 {
		t.Fatalf("unexpected top entry: %+v", report.Message[0])
	}
}

func TestFrequentSkillsReportEnglishFilter(t *testing.T) {
	rows := []store.Tokenization{
		{ID: "1", MissingTokens: `["go","линукс","kafka"]`},
	}

	report, err := FrequentSkillsReport(rows, LangEnglish, TokenTypeMissing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Message) != 2 {
		t.Fatalf("expected only latin-script tokens, got %+v", report.Message)
	}
	for _, entry := range report.Message {
		if entry.Name == "линукс" {
			t.Fatal("cyrillic token leaked through the eng filter")
		}
	}
}

func TestFrequentSkillsReportTiesKeepEncounterOrder(t *testing.T) {
	rows := []store.Tokenization{
		{ID: "1", CommonTokens: `["zeta","alpha"]`},
	}

	report, err := FrequentSkillsReport(rows, LangAll, TokenTypeCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Message[0].Name != "zeta" || report.Message[1].Name != "alpha" {
		t.Fatalf("ties must keep encounter order, got %+v", report.Message)
	}
}

func TestFrequentSkillsReportRejectsUnknownSelectors(t *testing.T) {
	if _, err := FrequentSkillsReport(nil, LangAll, "everything"); err == nil {
		t.Fatal("expected error for unknown token type")
	}
	if _, err := FrequentSkillsReport(nil, "klingon", TokenTypeCommon); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestFrequentSkillsReportEmptyInput(t *testing.T) {
	report, err := FrequentSkillsReport(nil, LangAll, TokenTypeCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.AllCount != 0 || len(report.Message) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
