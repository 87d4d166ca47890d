package tokenize

import (
	"reflect"
	"testing"
)

func TestTextToTokensCleansAndLowercases(t *testing.T) {
	got := TextToTokens("  Hello, WORLD!!! ")
	want := []string{"hello", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTextToTokensKeepsDigits(t *testing.T) {
	got := TextToTokens("from 100 to 200")
	if got[1] != "100" || got[3] != "200" {
		t.Fatalf("numbers must pass through unchanged, got %v", got)
	}
}

func TestTextToTokensStemsEnglish(t *testing.T) {
	got := TextToTokens("running tests")
	want := []string{"run", "test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTextToTokensStemsRussian(t *testing.T) {
	got := TextToTokens("высшее")
	if len(got) != 1 || got[0] != "высш" {
		t.Fatalf("expected [высш], got %v", got)
	}
}

func TestTextToTokensMixedScripts(t *testing.T) {
	got := TextToTokens("Python-разработчик, 3 positions")
	if len(got) != 4 {
		t.Fatalf("expected 4 tokens, got %v", got)
	}
	if got[0] != "python" {
		t.Fatalf("expected latin token stemmed to python, got %q", got[0])
	}
	if got[2] != "3" {
		t.Fatalf("expected digit token 3, got %q", got[2])
	}
}

func TestTextToTokensEmptyInput(t *testing.T) {
	if got := TextToTokens("   ...   "); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}
