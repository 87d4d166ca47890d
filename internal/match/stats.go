package match

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/denisxab/finding-favorite-job/internal/store"
)

const (
	// TokenTypeCommon selects tokens present in the resume.
	TokenTypeCommon = "common_tokens"
	// TokenTypeMissing selects tokens absent from the resume.
	TokenTypeMissing = "missing_token"

	LangAll     = "all"
	LangEnglish = "eng"

	// The report is capped to the most frequent entries.
	maxReportEntries = 200
)

// TokenCount is one entry of the frequency report. Percent is the share of
// scanned vacancies mentioning the token, rounded to two decimals.
type TokenCount struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"count_p"`
}

// FrequentSkills is the token frequency distribution across all analyzed
// vacancies.
type FrequentSkills struct {
	TokenType string       `json:"type_token"`
	AllCount  int          `json:"all_count"`
	Message   []TokenCount `json:"message"`
}

// FrequentSkillsReport counts how often each token of the selected category
// occurs across the stored analysis rows. Rows with an empty selected token
// list are not scanned. Entries are ordered by count descending with
// encounter-order ties and capped to the top 200.
func FrequentSkillsReport(rows []store.Tokenization, lang, tokenType string) (*FrequentSkills, error) {
	if tokenType != TokenTypeCommon && tokenType != TokenTypeMissing {
		return nil, fmt.Errorf("unknown token type %q", tokenType)
	}
	if lang != LangAll && lang != LangEnglish {
		return nil, fmt.Errorf("unknown language filter %q", lang)
	}

	counts := make(map[string]int)
	var order []string
	allCount := 0

	for _, row := range rows {
		raw := row.CommonTokens
		if tokenType == TokenTypeMissing {
			raw = row.MissingTokens
		}
		if raw == "" {
			continue
		}

		var tokens []string
		if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
			return nil, fmt.Errorf("decoding tokens for vacancy %s: %w", row.ID, err)
		}

		for _, token := range tokens {
			if _, ok := counts[token]; !ok {
				order = append(order, token)
			}
			counts[token]++
		}
		allCount++
	}

	report := &FrequentSkills{TokenType: tokenType, AllCount: allCount}
	if allCount == 0 {
		return report, nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	for _, name := range order {
		if lang == LangEnglish && !startsWithLatin(name) {
			continue
		}
		report.Message = append(report.Message, TokenCount{
			Name:    name,
			Count:   counts[name],
			Percent: round2(float64(counts[name]) / float64(allCount) * 100),
		})
		if len(report.Message) == maxReportEntries {
			break
		}
	}

	return report, nil
}

func startsWithLatin(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
