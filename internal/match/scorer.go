package match

import (
	"sort"
	"strings"
)

// JobTokens is the scoring input for one vacancy.
type JobTokens struct {
	ID     string
	Tokens []string
	Text   string
}

// Match is one scored vacancy.
type Match struct {
	VacancyID       string   `json:"vacancy_id"`
	Score           float64  `json:"score"`
	PreferenceScore float64  `json:"preference_score"`
	CommonTokens    []string `json:"common_tokens"`
	MissingTokens   []string `json:"missing_tokens"`
	Tokens          []string `json:"tokens"`
	Text            string   `json:"text"`
}

// Scorer ranks vacancies against a resume token set using the injected
// preference table.
type Scorer struct {
	prefs Preferences
}

func NewScorer(prefs Preferences) *Scorer {
	return &Scorer{prefs: prefs}
}

// Partition splits the distinct tokens of a job into those present in the
// resume and those absent from it, keeping first-encounter order. The two
// halves are a strict complement of the job's token set.
func Partition(resumeTokens, jobTokens []string) (common, missing []string) {
	resumeSet := toSet(resumeTokens)
	seen := make(map[string]struct{}, len(jobTokens))

	for _, token := range jobTokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := resumeSet[token]; ok {
			common = append(common, token)
		} else {
			missing = append(missing, token)
		}
	}
	return common, missing
}

// BaseScore is the share of a job's tokens covered by the resume:
// |common| / |J|, or 0 for a job without tokens.
func BaseScore(commonCount, totalCount int) float64 {
	if totalCount == 0 {
		return 0
	}
	return float64(commonCount) / float64(totalCount)
}

// Rank scores every job and returns them ordered by preference score,
// highest first. Jobs with equal scores keep their input order. A limit of
// zero or less returns the full list.
func (s *Scorer) Rank(resumeTokens []string, jobs []JobTokens, limit int) []Match {
	matches := make([]Match, 0, len(jobs))
	for _, job := range jobs {
		matches = append(matches, s.score(resumeTokens, job))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PreferenceScore > matches[j].PreferenceScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (s *Scorer) score(resumeTokens []string, job JobTokens) Match {
	common, missing := Partition(resumeTokens, job.Tokens)
	base := BaseScore(len(common), len(job.Tokens))

	preference := base

	// Token weights count every occurrence, not distinct tokens.
	for _, token := range job.Tokens {
		if weight, ok := s.prefs.Tokens[token]; ok {
			preference += weight
		}
	}

	// Phrase matching is a substring search over the comma-joined token
	// stream. A group adds its weight once per matching sequence.
	joined := strings.Join(job.Tokens, ",")
	for _, group := range s.prefs.Phrases {
		for _, sequence := range group.Sequences {
			if strings.Contains(joined, strings.Join(sequence, ",")) {
				preference += group.Score
			}
		}
	}

	return Match{
		VacancyID:       job.ID,
		Score:           base,
		PreferenceScore: preference,
		CommonTokens:    common,
		MissingTokens:   missing,
		Tokens:          job.Tokens,
		Text:            job.Text,
	}
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
