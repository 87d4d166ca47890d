package match

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/denisxab/finding-favorite-job/internal/store"
)

// TokenSource turns texts into token sequences. Implemented by the
// tokenization service client; tests inject a fake.
type TokenSource interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
	TokenizeMany(ctx context.Context, texts []string) ([][]string, error)
}

// Storage is the slice of the persistence layer the finder needs.
type Storage interface {
	UnappliedDescriptions(ctx context.Context) ([]store.JobText, error)
	AllTokenizations(ctx context.Context) ([]store.Tokenization, error)
}

// Finder answers the two analysis queries: ranked matches against the resume
// and token frequency statistics.
type Finder struct {
	storage    Storage
	tokens     TokenSource
	scorer     *Scorer
	resumeFile string
	logger     *zap.Logger
}

func NewFinder(storage Storage, tokens TokenSource, scorer *Scorer, resumeFile string, logger *zap.Logger) *Finder {
	return &Finder{
		storage:    storage,
		tokens:     tokens,
		scorer:     scorer,
		resumeFile: resumeFile,
		logger:     logger,
	}
}

// Rank tokenizes the resume and every stored un-applied vacancy and returns
// them ordered by preference score. Tokenization failure aborts the whole
// call: no score can be computed without tokens.
func (f *Finder) Rank(ctx context.Context, limit int) ([]Match, error) {
	resume, err := os.ReadFile(f.resumeFile)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}

	resumeTokens, err := f.tokens.Tokenize(ctx, string(resume))
	if err != nil {
		return nil, fmt.Errorf("tokenizing resume: %w", err)
	}

	jobs, err := f.storage.UnappliedDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vacancy descriptions: %w", err)
	}

	texts := make([]string, len(jobs))
	for i, job := range jobs {
		texts[i] = job.Description
	}

	tokenLists, err := f.tokens.TokenizeMany(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("tokenizing vacancies: %w", err)
	}

	jobTokens := make([]JobTokens, len(jobs))
	for i, job := range jobs {
		jobTokens[i] = JobTokens{ID: job.ID, Tokens: tokenLists[i], Text: job.Description}
	}

	f.logger.Debug("ranking vacancies",
		zap.Int("vacancies", len(jobTokens)),
		zap.Int("resume_tokens", len(resumeTokens)),
	)

	return f.scorer.Rank(resumeTokens, jobTokens, limit), nil
}

// FrequentSkills builds the token frequency report from the stored analysis
// rows.
func (f *Finder) FrequentSkills(ctx context.Context, lang, tokenType string) (*FrequentSkills, error) {
	rows, err := f.storage.AllTokenizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tokenization rows: %w", err)
	}
	return FrequentSkillsReport(rows, lang, tokenType)
}
