package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/denisxab/finding-favorite-job/internal/headhunter"
	"github.com/denisxab/finding-favorite-job/internal/match"
	"github.com/denisxab/finding-favorite-job/internal/store"
)

// Source is the slice of the job-source client the pipeline uses.
type Source interface {
	Search(params *headhunter.SearchParams) (*headhunter.Vacancies, error)
	FetchDetails(ids []string) *headhunter.DetailBatch
}

// Tokenizer turns texts into token sequences.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
	TokenizeMany(ctx context.Context, texts []string) ([][]string, error)
}

// Storage is the slice of the persistence layer the pipeline uses.
type Storage interface {
	HasVacancy(ctx context.Context, id string) (bool, error)
	SaveVacancy(ctx context.Context, v *store.Vacancy) error
	SaveTokenization(ctx context.Context, t *store.Tokenization) error
	UnappliedDescriptions(ctx context.Context) ([]store.JobText, error)
}

// Pipeline runs the fetch -> normalize -> persist -> tokenize flow. Each
// stage is resumable on its own through the snapshot state.
type Pipeline struct {
	source     Source
	tokens     Tokenizer
	storage    Storage
	state      *State
	search     *headhunter.SearchParams
	resumeFile string
	logger     *zap.Logger
}

func New(source Source, tokens Tokenizer, storage Storage, state *State, search *headhunter.SearchParams, resumeFile string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		source:     source,
		tokens:     tokens,
		storage:    storage,
		state:      state,
		search:     search,
		resumeFile: resumeFile,
		logger:     logger,
	}
}

// FetchList retrieves all pages of vacancies matching the configured search
// and replaces the list snapshot. Transport failures propagate: the list
// stage is not retried.
func (p *Pipeline) FetchList(ctx context.Context) error {
	vacancies, err := p.source.Search(p.search)
	if err != nil {
		return fmt.Errorf("searching vacancies: %w", err)
	}

	if err := p.state.WriteList(vacancies.Items); err != nil {
		return err
	}

	p.logger.Info("list snapshot written", zap.Int("count", vacancies.Len()))
	return nil
}

// FetchText loads pending ids (previously failed ones first), skips those
// already stored and fetches the full payload for the rest. Successes go to
// the detail snapshot; ids that still fail go to the error snapshot, which
// is removed when the run is clean.
func (p *Pipeline) FetchText(ctx context.Context) error {
	ids, fromErrors, err := p.state.ReadPending()
	if err != nil {
		return fmt.Errorf("loading pending vacancies: %w", err)
	}

	if fromErrors {
		p.logger.Info("retrying previously failed vacancies", zap.Int("count", len(ids)))
	} else {
		p.logger.Info("loading pending vacancies", zap.Int("count", len(ids)))
	}

	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		stored, err := p.storage.HasVacancy(ctx, id)
		if err != nil {
			return fmt.Errorf("checking vacancy %s: %w", id, err)
		}
		if !stored {
			pending = append(pending, id)
		}
	}

	if len(pending) == 0 {
		p.logger.Info("all pending vacancies are already stored")
		return nil
	}

	batch := p.source.FetchDetails(pending)

	if err := p.state.WriteDetails(batch.Items); err != nil {
		return err
	}

	if len(batch.Failed) > 0 {
		p.logger.Warn("some vacancies failed to fetch", zap.Strings("vacancy_ids", batch.Failed))
		return p.state.WriteErrors(batch.Failed)
	}
	return p.state.ClearErrors()
}

// Convert normalizes every fetched detail payload and upserts it into the
// vacancies table. Payloads carrying the API error marker and rows that fail
// to save are logged and skipped without aborting the batch.
func (p *Pipeline) Convert(ctx context.Context) error {
	items, err := p.state.ReadDetails()
	if err != nil {
		return fmt.Errorf("loading detail snapshot: %w", err)
	}

	saved := 0
	for _, item := range items {
		if item.HasErrors() {
			p.logger.Warn("skipping vacancy with api errors",
				zap.String("vacancy_id", item.ID),
				zap.Any("errors", item.Errors),
			)
			continue
		}

		row, err := normalizeVacancy(item)
		if err != nil {
			p.logger.Warn("skipping malformed vacancy",
				zap.String("vacancy_id", item.ID),
				zap.Error(err),
			)
			continue
		}

		if err := p.storage.SaveVacancy(ctx, row); err != nil {
			// Already logged by the store. The rest of the batch continues.
			continue
		}
		saved++
	}

	p.logger.Info("vacancies stored", zap.Int("saved", saved), zap.Int("total", len(items)))
	return nil
}

// TokenizeAll tokenizes the resume and every stored un-applied vacancy and
// replaces their analysis rows. A tokenization service failure aborts the
// stage.
func (p *Pipeline) TokenizeAll(ctx context.Context) error {
	resume, err := os.ReadFile(p.resumeFile)
	if err != nil {
		return fmt.Errorf("reading resume: %w", err)
	}

	resumeTokens, err := p.tokens.Tokenize(ctx, string(resume))
	if err != nil {
		return fmt.Errorf("tokenizing resume: %w", err)
	}

	jobs, err := p.storage.UnappliedDescriptions(ctx)
	if err != nil {
		return fmt.Errorf("loading vacancy descriptions: %w", err)
	}

	texts := make([]string, len(jobs))
	for i, job := range jobs {
		texts[i] = job.Description
	}

	tokenLists, err := p.tokens.TokenizeMany(ctx, texts)
	if err != nil {
		return fmt.Errorf("tokenizing vacancies: %w", err)
	}

	for i, job := range jobs {
		row, err := buildTokenization(job.ID, resumeTokens, tokenLists[i])
		if err != nil {
			return err
		}
		if err := p.storage.SaveTokenization(ctx, row); err != nil {
			continue
		}
	}

	p.logger.Info("tokenization rows stored", zap.Int("count", len(jobs)))
	return nil
}

// IngestText runs the detail, normalize and tokenize stages in order.
func (p *Pipeline) IngestText(ctx context.Context) error {
	if err := p.FetchText(ctx); err != nil {
		return err
	}
	if err := p.Convert(ctx); err != nil {
		return err
	}
	return p.TokenizeAll(ctx)
}

func buildTokenization(id string, resumeTokens, jobTokens []string) (*store.Tokenization, error) {
	common, missing := match.Partition(resumeTokens, jobTokens)
	score := match.BaseScore(len(common), len(jobTokens))

	if common == nil {
		common = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	if jobTokens == nil {
		jobTokens = []string{}
	}

	commonJSON, err := json.Marshal(common)
	if err != nil {
		return nil, err
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return nil, err
	}
	tokensJSON, err := json.Marshal(jobTokens)
	if err != nil {
		return nil, err
	}

	return &store.Tokenization{
		ID:               id,
		CommonTokens:     string(commonJSON),
		LenCommonTokens:  len(common),
		MissingTokens:    string(missingJSON),
		LenMissingTokens: len(missing),
		Tokens:           string(tokensJSON),
		Score:            math.Round(score*100) / 100,
	}, nil
}
