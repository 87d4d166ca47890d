package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/denisxab/finding-favorite-job/internal/match"
	"github.com/denisxab/finding-favorite-job/internal/store"
)

const (
	defaultPageSize = 30
)

// Ingestor triggers the ingestion pipeline stages.
type Ingestor interface {
	FetchList(ctx context.Context) error
	IngestText(ctx context.Context) error
}

// Matcher answers the analysis queries.
type Matcher interface {
	Rank(ctx context.Context, limit int) ([]match.Match, error)
	FrequentSkills(ctx context.Context, lang, tokenType string) (*match.FrequentSkills, error)
}

// Jobs is the slice of the persistence layer the API touches directly.
type Jobs interface {
	SetApplied(ctx context.Context, id string, applied bool) error
}

// Server is the HTTP surface of the service.
type Server struct {
	addr     string
	pipeline Ingestor
	finder   Matcher
	jobs     Jobs
	logger   *zap.Logger
}

func New(addr string, pipeline Ingestor, finder Matcher, jobs Jobs, logger *zap.Logger) *Server {
	return &Server{
		addr:     addr,
		pipeline: pipeline,
		finder:   finder,
		jobs:     jobs,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /vacancies/list", s.handleFetchList)
	mux.HandleFunc("POST /vacancies/text", s.handleFetchText)
	mux.HandleFunc("POST /vacancies/{id}/applied", s.handleSetApplied)
	mux.HandleFunc("GET /matches", s.handleMatches)
	mux.HandleFunc("GET /skills/frequent", s.handleFrequentSkills)
	return mux
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("api listening", zap.String("addr", s.addr))
	return srv.ListenAndServe()
}

// handleFetchList pulls the vacancy list from hh.ru into the list snapshot.
func (s *Server) handleFetchList(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.FetchList(r.Context()); err != nil {
		s.logger.Error("fetching vacancy list", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

// handleFetchText fetches full texts, stores and tokenizes them. Per-id
// failures are not reported here: they land in the error snapshot and are
// retried on the next call.
func (s *Server) handleFetchText(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.IngestText(r.Context()); err != nil {
		s.logger.Error("ingesting vacancy texts", zap.Error(err))
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

// handleMatches returns one page of vacancies ranked against the resume.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 0)
	perPage := intQuery(r, "per_page", defaultPageSize)
	if page < 0 || perPage <= 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("page must be >= 0 and per_page > 0"))
		return
	}

	matches, err := s.finder.Rank(r.Context(), 0)
	if err != nil {
		s.logger.Error("ranking vacancies", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, pageOf(matches, page, perPage))
}

// handleFrequentSkills returns the token frequency statistics.
func (s *Server) handleFrequentSkills(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = match.LangAll
	}
	tokenType := r.URL.Query().Get("type_token")
	if tokenType == "" {
		tokenType = match.TokenTypeMissing
	}

	report, err := s.finder.FrequentSkills(r.Context(), lang, tokenType)
	if err != nil {
		s.logger.Error("building skills report", zap.Error(err))
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleSetApplied flags a vacancy as responded to, removing it from future
// ranking runs.
func (s *Server) handleSetApplied(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	applied := true
	if r.ContentLength > 0 {
		var body struct {
			Applied *bool `json:"applied"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("invalid json body"))
			return
		}
		if body.Applied != nil {
			applied = *body.Applied
		}
	}

	if err := s.jobs.SetApplied(r.Context(), id, applied); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.logger.Error("marking vacancy applied", zap.String("vacancy_id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

func pageOf(matches []match.Match, page, perPage int) []match.Match {
	start := page * perPage
	if start >= len(matches) {
		return []match.Match{}
	}
	end := start + perPage
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end]
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
