package tokenize

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server exposes TextToTokens over HTTP so that tokenization stays an
// external capability for the main service.
type Server struct {
	addr   string
	logger *zap.Logger
}

func NewServer(addr string, logger *zap.Logger) *Server {
	return &Server{addr: addr, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /text_to_tokens", s.handleTextToTokens)
	return mux
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("tokenization service listening", zap.String("addr", s.addr))
	return srv.ListenAndServe()
}

func (s *Server) handleTextToTokens(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	tokens := TextToTokens(req.Text)
	s.logger.Debug("tokenized text", zap.Int("tokens", len(tokens)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokenizeResponse{Tokens: tokens}); err != nil {
		s.logger.Error("writing tokenization response", zap.Error(err))
	}
}
