package tokenize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// How many texts may be tokenized concurrently in TokenizeMany.
const defaultFanOut = 3

// ServiceError is a non-success response from the tokenization service.
// There is no recovery from it: without tokens no overlap can be computed,
// so callers abort the current batch.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("tokenization service: status %d: %s", e.Status, e.Body)
}

// Client talks to the text-to-tokens service.
type Client struct {
	URL        string
	HTTPClient *http.Client
	FanOut     int

	logger *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		FanOut: defaultFanOut,
		logger: logger,
	}
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// Tokenize sends one text to the service and returns its token sequence.
func (c *Client) Tokenize(ctx context.Context, text string) ([]string, error) {
	payload, err := json.Marshal(tokenizeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Status: resp.StatusCode, Body: string(body)}
	}

	var result tokenizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return result.Tokens, nil
}

// TokenizeMany tokenizes all texts concurrently and returns token sequences
// in input order. Any failure aborts the whole batch.
func (c *Client) TokenizeMany(ctx context.Context, texts []string) ([][]string, error) {
	results := make([][]string, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.FanOut)

	for i, text := range texts {
		g.Go(func() error {
			tokens, err := c.Tokenize(ctx, text)
			if err != nil {
				return err
			}
			results[i] = tokens
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
