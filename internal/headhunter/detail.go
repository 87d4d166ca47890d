package headhunter

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/denisxab/finding-favorite-job/internal/logger"
)

// DetailBatch is the outcome of fetching full payloads for a set of vacancy
// ids. Items keeps dispatch order. Failed lists ids that exhausted their
// retry budget; they carry no result and the rest of the batch is unaffected.
type DetailBatch struct {
	Items  []*Vacancy
	Failed []string
}

// FetchDetails loads the full payload for every id with bounded concurrency.
// A single id failing after all retries is recorded in Failed instead of
// failing the batch.
func (c *Client) FetchDetails(ids []string) *DetailBatch {
	results := make([]*Vacancy, len(ids))

	var mu sync.Mutex
	var failed []string

	g := new(errgroup.Group)
	g.SetLimit(c.FanOut)

	for i, id := range ids {
		g.Go(func() error {
			vacancy, err := c.fetchDetail(id)
			if err != nil {
				// Error bodies can be whole HTML pages (captcha and so on).
				c.logger.Warn("fetching vacancy detail",
					zap.String("vacancy_id", id),
					zap.String("error", logger.TruncateForLog(err.Error(), 500)),
				)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				return nil
			}
			results[i] = vacancy
			return nil
		})
	}

	// Goroutines never return errors: failures are collected per id.
	_ = g.Wait()

	batch := &DetailBatch{Failed: failed}
	for _, vacancy := range results {
		if vacancy != nil {
			batch.Items = append(batch.Items, vacancy)
		}
	}
	return batch
}

func (c *Client) fetchDetail(id string) (*Vacancy, error) {
	detailURL := fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id)

	var vacancy *Vacancy
	err := c.Retry.Do(c.ctx, func() error {
		var v Vacancy
		if err := c.getJSON(detailURL, nil, &v); err != nil {
			return err
		}
		if v.HasErrors() {
			return fmt.Errorf("api error marker in payload: %v", v.Errors)
		}
		vacancy = &v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return vacancy, nil
}
