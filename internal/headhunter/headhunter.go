package headhunter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/denisxab/finding-favorite-job/internal/retry"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "finding-favorite-job (github.com/denisxab/finding-favorite-job)"
	// Max value for search per page.
	perPage = "100"

	// The API rate-limits bursts of detail requests, so a failed detail
	// fetch is repeated after a long pause.
	detailRetryAttempts = 3
	detailRetryInterval = 40 * time.Second

	// How many detail requests may be in flight at once.
	defaultFanOut = 3
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string

	// Retry governs detail fetches only. List requests are not retried.
	Retry  *retry.Policy
	FanOut int
}

// New creates a hh.ru API client. The token is optional: the search and
// vacancy endpoints are available anonymously.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:     ctx,
		token:   token,
		APIURL:  apiURL,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
		Retry:     retry.New(detailRetryAttempts, detailRetryInterval),
		FanOut:    defaultFanOut,
	}
}

func (c *Client) Search(params *SearchParams) (*Vacancies, error) {
	return c.search(params)
}
