package bbc

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
)

const (
	defaultBaseURL  = "https://www.bbc.com/sport/football"
	defaultPageWait = 3 * time.Second
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"
)

type ClientConfig struct {
	BaseURL string
	// PageWait is how long to let the scores page render before
	// reading it.
	PageWait time.Duration
	Timeout  time.Duration
	Logger   *logging.Logger
}

// Client scrapes the rendered scores-and-fixtures page with a headless
// browser. It is the lowest-priority source: useful for lower-league
// coverage the structured APIs miss, tolerated when markup drifts.
type Client struct {
	baseURL    string
	pageWait   time.Duration
	timeout    time.Duration
	leagueRepo league.Repository
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig, leagueRepo league.Repository) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageWait := cfg.PageWait
	if pageWait <= 0 {
		pageWait = defaultPageWait
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		pageWait:   pageWait,
		timeout:    timeout,
		leagueRepo: leagueRepo,
		logger:     logger,
	}
}

func (c *Client) ID() source.ID { return source.BBC }

func (c *Client) Fetch(ctx context.Context, leagueKey, date string) ([]source.RawMatch, error) {
	lg, exists, err := c.leagueRepo.GetByCode(ctx, leagueKey)
	if err != nil {
		return nil, crerr.Wrapf(source.ErrParseFailure, "resolve league=%s: %v", leagueKey, err)
	}
	if !exists || lg.BBCSlug == "" {
		return nil, nil
	}
	if len(date) != 8 {
		return nil, crerr.Wrapf(source.ErrParseFailure, "date must be YYYYMMDD, got %q", date)
	}

	pageURL := c.baseURL + "/" + lg.BBCSlug + "/scores-fixtures/" + date[:4] + "-" + date[4:6] + "-" + date[6:]
	text, err := c.renderPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	matches := parseScoresPage(leagueKey, date, text)
	c.logger.DebugContext(ctx, "scores page scraped",
		"league", leagueKey,
		"url", pageURL,
		"matches", len(matches),
	)
	return matches, nil
}

// renderPage loads the URL in a fresh headless browser and returns the
// visible text of the main content area.
func (c *Client) renderPage(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(c.pageWait),
		chromedp.Text("main", &text, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", crerr.Wrapf(source.ErrUnreachable, "render %s: %v", pageURL, ctx.Err())
		}
		return "", crerr.Wrapf(source.ErrUnreachable, "render %s: %v", pageURL, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", crerr.Wrapf(source.ErrParseFailure, "empty page %s", pageURL)
	}
	return text, nil
}
