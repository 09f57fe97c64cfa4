package espn

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
	"github.com/riskibarqy/btts-tracker/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/soccer"
	maxBodyBytes   = 6 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// FetchRedCards enables the per-event summary call that carries
	// card details. Off by default; it multiplies request volume.
	FetchRedCards bool
	Logger        *logging.Logger
	Breaker       resilience.BreakerConfig
}

// Client reads the public scoreboard API. It is the primary source:
// structured JSON, per-league scoreboards, optional per-event summary
// for red cards.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	maxRetries    int
	fetchRedCards bool
	logger        *logging.Logger
	breaker       *resilience.Breaker
	location      *time.Location
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		loc = time.UTC
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		maxRetries:    maxInt(cfg.MaxRetries, 0),
		fetchRedCards: cfg.FetchRedCards,
		logger:        logger,
		breaker:       resilience.NewBreaker(cfg.Breaker),
		location:      loc,
	}
}

func (c *Client) ID() source.ID { return source.ESPN }

func (c *Client) Fetch(ctx context.Context, leagueKey, date string) ([]source.RawMatch, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey == "" {
		return nil, crerr.Wrap(source.ErrParseFailure, "league key is required")
	}

	path := "/" + url.PathEscape(leagueKey) + "/scoreboard"
	raw, err := c.doJSON(ctx, path, map[string]string{"dates": date})
	if err != nil {
		return nil, err
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrapf(source.ErrParseFailure, "decode scoreboard league=%s: %v", leagueKey, err)
	}

	matches := parseScoreboard(leagueKey, date, envelope, c.location)
	if c.fetchRedCards {
		c.hydrateRedCards(ctx, leagueKey, matches, envelope)
	}
	return matches, nil
}

// hydrateRedCards fills card counts from the per-event summary. Only
// in-play and finished fixtures are worth the extra request; a failed
// summary leaves the counts at zero rather than failing the fetch.
func (c *Client) hydrateRedCards(ctx context.Context, leagueKey string, matches []source.RawMatch, envelope scoreboardEnvelope) {
	ids := make(map[string]string, len(matches))
	for _, event := range envelope.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		if comp.Status.Type.State == statePre {
			continue
		}
		home, away := competitorNames(comp)
		ids[redCardKey(home, away)] = event.ID
	}

	for i := range matches {
		eventID, ok := ids[redCardKey(matches[i].HomeTeam, matches[i].AwayTeam)]
		if !ok {
			continue
		}
		homeReds, awayReds, err := c.fetchSummaryRedCards(ctx, leagueKey, eventID)
		if err != nil {
			c.logger.DebugContext(ctx, "summary fetch failed, red cards unknown",
				"league", leagueKey,
				"event", eventID,
				"error", err,
			)
			continue
		}
		matches[i].HomeRedCards = homeReds
		matches[i].AwayRedCards = awayReds
	}
}

func (c *Client) fetchSummaryRedCards(ctx context.Context, leagueKey, eventID string) (int, int, error) {
	path := "/" + url.PathEscape(leagueKey) + "/summary"
	raw, err := c.doJSON(ctx, path, map[string]string{"event": eventID})
	if err != nil {
		return 0, 0, err
	}

	var envelope summaryEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return 0, 0, crerr.Wrapf(source.ErrParseFailure, "decode summary event=%s: %v", eventID, err)
	}
	home, away := countRedCards(envelope)
	return home, away, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	values := url.Values{}
	for key, value := range query {
		if value != "" {
			values.Set(key, value)
		}
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Do(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	})
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrapf(source.ErrParseFailure, "build request: %v", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(source.ErrUnreachable, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(source.ErrUnreachable, "read response body: %v", readErr)
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = crerr.Wrapf(source.ErrRateLimited, "status=%d", resp.StatusCode)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode >= 500:
				lastErr = crerr.Wrapf(source.ErrUnreachable, "status=%d", resp.StatusCode)
			default:
				return nil, crerr.Wrapf(source.ErrParseFailure, "status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func redCardKey(home, away string) string {
	return match.NormalizeTeamName(home) + "|" + match.NormalizeTeamName(away)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
