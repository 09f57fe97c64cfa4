package footballdata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/match"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
	"github.com/riskibarqy/btts-tracker/internal/platform/resilience"
)

const defaultBaseURL = "https://api.football-data.org/v4"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Logger     *logging.Logger
	Breaker    resilience.BreakerConfig
}

// Client reads the football-data.org v4 API, the secondary automated
// source. Coverage is thinner than the primary's: the free tier only
// carries top-flight competitions, so leagues without a mapping are
// skipped silently.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	leagueRepo league.Repository
	logger     *logging.Logger
	breaker    *resilience.Breaker
}

func NewClient(cfg ClientConfig, leagueRepo league.Repository) *Client {
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

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		leagueRepo: leagueRepo,
		logger:     logger,
		breaker:    resilience.NewBreaker(cfg.Breaker),
	}
}

func (c *Client) ID() source.ID { return source.FootballData }

func (c *Client) Fetch(ctx context.Context, leagueKey, date string) ([]source.RawMatch, error) {
	lg, exists, err := c.leagueRepo.GetByCode(ctx, leagueKey)
	if err != nil {
		return nil, crerr.Wrapf(source.ErrParseFailure, "resolve league=%s: %v", leagueKey, err)
	}
	if !exists || lg.FootballDataCode == "" {
		// Not an error; the provider does not carry this competition.
		return nil, nil
	}

	isoDate, err := toISODate(date)
	if err != nil {
		return nil, err
	}

	path := "/competitions/" + url.PathEscape(lg.FootballDataCode) + "/matches"
	raw, err := c.doJSON(ctx, path, map[string]string{
		"dateFrom": isoDate,
		"dateTo":   isoDate,
	})
	if err != nil {
		return nil, err
	}

	var envelope matchesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrapf(source.ErrParseFailure, "decode matches league=%s: %v", leagueKey, err)
	}
	return parseMatches(leagueKey, date, envelope), nil
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
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if reqErr != nil {
			return crerr.Wrapf(source.ErrParseFailure, "build request: %v", reqErr)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, reqErr := c.httpClient.Do(req)
		if reqErr != nil {
			return crerr.Wrapf(source.ErrUnreachable, "send request: %v", reqErr)
		}
		defer func() { _ = resp.Body.Close() }()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
		switch {
		case readErr != nil:
			return crerr.Wrapf(source.ErrUnreachable, "read response body: %v", readErr)
		case resp.StatusCode == http.StatusTooManyRequests:
			return crerr.Wrapf(source.ErrRateLimited, "status=%d", resp.StatusCode)
		case resp.StatusCode >= 500:
			return crerr.Wrapf(source.ErrUnreachable, "status=%d", resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return crerr.Wrapf(source.ErrParseFailure, "status=%d", resp.StatusCode)
		}
		raw = body
		return nil
	})
	return raw, err
}

type matchesEnvelope struct {
	Matches []apiMatch `json:"matches"`
}

type apiMatch struct {
	UTCDate  string `json:"utcDate"`
	Status   string `json:"status"`
	Minute   *int   `json:"minute"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

func parseMatches(leagueKey, date string, envelope matchesEnvelope) []source.RawMatch {
	out := make([]source.RawMatch, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		home := strings.TrimSpace(item.HomeTeam.Name)
		away := strings.TrimSpace(item.AwayTeam.Name)
		if home == "" || away == "" {
			continue
		}

		raw := source.RawMatch{
			Source:     source.FootballData,
			LeagueKey:  leagueKey,
			Date:       date,
			HomeTeam:   home,
			AwayTeam:   away,
			StateHint:  mapStatus(item.Status),
			StatusText: statusText(item),
		}
		if raw.StateHint != match.StateScheduled {
			raw.HomeScore = item.Score.FullTime.Home
			raw.AwayScore = item.Score.FullTime.Away
			if raw.HomeScore == nil || raw.AwayScore == nil {
				raw.HomeScore, raw.AwayScore = nil, nil
			}
		}
		out = append(out, raw)
	}
	return out
}

func mapStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "IN_PLAY", "PAUSED", "LIVE":
		return match.StateLive
	case "FINISHED", "AWARDED":
		return match.StateFinished
	case "SCHEDULED", "TIMED", "POSTPONED", "SUSPENDED", "CANCELLED":
		return match.StateScheduled
	default:
		return ""
	}
}

func statusText(item apiMatch) string {
	if item.Minute != nil && *item.Minute > 0 {
		return strconv.Itoa(*item.Minute) + "'"
	}
	return strings.TrimSpace(item.Status)
}

// toISODate converts the internal YYYYMMDD key into the provider's
// YYYY-MM-DD query format.
func toISODate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if len(date) != 8 {
		return "", crerr.Wrapf(source.ErrParseFailure, "date must be YYYYMMDD, got %q", date)
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:], nil
}
