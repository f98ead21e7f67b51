package theoddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.the-odds-api.com/v4"
	defaultSportKey   = "americanfootball_nfl"
	defaultRegions    = "us"
	defaultMarkets    = "h2h"
	oddsFormatValue   = "american"
	dateFormatValue   = "iso"
	responseBodyLimit = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsAPITransient = crerr.New("odds api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	SportKey       string
	Regions        string
	Markets        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads The Odds API v4. The zero-argument fetchers bind the sport,
// regions and markets from the config so the client satisfies the sync
// service's provider interface directly.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	sportKey       string
	regions        string
	markets        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
	sportKey := strings.TrimSpace(cfg.SportKey)
	if sportKey == "" {
		sportKey = defaultSportKey
	}
	regions := strings.TrimSpace(cfg.Regions)
	if regions == "" {
		regions = defaultRegions
	}
	markets := strings.TrimSpace(cfg.Markets)
	if markets == "" {
		markets = defaultMarkets
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		sportKey:       sportKey,
		regions:        regions,
		markets:        markets,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchOdds(ctx context.Context) ([]usecase.ExternalOddsEvent, error) {
	return c.FetchOddsForSport(ctx, c.sportKey, c.regions, c.markets)
}

func (c *Client) FetchOddsForSport(ctx context.Context, sportKey, regions, markets string) ([]usecase.ExternalOddsEvent, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("sport key is required")
	}

	path := fmt.Sprintf("/sports/%s/odds", url.PathEscape(sportKey))
	query := map[string]string{
		"regions":    regions,
		"markets":    markets,
		"oddsFormat": oddsFormatValue,
		"dateFormat": dateFormatValue,
	}

	var items []oddsEventItem
	if err := c.doJSON(ctx, path, query, &items); err != nil {
		return nil, fmt.Errorf("fetch odds sport=%s: %w", sportKey, err)
	}

	out := make([]usecase.ExternalOddsEvent, 0, len(items))
	for _, item := range items {
		out = append(out, mapOddsEvent(item))
	}
	return out, nil
}

func (c *Client) FetchScores(ctx context.Context, daysFrom int) ([]usecase.ExternalScoreEvent, error) {
	return c.FetchScoresForSport(ctx, c.sportKey, daysFrom)
}

func (c *Client) FetchScoresForSport(ctx context.Context, sportKey string, daysFrom int) ([]usecase.ExternalScoreEvent, error) {
	sportKey = strings.TrimSpace(sportKey)
	if sportKey == "" {
		return nil, fmt.Errorf("sport key is required")
	}

	path := fmt.Sprintf("/sports/%s/scores", url.PathEscape(sportKey))
	query := map[string]string{
		"dateFormat": dateFormatValue,
	}
	if daysFrom > 0 {
		query["daysFrom"] = strconv.Itoa(daysFrom)
	}

	var items []scoreEventItem
	if err := c.doJSON(ctx, path, query, &items); err != nil {
		return nil, fmt.Errorf("fetch scores sport=%s: %w", sportKey, err)
	}

	out := make([]usecase.ExternalScoreEvent, 0, len(items))
	for _, item := range items {
		out = append(out, mapScoreEvent(item))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		if strings.TrimSpace(value) == "" {
			continue
		}
		values.Set(key, value)
	}
	values.Set("apiKey", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isOddsAPICircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOddsAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				c.logQuota(ctx, resp.Header)
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "odds api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// logQuota surfaces the plan usage headers so the request budget is visible
// in the logs before the provider starts rejecting calls.
func (c *Client) logQuota(ctx context.Context, header http.Header) {
	remaining := strings.TrimSpace(header.Get("X-Requests-Remaining"))
	if remaining == "" {
		return
	}
	c.logger.DebugContext(ctx, "odds api quota",
		"requests_remaining", remaining,
		"requests_used", strings.TrimSpace(header.Get("X-Requests-Used")),
	)
}

func mapOddsEvent(item oddsEventItem) usecase.ExternalOddsEvent {
	out := usecase.ExternalOddsEvent{
		ID:       strings.TrimSpace(item.ID),
		HomeTeam: strings.TrimSpace(item.HomeTeam),
		AwayTeam: strings.TrimSpace(item.AwayTeam),
	}
	if parsed := parseEventTime(item.CommenceTime); parsed != nil {
		out.CommenceTime = *parsed
	}
	for _, book := range item.Bookmakers {
		mapped := usecase.ExternalBookmaker{Key: strings.TrimSpace(book.Key)}
		for _, market := range book.Markets {
			mappedMarket := usecase.ExternalMarket{Key: strings.TrimSpace(market.Key)}
			for _, outcome := range market.Outcomes {
				mappedMarket.Outcomes = append(mappedMarket.Outcomes, usecase.ExternalOutcome{
					Name:  strings.TrimSpace(outcome.Name),
					Price: outcome.Price,
				})
			}
			mapped.Markets = append(mapped.Markets, mappedMarket)
		}
		out.Bookmakers = append(out.Bookmakers, mapped)
	}
	return out
}

func mapScoreEvent(item scoreEventItem) usecase.ExternalScoreEvent {
	out := usecase.ExternalScoreEvent{
		ID:        strings.TrimSpace(item.ID),
		HomeTeam:  strings.TrimSpace(item.HomeTeam),
		AwayTeam:  strings.TrimSpace(item.AwayTeam),
		Completed: item.Completed,
	}
	if parsed := parseEventTime(item.CommenceTime); parsed != nil {
		out.CommenceTime = *parsed
	}
	for _, score := range item.Scores {
		out.Scores = append(out.Scores, usecase.ExternalTeamScore{
			Name:  strings.TrimSpace(score.Name),
			Score: strings.TrimSpace(score.Score),
		})
	}
	return out
}

func parseEventTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func isOddsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOddsAPITransient)
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
