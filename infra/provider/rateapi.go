package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/fxcalc/pkg/config"
	"github.com/amirasaad/fxcalc/pkg/domain/rates"
	"github.com/amirasaad/fxcalc/pkg/provider"
)

// RateAPIProvider implements provider.RateProvider against an
// exchangerate-api style endpoint: GET {url}/{base} returns
// {"base": "USD", "date": "2025-01-02", "rates": {"EUR": 0.91, ...}}.
type RateAPIProvider struct {
	baseURL    string
	base       string
	httpClient *http.Client
	logger     *slog.Logger
}

// rateAPIResponse is the subset of the API response this system contracts
// on; everything else in the body is ignored.
type rateAPIResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// NewRateAPIProvider creates a provider for the configured endpoint and
// fixed base currency.
func NewRateAPIProvider(cfg config.RateAPI, logger *slog.Logger) *RateAPIProvider {
	return &RateAPIProvider{
		baseURL: cfg.URL,
		base:    cfg.BaseCurrency,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// FetchLatest fetches the latest rates relative to the fixed base currency.
// Any non-2xx status, timeout, or undecodable body is returned as an error;
// the caller owns the cache fallback.
func (p *RateAPIProvider) FetchLatest(ctx context.Context) (*rates.Snapshot, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, p.base)
	p.logger.Info("fetching exchange rates", "url", url, "base", p.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rate API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp rateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("rate API returned no rates for base %s", p.base)
	}

	snap := &rates.Snapshot{
		Base:     p.base,
		Date:     apiResp.Date,
		Rates:    apiResp.Rates,
		CachedAt: time.Now(),
	}
	// The source omits the base itself; the identity rate keeps
	// Rates[Base] == 1 true for every snapshot.
	snap.Rates[p.base] = 1

	p.logger.Info("exchange rates fetched", "base", p.base, "date", snap.Date, "count", len(snap.Rates))
	return snap, nil
}

// Name returns the provider's name.
func (p *RateAPIProvider) Name() string {
	return "exchangerate-api"
}

var _ provider.RateProvider = (*RateAPIProvider)(nil)
