package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/p0tatoe/volsurface/config"
	"github.com/p0tatoe/volsurface/models"
)

// YahooClient talks to the upstream market-data provider. It is the only
// fallible piece of the pipeline; everything downstream is a pure transform.
type YahooClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       zerolog.Logger
}

var yahoo *YahooClient

func InitYahoo(cfg config.ProviderConfig, log zerolog.Logger) {
	yahoo = NewYahooClient(cfg, log)
}

func GetYahoo() *YahooClient {
	return yahoo
}

func NewYahooClient(cfg config.ProviderConfig, log zerolog.Logger) *YahooClient {
	return &YahooClient{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       log.With().Str("service", "yahoo").Logger(),
	}
}

// Expirations returns every published expiration date for the ticker along
// with the static quote block used by the spot-price fallback ladder. An
// empty slice is a valid answer: the ticker has no listed options.
func (c *YahooClient) Expirations(ctx context.Context, ticker string) ([]time.Time, models.ProviderQuote, error) {
	var env models.OptionChainEnvelope
	u := fmt.Sprintf("%s/v7/finance/options/%s", c.baseURL, url.PathEscape(ticker))
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, models.ProviderQuote{}, fmt.Errorf("expirations %s: %w", ticker, err)
	}
	if len(env.OptionChain.Result) == 0 {
		return nil, models.ProviderQuote{}, nil
	}

	res := env.OptionChain.Result[0]
	expiries := make([]time.Time, 0, len(res.ExpirationDates))
	for _, epoch := range res.ExpirationDates {
		expiries = append(expiries, time.Unix(epoch, 0).UTC())
	}
	return expiries, res.Quote, nil
}

// Chain returns the raw call and put rows for one expiration date.
func (c *YahooClient) Chain(ctx context.Context, ticker string, expiry time.Time) ([]models.ProviderOptionRow, []models.ProviderOptionRow, error) {
	var env models.OptionChainEnvelope
	u := fmt.Sprintf("%s/v7/finance/options/%s?date=%d", c.baseURL, url.PathEscape(ticker), expiry.Unix())
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, nil, fmt.Errorf("chain %s %s: %w", ticker, expiry.Format("2006-01-02"), err)
	}
	if len(env.OptionChain.Result) == 0 || len(env.OptionChain.Result[0].Options) == 0 {
		return nil, nil, nil
	}

	byDate := env.OptionChain.Result[0].Options[0]
	return byDate.Calls, byDate.Puts, nil
}

// IntradayCloses returns today's one-minute close series, newest last. Feeds
// the top tier of spot-price resolution.
func (c *YahooClient) IntradayCloses(ctx context.Context, ticker string) ([]float64, error) {
	var env models.ChartEnvelope
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1m", c.baseURL, url.PathEscape(ticker))
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, fmt.Errorf("intraday %s: %w", ticker, err)
	}
	if len(env.Chart.Result) == 0 || len(env.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}
	return env.Chart.Result[0].Indicators.Quote[0].Close, nil
}

func (c *YahooClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("provider request")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
