package components

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/p0tatoe/volsurface/models"
)

// MarketData is the provider surface the snapshot builder needs. Satisfied by
// services.YahooClient; tests swap in a fake.
type MarketData interface {
	Expirations(ctx context.Context, ticker string) ([]time.Time, models.ProviderQuote, error)
	Chain(ctx context.Context, ticker string, expiry time.Time) (calls, puts []models.ProviderOptionRow, err error)
	IntradayCloses(ctx context.Context, ticker string) ([]float64, error)
}

type expirySlot struct {
	calls []models.ProviderOptionRow
	puts  []models.ProviderOptionRow
}

// FetchSnapshot builds one chain snapshot for the ticker: list expirations,
// fetch every expiry's calls and puts concurrently, resolve the spot price,
// and compute derived columns.
//
// The second return is false for the no-data case (ticker has no published
// expirations, or every per-expiry fetch failed): callers render an empty
// table, not an error. A failure of the expiration listing itself is the only
// error; a deadline hit while listing is folded into no-data so a slow
// provider degrades to an empty response instead of a failure.
func FetchSnapshot(ctx context.Context, src MarketData, ticker string, maxConcurrent int, log zerolog.Logger) (models.ChainSnapshot, bool, error) {
	expiries, quote, err := src.Expirations(ctx, ticker)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("expiration listing timed out")
			return models.ChainSnapshot{}, false, nil
		}
		return models.ChainSnapshot{}, false, err
	}
	if len(expiries) == 0 {
		log.Info().Str("ticker", ticker).Msg("no options published")
		return models.ChainSnapshot{}, false, nil
	}

	// One slot per expiry keeps provider order without a map+mutex join;
	// failed fetches just leave their slot empty.
	slots := make([]expirySlot, len(expiries))

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, expiry := range expiries {
		wg.Add(1)
		go func(i int, expiry time.Time) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			calls, puts, err := src.Chain(ctx, ticker, expiry)
			if err != nil {
				log.Warn().Err(err).
					Str("ticker", ticker).
					Str("expiry", expiry.Format("2006-01-02")).
					Msg("chain fetch failed, skipping expiry")
				return
			}
			slots[i] = expirySlot{calls: calls, puts: puts}
		}(i, expiry)
	}
	wg.Wait()

	tagged := make([]models.TaggedRow, 0)
	for i, slot := range slots {
		for _, row := range slot.calls {
			tagged = append(tagged, models.TaggedRow{ProviderOptionRow: row, Side: models.SideCall, Expiry: expiries[i]})
		}
		for _, row := range slot.puts {
			tagged = append(tagged, models.TaggedRow{ProviderOptionRow: row, Side: models.SidePut, Expiry: expiries[i]})
		}
	}
	if len(tagged) == 0 {
		log.Warn().Str("ticker", ticker).Int("expiries", len(expiries)).Msg("every chain fetch came back empty")
		return models.ChainSnapshot{}, false, nil
	}

	observed := time.Now().UTC()
	spot := resolveSpot(ctx, src, ticker, quote, log)

	return models.ChainSnapshot{
		Ticker:     ticker,
		ObservedAt: observed,
		SpotPrice:  spot,
		Rows:       Aggregate(tagged, observed, spot),
	}, true, nil
}

// resolveSpot walks the fallback ladder: last intraday trade first, then the
// static quote fields in decreasing freshness, finally zero. Zero means
// unresolved; moneyness degenerates and the sanitizer prunes those rows.
func resolveSpot(ctx context.Context, src MarketData, ticker string, quote models.ProviderQuote, log zerolog.Logger) float64 {
	closes, err := src.IntradayCloses(ctx, ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Msg("intraday series unavailable, using quote fields")
	}
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return closes[i]
		}
	}

	for _, field := range []*float64{
		quote.CurrentPrice,
		quote.RegularMarketPrice,
		quote.PreviousClose,
		quote.Open,
	} {
		if field != nil && *field != 0 {
			return *field
		}
	}

	log.Warn().Str("ticker", ticker).Msg("spot price unresolved")
	return 0
}
