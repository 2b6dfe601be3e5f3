package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/p0tatoe/volsurface/config"
)

func testClient(t *testing.T, handler http.Handler) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewYahooClient(config.ProviderConfig{
		BaseURL:   srv.URL,
		Timeout:   5 * time.Second,
		UserAgent: "volsurface-test",
	}, zerolog.Nop())
}

func TestExpirations(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/finance/options/META" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("date") != "" {
			t.Error("expiration listing must not carry a date")
		}
		fmt.Fprint(w, `{
			"optionChain": {"result": [{
				"underlyingSymbol": "META",
				"expirationDates": [1788998400, 1791590400],
				"quote": {"regularMarketPrice": 512.25, "previousClose": 508.0}
			}], "error": null}
		}`)
	}))

	expiries, quote, err := client.Expirations(context.Background(), "META")
	if err != nil {
		t.Fatal(err)
	}
	if len(expiries) != 2 {
		t.Fatalf("expiries = %d, want 2", len(expiries))
	}
	if got := expiries[0].Unix(); got != 1788998400 {
		t.Errorf("first expiry epoch = %d", got)
	}
	if quote.RegularMarketPrice == nil || *quote.RegularMarketPrice != 512.25 {
		t.Errorf("quote.regularMarketPrice = %v", quote.RegularMarketPrice)
	}
	if quote.CurrentPrice != nil {
		t.Error("absent quote field must stay nil")
	}
}

func TestExpirationsEmptyResult(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"optionChain": {"result": [], "error": null}}`)
	}))

	expiries, _, err := client.Expirations(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("empty result is not an error, got %v", err)
	}
	if len(expiries) != 0 {
		t.Fatalf("expiries = %d, want 0", len(expiries))
	}
}

func TestChain(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "1788998400" {
			t.Errorf("date = %s", got)
		}
		fmt.Fprint(w, `{
			"optionChain": {"result": [{
				"options": [{
					"expirationDate": 1788998400,
					"calls": [
						{"contractSymbol": "META260911C00510000", "strike": 510, "lastPrice": 12.5,
						 "bid": 12.4, "ask": 12.6, "volume": 1500, "openInterest": 8200,
						 "impliedVolatility": 0.35}
					],
					"puts": [
						{"contractSymbol": "META260911P00510000", "strike": 510, "impliedVolatility": 0.33}
					]
				}]
			}], "error": null}
		}`)
	}))

	calls, puts, err := client.Chain(context.Background(), "META", time.Unix(1788998400, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || len(puts) != 1 {
		t.Fatalf("calls=%d puts=%d", len(calls), len(puts))
	}

	c := calls[0]
	if c.ContractSymbol != "META260911C00510000" {
		t.Errorf("symbol = %s", c.ContractSymbol)
	}
	if c.Strike.String() != "510" {
		t.Errorf("strike = %s", c.Strike)
	}
	if c.Volume == nil || *c.Volume != 1500 {
		t.Errorf("volume = %v", c.Volume)
	}
	if puts[0].Volume != nil {
		t.Error("absent volume must stay nil")
	}
}

func TestIntradayCloses(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/META" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"chart": {"result": [{
				"indicators": {"quote": [{"close": [511.0, 511.8, 512.25]}]}
			}], "error": null}
		}`)
	}))

	closes, err := client.IntradayCloses(context.Background(), "META")
	if err != nil {
		t.Fatal(err)
	}
	if len(closes) != 3 || closes[2] != 512.25 {
		t.Fatalf("closes = %v", closes)
	}
}

func TestNonOKStatusIsError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	if _, _, err := client.Expirations(context.Background(), "META"); err == nil {
		t.Error("want error for non-200 expirations")
	}
	if _, _, err := client.Chain(context.Background(), "META", time.Now()); err == nil {
		t.Error("want error for non-200 chain")
	}
	if _, err := client.IntradayCloses(context.Background(), "META"); err == nil {
		t.Error("want error for non-200 chart")
	}
}

func TestMalformedPayloadIsError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))

	if _, _, err := client.Expirations(context.Background(), "META"); err == nil {
		t.Error("want decode error")
	}
}
