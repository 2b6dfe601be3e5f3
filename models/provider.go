package models

import (
	"encoding/json"
	"time"
)

// ProviderQuote is the static quote block returned alongside the expiration
// list. Fields are pointers because any of them may be absent depending on
// asset class and market session.
type ProviderQuote struct {
	CurrentPrice       *float64 `json:"currentPrice"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	PreviousClose      *float64 `json:"previousClose"`
	Open               *float64 `json:"open"`
}

// ProviderOptionRow is one raw contract row exactly as the provider sends it.
// Strike stays a json.Number until the aggregation step parses it; everything
// else optional is a pointer so absence survives decoding.
type ProviderOptionRow struct {
	ContractSymbol    string      `json:"contractSymbol"`
	Strike            json.Number `json:"strike"`
	LastPrice         *float64    `json:"lastPrice"`
	Bid               *float64    `json:"bid"`
	Ask               *float64    `json:"ask"`
	Volume            *int64      `json:"volume"`
	OpenInterest      *int64      `json:"openInterest"`
	ImpliedVolatility *float64    `json:"impliedVolatility"`
}

// TaggedRow is a provider row stamped with the side and expiry it was fetched
// under, before derived columns are computed.
type TaggedRow struct {
	ProviderOptionRow
	Side   OptionSide
	Expiry time.Time
}

// ---------- provider wire envelopes ----------

type OptionChainEnvelope struct {
	OptionChain struct {
		Result []OptionChainResult `json:"result"`
		Error  *ProviderError      `json:"error"`
	} `json:"optionChain"`
}

type OptionChainResult struct {
	UnderlyingSymbol string              `json:"underlyingSymbol"`
	ExpirationDates  []int64             `json:"expirationDates"`
	Quote            ProviderQuote       `json:"quote"`
	Options          []OptionChainByDate `json:"options"`
}

type OptionChainByDate struct {
	ExpirationDate int64               `json:"expirationDate"`
	Calls          []ProviderOptionRow `json:"calls"`
	Puts           []ProviderOptionRow `json:"puts"`
}

type ChartEnvelope struct {
	Chart struct {
		Result []ChartResult  `json:"result"`
		Error  *ProviderError `json:"error"`
	} `json:"chart"`
}

type ChartResult struct {
	Indicators struct {
		Quote []struct {
			Close []float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type ProviderError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
