package models

import "time"

type OptionSide string

const (
	SideCall OptionSide = "Call"
	SidePut  OptionSide = "Put"
)

// ContractRow is one contract on one expiry, one side, with derived analytics.
// Quote fields stay pointers so "absent upstream" and "zero" remain distinct
// until the sanitizer fills defaults.
type ContractRow struct {
	ContractSymbol   string
	Expiry           time.Time
	Side             OptionSide
	Strike           *float64
	LastPrice        *float64
	Bid              *float64
	Ask              *float64
	Volume           *int64
	OpenInterest     *int64
	ImpliedVol       *float64
	DaysToExpiration int
	Moneyness        *float64
}

// ChainSnapshot is every contract row for one ticker at one observation
// instant. All rows share SpotPrice and ObservedAt; the snapshot lives for a
// single request and is never cached.
type ChainSnapshot struct {
	Ticker     string
	ObservedAt time.Time
	SpotPrice  float64
	Rows       []ContractRow
}
