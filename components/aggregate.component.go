package components

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/p0tatoe/volsurface/models"
)

// Aggregate turns tagged provider rows into contract rows with derived
// columns. It is total: a row with a bad strike keeps flowing with strike and
// moneyness unset, and the sanitizer decides its fate. Row order is preserved.
//
// observed is captured once per snapshot so every row shares the same epoch
// for daysToExpiration; spot is the already-resolved price shared by every
// moneyness value.
func Aggregate(rows []models.TaggedRow, observed time.Time, spot float64) []models.ContractRow {
	out := make([]models.ContractRow, 0, len(rows))
	for _, r := range rows {
		row := models.ContractRow{
			ContractSymbol:   r.ContractSymbol,
			Expiry:           r.Expiry,
			Side:             r.Side,
			Strike:           parseStrike(r.Strike),
			LastPrice:        r.LastPrice,
			Bid:              r.Bid,
			Ask:              r.Ask,
			Volume:           r.Volume,
			OpenInterest:     r.OpenInterest,
			ImpliedVol:       r.ImpliedVolatility,
			DaysToExpiration: daysBetween(observed, r.Expiry),
		}
		if row.Strike != nil && *row.Strike != 0 {
			m := spot / *row.Strike
			row.Moneyness = &m
		}
		out = append(out, row)
	}
	return out
}

// parseStrike is deliberately lenient: providers ship strikes as numbers or
// grouped strings ("1,050.00"). Anything unparsable is a missing strike, not
// an error.
func parseStrike(n json.Number) *float64 {
	s := strings.ReplaceAll(n.String(), ",", "")
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

// daysBetween counts whole calendar days from one instant's date to
// another's, both taken in UTC. Same date yields 0; an expiry behind the
// observation date yields a negative count.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
