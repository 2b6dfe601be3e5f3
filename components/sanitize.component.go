package components

import (
	"github.com/p0tatoe/volsurface/models"
)

// Pruning bounds for the visualization the data feeds: near-the-money,
// plausible IV, near-term. Moneyness and IV bounds are inclusive on both
// ends; DTE has no lower bound, so zero-DTE and already-expired rows pass
// when everything else holds.
const (
	MinMoneyness = 0.50
	MaxMoneyness = 1.50
	MinIV        = 0.001
	MaxIV        = 2.0
	MaxDTE       = 61
)

// MissingSymbol stands in when the provider sends a row without an
// identifier.
const MissingSymbol = "N/A"

// Sanitize reduces contract rows to the side requested and to rows fit for
// charting, then freezes each into the fixed nine-column output record.
// It is total and order-preserving.
//
// Required fields: a row missing impliedVolatility or moneyness is dropped
// (daysToExpiration is always derived, so it is always present). Remaining
// optional quote fields are coerced to zero at this point; the response
// shape never varies with upstream schema drift.
func Sanitize(rows []models.ContractRow, side models.OptionSide) []models.TableRow {
	out := make([]models.TableRow, 0, len(rows))
	for _, r := range rows {
		if r.Side != side {
			continue
		}
		if r.ImpliedVol == nil || r.Moneyness == nil {
			continue
		}

		m, iv := *r.Moneyness, *r.ImpliedVol
		if m < MinMoneyness || m > MaxMoneyness {
			continue
		}
		if iv < MinIV || iv > MaxIV {
			continue
		}
		if r.DaysToExpiration > MaxDTE {
			continue
		}

		symbol := r.ContractSymbol
		if symbol == "" {
			symbol = MissingSymbol
		}

		out = append(out, models.TableRow{
			r.DaysToExpiration,
			iv,
			m,
			symbol,
			floatOrZero(r.LastPrice),
			floatOrZero(r.Bid),
			floatOrZero(r.Ask),
			intOrZero(r.Volume),
			intOrZero(r.OpenInterest),
		})
	}
	return out
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
