package models

// TableRow is one output record in fixed column order:
// daysToExpiration, impliedVolatility, moneyness, contractSymbol,
// lastPrice, bid, ask, volume, openInterest.
type TableRow [9]any

type OptionsDataResponse struct {
	Data      []TableRow `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
