package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/p0tatoe/volsurface/components"
	"github.com/p0tatoe/volsurface/config"
	"github.com/p0tatoe/volsurface/models"
	"github.com/p0tatoe/volsurface/services"
)

var pipelineCfg = config.PipelineConfig{
	Deadline:             45 * time.Second,
	MaxConcurrentFetches: 6,
}

// InitPipeline installs the request pipeline limits. Called once at startup.
func InitPipeline(cfg config.PipelineConfig) {
	pipelineCfg = cfg
}

// GetOptionsData serves GET /options-data. Every outcome is a well-formed
// JSON body on HTTP 200: populated table, empty table, or {"error": ...} —
// clients key off the error field, not the transport status.
func GetOptionsData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()

	ticker := q.Get("ticker")
	if ticker == "" {
		ticker = "META"
	}
	side := models.OptionSide(q.Get("type"))
	if side == "" {
		side = models.SideCall
	}

	log := zerolog.Ctx(r.Context()).With().
		Str("ticker", ticker).
		Str("side", string(side)).
		Logger()

	ctx, cancel := context.WithTimeout(r.Context(), pipelineCfg.Deadline)
	defer cancel()

	snap, ok, err := components.FetchSnapshot(ctx, services.GetYahoo(), ticker, pipelineCfg.MaxConcurrentFetches, log)
	if err != nil {
		log.Error().Err(err).Msg("snapshot fetch failed")
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: err.Error()})
		return
	}
	if !ok {
		json.NewEncoder(w).Encode(models.OptionsDataResponse{
			Data:      []models.TableRow{},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	data := components.Sanitize(snap.Rows, side)
	log.Debug().
		Int("raw_rows", len(snap.Rows)).
		Int("rows", len(data)).
		Float64("spot", snap.SpotPrice).
		Msg("snapshot sanitized")

	json.NewEncoder(w).Encode(models.OptionsDataResponse{
		Data:      data,
		Timestamp: snap.ObservedAt.Format(time.RFC3339),
	})
}
