package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/p0tatoe/volsurface/components"
	"github.com/p0tatoe/volsurface/config"
	"github.com/p0tatoe/volsurface/controllers"
	"github.com/p0tatoe/volsurface/logging"
	"github.com/p0tatoe/volsurface/models"
	"github.com/p0tatoe/volsurface/routes"
	"github.com/p0tatoe/volsurface/services"
)

func main() {
	root := &cobra.Command{
		Use:           "volsurface",
		Short:         "Option-chain analytics API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch [ticker]",
		Short: "Run the pipeline once and print the rows",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFetch,
	}
	fetch.Flags().String("type", string(models.SideCall), "contract side: Call or Put")
	root.AddCommand(fetch)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log)
	services.InitYahoo(cfg.Provider, log)
	controllers.InitPipeline(cfg.Pipeline)

	r := mux.NewRouter()
	routes.ServeRoutes(r)

	handler := services.ZstdMiddleware(
		services.CORSMiddleware(
			services.RequestIDMiddleware(log, r)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Pipeline.Deadline + 15*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("options data API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// runFetch runs fetch→aggregate→sanitize once and prints the table. Debug
// tool for eyeballing what a ticker would serve without standing the API up.
func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log)
	client := services.NewYahooClient(cfg.Provider, log)

	ticker := "META"
	if len(args) == 1 {
		ticker = args[0]
	}
	sideFlag, _ := cmd.Flags().GetString("type")
	side := models.OptionSide(sideFlag)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Pipeline.Deadline)
	defer cancel()

	snap, ok, err := components.FetchSnapshot(ctx, client, ticker, cfg.Pipeline.MaxConcurrentFetches, log)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s: no option data\n", ticker)
		return nil
	}

	rows := components.Sanitize(snap.Rows, side)
	fmt.Printf("%s %s  spot=%.2f  rows=%d\n", ticker, side, snap.SpotPrice, len(rows))
	fmt.Printf("%-6s %-8s %-10s %-24s %-9s %-9s %-9s %-8s %s\n",
		"dte", "iv", "moneyness", "contract", "last", "bid", "ask", "volume", "oi")
	for _, r := range rows {
		fmt.Printf("%-6d %-8.4f %-10.4f %-24s %-9.2f %-9.2f %-9.2f %-8d %d\n",
			r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7], r[8])
	}
	return nil
}
