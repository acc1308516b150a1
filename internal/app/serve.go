package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/config"
	"github.com/embermill/daycheck/internal/review"
	"github.com/embermill/daycheck/internal/server"
	"github.com/embermill/daycheck/internal/store"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the checkup HTTP service",
	Long: `Expose the checkup over HTTP. POST /api/checkup accepts a day's
statistics and review history and returns the merged state with a fresh
review. Callers are rate limited per day, keyed by client address.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default: "+config.DefaultServeAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	addr := cfg.Serve.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	client := review.NewClient(review.Config{
		Provider: review.Provider(cfg.AI.Provider),
		APIKey:   cfg.AI.APIKey,
		APIURL:   cfg.AI.APIURL,
		Model:    cfg.AI.Model,
	})
	srv := server.New(client, db, cfg.Serve.DailyLimit, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, addr)
}
