package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/salarygap/internal/logging"
	"github.com/theirongolddev/salarygap/internal/server"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
	flagServeEnvFile      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard session as a JSON HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	serveCmd.Flags().StringVar(&flagServeEnvFile, "env-file", ".env", "Environment file read before the config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := logging.NewJSON(os.Stdout, flagQuiet, flagVerbose)

	if err := godotenv.Load(flagServeEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Str("file", flagServeEnvFile).Msg("could not read env file")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logger.WithContext(ctx)

	data, sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	addr := data.cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	svc := server.New(logger, server.Config{
		Addr:            addr,
		EventsBuffer:    flagServeEventsBuffer,
		ShutdownTimeout: 5 * time.Second,
	}, sess)

	logger.Info().Str("data_dir", data.dataDir).Msg("dataset ready")

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
