package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/PriceGuard/internal/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("priceguard failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		flags  runFlags
		cfgErr error
		cfg    *config.Config
	)

	cmd := &cobra.Command{
		Use:           "priceguard",
		Short:         "Detect, alert on and correct erroneous trade prices against daily closes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			lvl, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
				lvl = zerolog.InfoLevel
			}
			log.Logger = log.Level(lvl)
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, flags.jsonOutput, cmd.OutOrStdout())
		},
	}

	cfg, cfgErr = config.Load()
	if cfg == nil {
		cfg = &config.Config{}
	}
	flags.register(cmd, cfg)
	return cmd
}
