// Package cli implements the numberfacts operator commands.
package cli

import (
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/facts"
	"github.com/brendan.keane/numberfacts/internal/forwarder"
	"github.com/brendan.keane/numberfacts/internal/primes"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// loadConfig returns the config stored on the command context by the root
// command, or loads it from flags when the handler runs standalone
func loadConfig(cmd *cobra.Command, logger zerolog.Logger) (*config.Config, error) {
	if cmd.Context() != nil {
		if cfg, ok := config.FromContext(cmd.Context()); ok {
			return cfg, nil
		}
	}

	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("configuration validation failed")
		return nil, err
	}
	return cfg, nil
}

// newForwarder wires the forwarder the way the Lambda entrypoint does
func newForwarder(cfg *config.Config, logger zerolog.Logger) *forwarder.Forwarder {
	fetcher := facts.NewClientFactory(logger).CreateFetcher(cfg)
	return forwarder.New(fetcher, logger)
}

func newCounter(logger zerolog.Logger) *primes.Counter {
	return primes.NewCounter(logger)
}
