// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/persistence/file"
	"github.com/dukex/codeeasy/pkg/persistence/postgresql"
	"github.com/dukex/codeeasy/pkg/persistence/redis"
	"github.com/dukex/codeeasy/pkg/persistence/sqlite"
)

var supportedPersistenceProviders = []string{"file", "postgres", "postgresql", "sqlite", "redis"}

// NewPersistence opens the project store named by the scheme of databaseURL.
// A URL without a known scheme is treated as a directory of the file store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Persistence, error) {
	provider := parsePersistenceProvider(databaseURL)

	logger.InfoContext(ctx, "Opening project store", "provider", provider)

	switch provider {
	case "postgres", "postgresql":
		store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}

		return store, nil
	case "sqlite":
		store, err := sqlite.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}

		return store, nil
	case "redis":
		store, err := redis.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}

		return store, nil
	default:
		return file.NewPersistence(databaseURL), nil
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "file"
}
