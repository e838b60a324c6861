package datastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
	"github.com/chetahvarsha/stablecoin-sc/internal/tool"
)

var ErrKeyNotFound = errors.New("key not found in data store")

type (
	runner interface {
		Run(ctx context.Context, args ...string) ([]byte, error)
	}

	// Store reads and writes the external tool's key/value data store.
	Store struct {
		runner    runner
		partition string
		logger    *slog.Logger
	}
)

func AddressKey(env string) string {
	return "address-" + env
}

func DeployTransactionKey(env string) string {
	return "deployTransaction-" + env
}

// New creates a store. An empty partition shares the tool's global keys.
func New(runner runner, partition string) *Store {
	return &Store{
		runner:    runner,
		partition: partition,
		logger:    logger.Named("datastore"),
	}
}

func (s *Store) Load(ctx context.Context, key string) (string, error) {
	out, err := s.runner.Run(ctx, tool.DataLoad(key, s.partition)...)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}

	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return value, nil
}

func (s *Store) Save(ctx context.Context, key, value string) error {
	if _, err := s.runner.Run(ctx, tool.DataStore(key, value, s.partition)...); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	s.logger.With("key", key, "partition", s.partition).Debug("value stored")

	return nil
}

// Parse extracts a field from a JSON file using the tool's own parser.
func (s *Store) Parse(ctx context.Context, file, expression string) (string, error) {
	out, err := s.runner.Run(ctx, tool.DataParse(file, expression)...)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", file, err)
	}

	return strings.TrimSpace(string(out)), nil
}
