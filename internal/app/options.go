package service

import (
	"github.com/okian/moviemonday/internal/adapters/repository"
	"github.com/okian/moviemonday/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore replaces the default in-memory record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRecordsPath sets a JSON file of weekly records loaded on Start.
func WithRecordsPath(path string) Option {
	return func(s *Service) {
		s.recordsPath = path
	}
}

// WithMaxFacts sets how many facts are returned when the caller does not ask
// for a specific number.
func WithMaxFacts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFacts = n
		}
	}
}

// WithChartLimit sets the default number of chart points.
func WithChartLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chartLimit = n
		}
	}
}

// WithReadOnly rejects ingestion after startup.
func WithReadOnly(readOnly bool) Option {
	return func(s *Service) {
		s.readOnly = readOnly
	}
}
