package repository

import (
	"github.com/google/uuid"

	"github.com/okian/moviemonday/internal/domain/model"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator replaces the generator used for records that arrive
// without an id.
func WithIDGenerator(gen func() model.ID) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func newUUID() model.ID {
	return model.ID(uuid.NewString())
}
