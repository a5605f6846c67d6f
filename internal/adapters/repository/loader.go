package repository

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/moviemonday/internal/domain/model"
)

// Load decodes a JSON array (or single object) of weekly records from r and
// puts them into the store. It returns the number of records stored.
func Load(ctx context.Context, s Store, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: read: %w", ErrLoad, err)
	}
	records, err := model.DecodeRecords(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	ids, err := s.Put(ctx, records...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return len(ids), nil
}

// LoadFile is Load over the file at path.
func LoadFile(ctx context.Context, s Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return Load(ctx, s, f)
}
