// Package repository holds weekly records in memory for the insights engine.
package repository

import (
	"context"

	"github.com/okian/moviemonday/internal/domain/model"
)

// Store provides read/write access to the weekly records.
type Store interface {
	// Put validates and upserts records by id, returning the ids in input
	// order. Records without an id are assigned one. The batch is rejected
	// as a whole when any record is invalid.
	Put(ctx context.Context, records ...model.WeeklyRecord) ([]model.ID, error)

	// Get returns one record. Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id model.ID) (model.WeeklyRecord, error)

	// All returns every record in first-insert order.
	All(ctx context.Context) []model.WeeklyRecord

	// Count returns the number of stored records.
	Count(ctx context.Context) int

	// Snapshot returns a consistent view for reads that must not observe a
	// concurrent write between them.
	Snapshot() *Snapshot
}
