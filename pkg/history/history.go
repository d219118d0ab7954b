// Package history records computed routes.
//
// Every route the planner answers can be appended to a [Store], and the most
// recent entries listed back, newest first. Backends:
//   - [NullStore]: records nothing, the default
//   - [MemoryStore]: bounded in-process log for servers and tests
//   - [MongoStore]: MongoDB collection shared between instances
//
// # Usage
//
//	store, err := history.NewMongoStore(ctx, history.MongoConfig{
//	    URI:        "mongodb://localhost:27017",
//	    Database:   "waypath",
//	    Collection: "routes",
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close(ctx)
//
//	store.Record(ctx, history.NewEntry("astar", "Lisbon", "Porto", path, cost))
//	recent, err := store.Recent(ctx, 10)
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded route.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	Algorithm string    `json:"algorithm" bson:"algorithm"`
	From      string    `json:"from" bson:"from"`
	To        string    `json:"to" bson:"to"`
	Path      []string  `json:"path" bson:"path"`
	Hops      int       `json:"hops" bson:"hops"`
	Cost      float64   `json:"cost" bson:"cost"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewEntry creates an entry with a fresh ID stamped with the current time.
func NewEntry(algorithm, from, to string, path []string, cost float64) Entry {
	hops := 0
	if len(path) > 0 {
		hops = len(path) - 1
	}
	return Entry{
		ID:        uuid.NewString(),
		Algorithm: algorithm,
		From:      from,
		To:        to,
		Path:      path,
		Hops:      hops,
		Cost:      cost,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for history backends.
type Store interface {
	// Record appends an entry.
	Record(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, newest first. A non-positive
	// limit returns every entry.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NullStore discards every entry.
type NullStore struct{}

// Record does nothing.
func (NullStore) Record(context.Context, Entry) error { return nil }

// Recent always returns an empty list.
func (NullStore) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

// Close does nothing.
func (NullStore) Close(context.Context) error { return nil }

var _ Store = NullStore{}
