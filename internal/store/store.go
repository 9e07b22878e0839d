// Package store persists the portal's record collections as keyed JSON blobs,
// one blob per collection, matching the storage layout the portal has always
// used. Each blob is wrapped in a versioned envelope so malformed or
// incompatible persisted content surfaces as a typed error.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// SchemaVersion is the envelope version written by this build.
const SchemaVersion = 1

var (
	ErrCorrupt = errors.New("store: corrupted blob")
	ErrSchema  = errors.New("store: unsupported schema version")
)

// KV is the minimal keyed-blob interface the collections run on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Record is any entity persisted inside a collection.
type Record interface {
	RecordID() string
}

type envelope struct {
	Schema  int             `json:"schema"`
	Records json.RawMessage `json:"records"`
}

// Collection is a typed view over one collection key. The first read of an
// absent key seeds the fixture sequence; every write serializes the whole
// collection back synchronously. Reads and read-modify-writes are serialized
// per collection; across processes the store stays last-write-wins.
type Collection[T Record] struct {
	kv       KV
	key      string
	fixtures []T
	mu       sync.Mutex
}

// NewCollection binds a collection key to its record type and fixture data.
func NewCollection[T Record](kv KV, key string, fixtures []T) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, fixtures: fixtures}
}

// All returns the stored sequence in stored order, seeding fixtures when the
// key has never been written.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save replaces the record with a matching id in place (order preserved), or
// appends when the id is new.
func (c *Collection[T]) Save(ctx context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range records {
		if records[i].RecordID() == rec.RecordID() {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return c.write(ctx, records)
}

// Delete removes the record with the given id; absent ids are a no-op.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if rec.RecordID() != id {
			kept = append(kept, rec)
		}
	}
	return c.write(ctx, kept)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		// One-shot seeding: the key exists from here on, even if every
		// record is later deleted.
		if err := c.write(ctx, c.fixtures); err != nil {
			return nil, err
		}
		return append([]T(nil), c.fixtures...), nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.key, err)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %s: schema %d", ErrSchema, c.key, env.Schema)
	}
	var records []T
	if err := json.Unmarshal(env.Records, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.key, err)
	}
	return records, nil
}

func (c *Collection[T]) write(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(envelope{Schema: SchemaVersion, Records: data})
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, c.key, blob)
}
