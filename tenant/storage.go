// Package tenant implements the tenancy hierarchy of the control plane:
// tenants, management groups, subscriptions and resource groups, stored in a
// kv.Store and exposed as services, resource providers and HTTP handlers.
package tenant

import (
	"context"
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/snowflake"
)

// MaxIDGenerationN is the maximum number of times an ID generation is done
// before we panic.
const MaxIDGenerationN = 100

// Store wraps the kv store with ID generation and a clock, so every entity
// storage file shares the same transaction helpers.
type Store struct {
	kvStore kv.Store

	IDGen platform.IDGenerator

	now func() time.Time
}

// NewStore creates a new tenant store over the provided kv store.
func NewStore(kvStore kv.Store) *Store {
	return &Store{
		kvStore: kvStore,
		IDGen:   snowflake.NewIDGenerator(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// View opens up a transaction that will not write to any data.
func (s *Store) View(ctx context.Context, fn func(kv.Tx) error) error {
	return s.kvStore.View(ctx, fn)
}

// Update opens up a transaction that will mutate data.
func (s *Store) Update(ctx context.Context, fn func(kv.Tx) error) error {
	return s.kvStore.Update(ctx, fn)
}

// generateSafeID attempts to create an id for the entity bucket
// that is without collision.
func (s *Store) generateSafeID(ctx context.Context, tx kv.Tx, bucket []byte) (platform.ID, error) {
	for i := 0; i < MaxIDGenerationN; i++ {
		id := s.IDGen.ID()

		err := s.uniqueID(ctx, tx, bucket, id)
		if err == nil {
			return id, nil
		}

		if err == NotUniqueIDError {
			continue
		}

		return platform.InvalidID(), err
	}
	return platform.InvalidID(), ErrFailureGeneratingID
}

func (s *Store) uniqueID(ctx context.Context, tx kv.Tx, bucket []byte, id platform.ID) error {
	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(bucket)
	if err != nil {
		return err
	}

	_, err = b.Get(encodedID)
	// if not found then this is  _unique_.
	if kv.IsNotFound(err) {
		return nil
	}

	// no error means this is not unique
	if err == nil {
		return NotUniqueIDError
	}

	// any other error is some sort of internal server error
	return ErrInternalServiceError(err)
}
