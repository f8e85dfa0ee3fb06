// Package kv defines the key value store abstraction the control plane
// metadata services are built on. It is modeled after the boltdb API; the
// bolt package provides the durable implementation and inmem the
// btree-backed one used in tests.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is the error returned when the key requested is not found.
	ErrKeyNotFound = errors.New("key not found")
	// ErrBucketNotFound is the error returned when the bucket cannot be found.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrTxNotWritable is the error returned when a mutable operation is called during
	// a non-writable transaction.
	ErrTxNotWritable = errors.New("transaction is not writable")
)

// IsNotFound returns a boolean indicating whether the error is known to
// report that a key or was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Store is an interface for a generic key value store. It is modeled after
// the boltdb database struct.
type Store interface {
	// View opens up a transaction that will not write to any data. Implementing interfaces
	// should take care to ensure that all view transactions do not mutate any data.
	View(ctx context.Context, fn func(Tx) error) error
	// Update opens up a transaction that will mutate data.
	Update(ctx context.Context, fn func(Tx) error) error
}

// SchemaStore is a superset of Store along with store schema change
// functionality, used by migrations.
type SchemaStore interface {
	Store

	// CreateBucket creates a bucket on the underlying store if it does not exist.
	CreateBucket(ctx context.Context, bucket []byte) error
	// DeleteBucket deletes a bucket on the underlying store if it exists.
	DeleteBucket(ctx context.Context, bucket []byte) error
}

// Tx is a transaction in the store.
type Tx interface {
	// Bucket possibly creates and returns bucket, b.
	Bucket(b []byte) (Bucket, error)
	// Context returns the context associated with this Tx.
	Context() context.Context
	// WithContext associates a context with this Tx.
	WithContext(ctx context.Context)
}

// Bucket is the abstraction used to perform get/put/delete/get-many operations
// in a key value store.
type Bucket interface {
	// Get returns a key within this bucket. Errors if key does not exist.
	Get(key []byte) ([]byte, error)
	// Put should error if the transaction it was called in is not writable.
	Put(key, value []byte) error
	// Delete should error if the transaction it was called in is not writable.
	Delete(key []byte) error
	// ForwardCursor returns a forward cursor from the seek position provided.
	// A nil seek starts at the first key of the bucket.
	ForwardCursor(seek []byte) (ForwardCursor, error)
}

// ForwardCursor is an abstraction for iterating/ranging through data in
// ascending key order. A nil key from Next signals exhaustion.
type ForwardCursor interface {
	// Next moves the cursor to the next key in the bucket.
	Next() (k, v []byte)
	// Err returns non-nil if an error occurred during cursor iteration.
	Err() error
	// Close is reponsible for freeing any resources created by the cursor.
	Close() error
}

// VisitFunc is called for each k, v byte slice pair from the underlying source bucket
// which are in range of the cursor. When false is returned the iteration stops.
type VisitFunc func(k, v []byte) (bool, error)

// WalkCursor consumes the forward cursor call visit for each k/v pair found.
func WalkCursor(ctx context.Context, cursor ForwardCursor, visit VisitFunc) (err error) {
	defer func() {
		if cerr := cursor.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for k, v := cursor.Next(); k != nil; k, v = cursor.Next() {
		if cont, err := visit(k, v); !cont || err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return cursor.Err()
}
