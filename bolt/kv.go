// Package bolt provides the durable bbolt backed kv.SchemaStore for control
// plane metadata, plus a prometheus collector over its entity buckets.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// KVStore is a kv.SchemaStore backed by boltdb.
type KVStore struct {
	path string
	db   *bolt.DB
	log  *zap.Logger
}

// NewKVStore returns an instance of KVStore with the file at the provided path.
func NewKVStore(log *zap.Logger, path string) *KVStore {
	return &KVStore{
		path: path,
		log:  log,
	}
}

// Open creates boltDB file if it does not exist, otherwise opens it.
func (s *KVStore) Open(ctx context.Context) error {
	// Ensure the required directory structure exists.
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("unable to create directory %s: %v", s.path, err)
	}

	if _, err := os.Stat(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	// Open database file.
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		// Hack to give a slightly nicer error message for a known failure mode when bolt calls
		// mmap on a file system that doesn't support the MAP_SHARED option.
		if err == bolt.ErrTimeout {
			return fmt.Errorf("unable to open boltdb: timed out waiting for file lock")
		}
		return fmt.Errorf("unable to open boltdb: %w", err)
	}
	s.db = db

	s.log.Info("Resources opened", zap.String("path", s.path))
	return nil
}

// Close the connection to the bolt database.
func (s *KVStore) Close() error {
	if db := s.db; db != nil {
		return db.Close()
	}
	return nil
}

// DB returns a reference to the underlying bolt database, for the metrics
// collector.
func (s *KVStore) DB() *bolt.DB {
	return s.db
}

// View opens up a view transaction against the store.
func (s *KVStore) View(ctx context.Context, fn func(tx kv.Tx) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&Tx{
			tx:  tx,
			ctx: ctx,
		})
	})
}

// Update opens up an update transaction against the store.
func (s *KVStore) Update(ctx context.Context, fn func(tx kv.Tx) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&Tx{
			tx:  tx,
			ctx: ctx,
		})
	})
}

// CreateBucket creates a bucket in the underlying boltdb store if it
// does not already exist.
func (s *KVStore) CreateBucket(ctx context.Context, name []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

// DeleteBucket deletes a bucket in the underlying boltdb store if it exists.
func (s *KVStore) DeleteBucket(ctx context.Context, name []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(name); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

// Tx is a light wrapper around a boltdb transaction.
type Tx struct {
	tx  *bolt.Tx
	ctx context.Context
}

// Context returns the context for the transaction.
func (tx *Tx) Context() context.Context {
	return tx.ctx
}

// WithContext sets the context for the transaction.
func (tx *Tx) WithContext(ctx context.Context) {
	tx.ctx = ctx
}

// Bucket retrieves the bucket named b.
func (tx *Tx) Bucket(b []byte) (kv.Bucket, error) {
	bkt := tx.tx.Bucket(b)
	if bkt == nil {
		if !tx.tx.Writable() {
			return nil, kv.ErrBucketNotFound
		}

		var err error
		bkt, err = tx.tx.CreateBucketIfNotExists(b)
		if err != nil {
			return nil, err
		}
	}
	return &Bucket{
		bucket: bkt,
	}, nil
}

// Bucket implements kv.Bucket.
type Bucket struct {
	bucket *bolt.Bucket
}

// Get retrieves the value at the provided key.
func (b *Bucket) Get(key []byte) ([]byte, error) {
	val := b.bucket.Get(key)
	if len(val) == 0 {
		return nil, kv.ErrKeyNotFound
	}

	return val, nil
}

// Put sets the value at the provided key.
func (b *Bucket) Put(key []byte, value []byte) error {
	err := b.bucket.Put(key, value)
	if err == bolt.ErrTxNotWritable {
		return kv.ErrTxNotWritable
	}
	return err
}

// Delete removes the provided key.
func (b *Bucket) Delete(key []byte) error {
	err := b.bucket.Delete(key)
	if err == bolt.ErrTxNotWritable {
		return kv.ErrTxNotWritable
	}
	return err
}

// ForwardCursor retrieves a cursor for iterating through the entries
// in the key value store in ascending order from the seek position.
func (b *Bucket) ForwardCursor(seek []byte) (kv.ForwardCursor, error) {
	cursor := b.bucket.Cursor()

	var k, v []byte
	if seek == nil {
		k, v = cursor.First()
	} else {
		k, v = cursor.Seek(seek)
	}

	return &Cursor{
		cursor: cursor,
		key:    k,
		value:  v,
	}, nil
}

// Cursor is a struct for iterating through the entries
// in the key value store.
type Cursor struct {
	cursor *bolt.Cursor

	// previously seeked key/value
	key, value []byte

	seen bool
}

// Next retrieves the next entry in the bucket.
func (c *Cursor) Next() ([]byte, []byte) {
	if !c.seen {
		c.seen = true
		return c.key, c.value
	}

	k, v := c.cursor.Next()
	if len(k) == 0 && len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// Err is always nil for a bolt cursor.
func (c *Cursor) Err() error {
	return nil
}

// Close is a no-op; the cursor lives and dies with its transaction.
func (c *Cursor) Close() error {
	return nil
}
