package migration

import "context"

// BucketsMigration creates the provided buckets on Up and removes them on Down.
type BucketsMigration struct {
	name    string
	buckets [][]byte
}

// CreateBuckets returns a Spec which creates the provided buckets.
func CreateBuckets(name string, buckets ...[]byte) Spec {
	return BucketsMigration{name, buckets}
}

// MigrationName returns the name of the migration.
func (m BucketsMigration) MigrationName() string {
	return m.name
}

// Up creates the buckets on the store.
func (m BucketsMigration) Up(ctx context.Context, store Store) error {
	for _, bucket := range m.buckets {
		if err := store.CreateBucket(ctx, bucket); err != nil {
			return err
		}
	}
	return nil
}

// Down deletes the buckets from the store.
func (m BucketsMigration) Down(ctx context.Context, store Store) error {
	for _, bucket := range m.buckets {
		if err := store.DeleteBucket(ctx, bucket); err != nil {
			return err
		}
	}
	return nil
}
