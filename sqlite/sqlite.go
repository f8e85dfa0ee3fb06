package sqlite

import (
	"context"
	"sync"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	// sqlite driver
	_ "github.com/mattn/go-sqlite3"
)

// DefaultFilename is the name of the sqlite database file relative to the
// configured data directory.
const DefaultFilename = "controlplane.sqlite"

// InMemory is the path to use for a non-persistent database, handy in tests.
const InMemory = ":memory:"

// SqlStore is a wrapper around the sqlite database used for relational
// reference data such as the location catalog and policies.
type SqlStore struct {
	Mu sync.RWMutex
	DB *sqlx.DB

	log  *zap.Logger
	path string
}

// NewSqlStore opens (creating if necessary) the sqlite database at path.
func NewSqlStore(path string, log *zap.Logger) (*SqlStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	log.Info("Resources opened", zap.String("path", path))

	// Multiple connections to an in-memory database each get their own
	// database, so cap the pool at one connection.
	db.SetMaxOpenConns(1)

	// WAL allows readers to proceed while a write transaction is open.
	if _, err := db.Exec("PRAGMA journal_mode=wal;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=on;"); err != nil {
		return nil, err
	}

	return &SqlStore{
		DB:   db,
		log:  log,
		path: path,
	}, nil
}

// Close closes the underlying database handle.
func (s *SqlStore) Close() error {
	return s.DB.Close()
}

// execTrans runs stmt in a single transaction, rolling back on failure.
func (s *SqlStore) execTrans(ctx context.Context, stmt string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// userVersion returns the sqlite user_version pragma, which records the
// version of the last applied migration.
func (s *SqlStore) userVersion() (int, error) {
	var v int
	if err := s.DB.Get(&v, "PRAGMA user_version;"); err != nil {
		return 0, err
	}
	return v, nil
}

// tableNames returns the names of the user tables in the database.
func (s *SqlStore) tableNames() ([]string, error) {
	var names []string
	err := s.DB.Select(&names, `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Flush drops the contents of every user table. Used by tests only.
func (s *SqlStore) Flush(ctx context.Context) {
	tables, err := s.tableNames()
	if err != nil {
		s.log.Fatal("unable to flush sqlite", zap.Error(err))
	}

	for _, t := range tables {
		if err := s.execTrans(ctx, "DELETE FROM "+t); err != nil {
			s.log.Fatal("unable to flush sqlite", zap.Error(err))
		}
	}
	s.log.Debug("sqlite data flushed successfully")
}

func errDatabase(err error, op string) error {
	if err == nil {
		return nil
	}
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "unexpected database error",
		Op:   op,
		Err:  err,
	}
}
