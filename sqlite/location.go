package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

var _ controlplane.LocationService = (*LocationService)(nil)

// LocationService manages the location catalog in sqlite.
type LocationService struct {
	store *SqlStore
	idGen platform.IDGenerator
}

func NewLocationService(store *SqlStore, idGen platform.IDGenerator) *LocationService {
	return &LocationService{
		store: store,
		idGen: idGen,
	}
}

func errLocationNotFound(name string) error {
	return &errors.Error{
		Code: errors.ENotFound,
		Msg:  fmt.Sprintf("location %q not found", name),
	}
}

func (s *LocationService) FindLocationByName(ctx context.Context, name string) (*controlplane.Location, error) {
	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	var l controlplane.Location
	err := s.store.DB.GetContext(ctx, &l, `SELECT id, name, display_name, geography FROM locations WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return nil, errLocationNotFound(name)
	}
	if err != nil {
		return nil, errDatabase(err, "sqlite.FindLocationByName")
	}
	return &l, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*controlplane.Location, error) {
	s.store.Mu.RLock()
	defer s.store.Mu.RUnlock()

	ls := []*controlplane.Location{}
	err := s.store.DB.SelectContext(ctx, &ls, `SELECT id, name, display_name, geography FROM locations ORDER BY name`)
	if err != nil {
		return nil, errDatabase(err, "sqlite.ListLocations")
	}
	return ls, nil
}

func (s *LocationService) CreateLocation(ctx context.Context, l *controlplane.Location) error {
	if l.Name == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "location name cannot be empty",
		}
	}

	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	var count int
	if err := s.store.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM locations WHERE name = ?`, l.Name); err != nil {
		return errDatabase(err, "sqlite.CreateLocation")
	}
	if count > 0 {
		return &errors.Error{
			Code: errors.EConflict,
			Msg:  fmt.Sprintf("location with name %s already exists", l.Name),
		}
	}

	l.ID = s.idGen.ID()
	_, err := s.store.DB.ExecContext(ctx,
		`INSERT INTO locations (id, name, display_name, geography) VALUES (?, ?, ?, ?)`,
		l.ID, l.Name, l.DisplayName, l.Geography)
	if err != nil {
		return errDatabase(err, "sqlite.CreateLocation")
	}
	return nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, name string) error {
	s.store.Mu.Lock()
	defer s.store.Mu.Unlock()

	res, err := s.store.DB.ExecContext(ctx, `DELETE FROM locations WHERE name = ?`, name)
	if err != nil {
		return errDatabase(err, "sqlite.DeleteLocation")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errDatabase(err, "sqlite.DeleteLocation")
	}
	if n == 0 {
		return errLocationNotFound(name)
	}
	return nil
}
