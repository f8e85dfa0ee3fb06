package controlplane

import (
	"context"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
)

// Location is a deployable region offered by the control plane,
// e.g. "westeurope". Locations are reference data; providers validate the
// Location field of inbound requests against this catalog.
type Location struct {
	ID          platform.ID `json:"id,omitempty" db:"id"`
	Name        string      `json:"name" db:"name"`
	DisplayName string      `json:"displayName" db:"display_name"`
	Geography   string      `json:"geography,omitempty" db:"geography"`
}

// LocationService represents a service for managing the location catalog.
type LocationService interface {
	// FindLocationByName returns the location with the given name.
	FindLocationByName(ctx context.Context, name string) (*Location, error)

	// ListLocations returns all locations ordered by name.
	ListLocations(ctx context.Context) ([]*Location, error)

	// CreateLocation adds a location to the catalog and sets l.ID.
	CreateLocation(ctx context.Context, l *Location) error

	// DeleteLocation removes a location by name.
	DeleteLocation(ctx context.Context, name string) error
}
