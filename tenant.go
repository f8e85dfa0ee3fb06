package controlplane

import (
	"context"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// ErrInvalidTenantFilter is returned when a tenant filter carries neither an ID nor a name.
var ErrInvalidTenantFilter = &errors.Error{
	Code: errors.EInvalid,
	Msg:  "must specify exactly one of id or name",
}

// Tenant is the root of the tenancy hierarchy; every management group and
// subscription belongs to exactly one tenant.
type Tenant struct {
	ID            platform.ID `json:"id,omitempty"`
	Name          string      `json:"name"`
	DisplayName   string      `json:"displayName,omitempty"`
	DefaultDomain string      `json:"defaultDomain,omitempty"`
	CRUDLog
}

// Operation names for tenants, used in error ops and logs.
const (
	OpFindTenantByID = "FindTenantByID"
	OpFindTenant     = "FindTenant"
	OpFindTenants    = "FindTenants"
	OpCreateTenant   = "CreateTenant"
	OpUpdateTenant   = "UpdateTenant"
	OpDeleteTenant   = "DeleteTenant"
)

// TenantFilter represents a set of filter that restrict the returned results.
type TenantFilter struct {
	ID   *platform.ID
	Name *string
}

// QueryParams returns a map containing url query params.
func (f TenantFilter) QueryParams() map[string][]string {
	qp := map[string][]string{}
	if f.ID != nil {
		qp["id"] = []string{f.ID.String()}
	}
	if f.Name != nil {
		qp["name"] = []string{*f.Name}
	}
	return qp
}

// TenantUpdate represents updates to a tenant.
// Only fields which are set are updated.
type TenantUpdate struct {
	Name          *string `json:"name,omitempty"`
	DisplayName   *string `json:"displayName,omitempty"`
	DefaultDomain *string `json:"defaultDomain,omitempty"`
}

// TenantService represents a service for managing tenants.
type TenantService interface {
	// FindTenantByID returns a single tenant by ID.
	FindTenantByID(ctx context.Context, id platform.ID) (*Tenant, error)

	// FindTenant returns the first tenant that matches filter.
	FindTenant(ctx context.Context, filter TenantFilter) (*Tenant, error)

	// FindTenants returns a list of tenants that match filter and the total count of matching tenants.
	// Additional options provide pagination & sorting.
	FindTenants(ctx context.Context, filter TenantFilter, opt ...FindOptions) ([]*Tenant, int, error)

	// CreateTenant creates a new tenant and sets t.ID with the new identifier.
	CreateTenant(ctx context.Context, t *Tenant) error

	// UpdateTenant updates a single tenant with changeset.
	// Returns the new tenant state after update.
	UpdateTenant(ctx context.Context, id platform.ID, upd TenantUpdate) (*Tenant, error)

	// DeleteTenant removes a tenant by ID.
	DeleteTenant(ctx context.Context, id platform.ID) error
}
