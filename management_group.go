package controlplane

import (
	"context"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// ErrInvalidManagementGroupFilter is returned when a management group filter
// carries neither an ID nor a name.
var ErrInvalidManagementGroupFilter = &errors.Error{
	Code: errors.EInvalid,
	Msg:  "must specify exactly one of id or name",
}

// ManagementGroup groups subscriptions into a tree below a tenant.
// A nil ParentID marks the tenant root group.
type ManagementGroup struct {
	ID          platform.ID  `json:"id,omitempty"`
	TenantID    platform.ID  `json:"tenantId"`
	ParentID    *platform.ID `json:"parentId,omitempty"`
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName,omitempty"`
	CRUDLog
}

// Operation names for management groups.
const (
	OpFindManagementGroupByID = "FindManagementGroupByID"
	OpFindManagementGroups    = "FindManagementGroups"
	OpCreateManagementGroup   = "CreateManagementGroup"
	OpUpdateManagementGroup   = "UpdateManagementGroup"
	OpDeleteManagementGroup   = "DeleteManagementGroup"
)

// ManagementGroupFilter represents a set of filter that restrict the returned results.
type ManagementGroupFilter struct {
	ID       *platform.ID
	Name     *string
	TenantID *platform.ID
	ParentID *platform.ID
}

// QueryParams returns a map containing url query params.
func (f ManagementGroupFilter) QueryParams() map[string][]string {
	qp := map[string][]string{}
	if f.ID != nil {
		qp["id"] = []string{f.ID.String()}
	}
	if f.Name != nil {
		qp["name"] = []string{*f.Name}
	}
	if f.TenantID != nil {
		qp["tenantID"] = []string{f.TenantID.String()}
	}
	if f.ParentID != nil {
		qp["parentID"] = []string{f.ParentID.String()}
	}
	return qp
}

// ManagementGroupUpdate represents updates to a management group.
// Only fields which are set are updated.
type ManagementGroupUpdate struct {
	DisplayName *string      `json:"displayName,omitempty"`
	ParentID    *platform.ID `json:"parentId,omitempty"`
}

// ManagementGroupService represents a service for managing management groups.
type ManagementGroupService interface {
	// FindManagementGroupByID returns a single management group by ID.
	FindManagementGroupByID(ctx context.Context, id platform.ID) (*ManagementGroup, error)

	// FindManagementGroups returns a list of management groups that match filter and
	// the total count of matching groups.
	FindManagementGroups(ctx context.Context, filter ManagementGroupFilter, opt ...FindOptions) ([]*ManagementGroup, int, error)

	// CreateManagementGroup creates a new management group and sets mg.ID with
	// the new identifier. The parent group, when set, must exist.
	CreateManagementGroup(ctx context.Context, mg *ManagementGroup) error

	// UpdateManagementGroup updates a single management group with changeset.
	// Returns the new group state after update.
	UpdateManagementGroup(ctx context.Context, id platform.ID, upd ManagementGroupUpdate) (*ManagementGroup, error)

	// DeleteManagementGroup removes a management group by ID. Groups with
	// children or attached subscriptions cannot be removed.
	DeleteManagementGroup(ctx context.Context, id platform.ID) error
}
