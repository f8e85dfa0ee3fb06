package controlplane

import (
	"context"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// ErrInvalidResourceGroupFilter is returned when a resource group filter
// carries neither an ID nor a subscription scope.
var ErrInvalidResourceGroupFilter = &errors.Error{
	Code: errors.EInvalid,
	Msg:  "must specify an id, or a subscription id and name",
}

// ResourceGroup is the deployment scope resources are created in.
// Names are unique within a subscription, not globally.
type ResourceGroup struct {
	ID                platform.ID       `json:"id,omitempty"`
	SubscriptionID    platform.ID       `json:"subscriptionId"`
	Name              string            `json:"name"`
	Location          string            `json:"location"`
	Tags              map[string]string `json:"tags,omitempty"`
	ProvisioningState ProvisioningState `json:"provisioningState"`
	CRUDLog
}

// Operation names for resource groups.
const (
	OpFindResourceGroupByID = "FindResourceGroupByID"
	OpFindResourceGroup     = "FindResourceGroup"
	OpFindResourceGroups    = "FindResourceGroups"
	OpCreateResourceGroup   = "CreateResourceGroup"
	OpUpdateResourceGroup   = "UpdateResourceGroup"
	OpDeleteResourceGroup   = "DeleteResourceGroup"
)

// ResourceGroupFilter represents a set of filter that restrict the returned results.
type ResourceGroupFilter struct {
	ID             *platform.ID
	Name           *string
	SubscriptionID *platform.ID
}

// QueryParams returns a map containing url query params.
func (f ResourceGroupFilter) QueryParams() map[string][]string {
	qp := map[string][]string{}
	if f.ID != nil {
		qp["id"] = []string{f.ID.String()}
	}
	if f.Name != nil {
		qp["name"] = []string{*f.Name}
	}
	if f.SubscriptionID != nil {
		qp["subscriptionID"] = []string{f.SubscriptionID.String()}
	}
	return qp
}

// ResourceGroupUpdate represents updates to a resource group.
// Only fields which are set are updated; Location is immutable.
type ResourceGroupUpdate struct {
	Tags              map[string]string  `json:"tags,omitempty"`
	ProvisioningState *ProvisioningState `json:"provisioningState,omitempty"`
}

// ResourceGroupService represents a service for managing resource groups.
type ResourceGroupService interface {
	// FindResourceGroupByID returns a single resource group by ID.
	FindResourceGroupByID(ctx context.Context, id platform.ID) (*ResourceGroup, error)

	// FindResourceGroup returns the first resource group that matches filter.
	FindResourceGroup(ctx context.Context, filter ResourceGroupFilter) (*ResourceGroup, error)

	// FindResourceGroups returns a list of resource groups that match filter
	// and the total count of matching groups.
	FindResourceGroups(ctx context.Context, filter ResourceGroupFilter, opt ...FindOptions) ([]*ResourceGroup, int, error)

	// CreateResourceGroup creates a new resource group and sets rg.ID with the
	// new identifier. The owning subscription must exist.
	CreateResourceGroup(ctx context.Context, rg *ResourceGroup) error

	// UpdateResourceGroup updates a single resource group with changeset.
	// Returns the new group state after update.
	UpdateResourceGroup(ctx context.Context, id platform.ID, upd ResourceGroupUpdate) (*ResourceGroup, error)

	// DeleteResourceGroup removes a resource group by ID.
	DeleteResourceGroup(ctx context.Context, id platform.ID) error
}
