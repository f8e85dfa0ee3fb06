package controlplane

import (
	"context"
	"fmt"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// ErrInvalidSubscriptionFilter is returned when a subscription filter carries
// neither an ID nor a name.
var ErrInvalidSubscriptionFilter = &errors.Error{
	Code: errors.EInvalid,
	Msg:  "must specify exactly one of id or name",
}

// SubscriptionState is the billing/enablement state of a subscription.
type SubscriptionState string

const (
	SubscriptionEnabled  SubscriptionState = "Enabled"
	SubscriptionWarned   SubscriptionState = "Warned"
	SubscriptionDisabled SubscriptionState = "Disabled"
)

// Valid reports whether s is one of the declared subscription states.
func (s SubscriptionState) Valid() error {
	switch s {
	case SubscriptionEnabled, SubscriptionWarned, SubscriptionDisabled:
		return nil
	default:
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid subscription state %q", string(s)),
		}
	}
}

// Subscription is the unit resource groups are billed and scoped under.
type Subscription struct {
	ID                platform.ID       `json:"id,omitempty"`
	TenantID          platform.ID       `json:"tenantId"`
	ManagementGroupID *platform.ID      `json:"managementGroupId,omitempty"`
	Name              string            `json:"name"`
	DisplayName       string            `json:"displayName,omitempty"`
	State             SubscriptionState `json:"state"`
	CRUDLog
}

// Operation names for subscriptions.
const (
	OpFindSubscriptionByID = "FindSubscriptionByID"
	OpFindSubscription     = "FindSubscription"
	OpFindSubscriptions    = "FindSubscriptions"
	OpCreateSubscription   = "CreateSubscription"
	OpUpdateSubscription   = "UpdateSubscription"
	OpDeleteSubscription   = "DeleteSubscription"
)

// SubscriptionFilter represents a set of filter that restrict the returned results.
type SubscriptionFilter struct {
	ID                *platform.ID
	Name              *string
	TenantID          *platform.ID
	ManagementGroupID *platform.ID
}

// QueryParams returns a map containing url query params.
func (f SubscriptionFilter) QueryParams() map[string][]string {
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
	if f.ManagementGroupID != nil {
		qp["managementGroupID"] = []string{f.ManagementGroupID.String()}
	}
	return qp
}

// SubscriptionUpdate represents updates to a subscription.
// Only fields which are set are updated.
type SubscriptionUpdate struct {
	DisplayName       *string            `json:"displayName,omitempty"`
	ManagementGroupID *platform.ID       `json:"managementGroupId,omitempty"`
	State             *SubscriptionState `json:"state,omitempty"`
}

// SubscriptionService represents a service for managing subscriptions.
type SubscriptionService interface {
	// FindSubscriptionByID returns a single subscription by ID.
	FindSubscriptionByID(ctx context.Context, id platform.ID) (*Subscription, error)

	// FindSubscription returns the first subscription that matches filter.
	FindSubscription(ctx context.Context, filter SubscriptionFilter) (*Subscription, error)

	// FindSubscriptions returns a list of subscriptions that match filter and
	// the total count of matching subscriptions.
	FindSubscriptions(ctx context.Context, filter SubscriptionFilter, opt ...FindOptions) ([]*Subscription, int, error)

	// CreateSubscription creates a new subscription and sets s.ID with the new
	// identifier. The owning tenant must exist; the management group, when
	// set, must exist.
	CreateSubscription(ctx context.Context, s *Subscription) error

	// UpdateSubscription updates a single subscription with changeset.
	// Returns the new subscription state after update.
	UpdateSubscription(ctx context.Context, id platform.ID, upd SubscriptionUpdate) (*Subscription, error)

	// DeleteSubscription removes a subscription by ID and its dependent
	// resource groups.
	DeleteSubscription(ctx context.Context, id platform.ID) error
}
