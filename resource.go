package controlplane

import (
	"fmt"
	"path"
	"regexp"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/google/uuid"
)

// MaxResourceNameLength is the longest resource name accepted on the wire.
const MaxResourceNameLength = 260

// apiVersionPattern matches the date-stamped api versions exposed by
// resource providers, e.g. "2025-06-01".
var apiVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ProvisioningState is the lifecycle status of a resource operation.
type ProvisioningState string

const (
	ProvisioningSucceeded ProvisioningState = "Succeeded"
	ProvisioningFailed    ProvisioningState = "Failed"
	ProvisioningCanceled  ProvisioningState = "Canceled"
	ProvisioningCreating  ProvisioningState = "Creating"
	ProvisioningUpdating  ProvisioningState = "Updating"
	ProvisioningDeleting  ProvisioningState = "Deleting"
)

// Valid reports whether s is one of the declared provisioning states.
func (s ProvisioningState) Valid() error {
	switch s {
	case ProvisioningSucceeded, ProvisioningFailed, ProvisioningCanceled,
		ProvisioningCreating, ProvisioningUpdating, ProvisioningDeleting:
		return nil
	default:
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid provisioning state %q", string(s)),
		}
	}
}

// ResourceRequest is the parsed form of a single control plane call.
//
// The HTTP layer constructs one per inbound request and hands it to the
// registry for dispatch; it is not mutated afterwards. OK must pass before a
// request is dispatched.
type ResourceRequest struct {
	SubscriptionID    string                 `json:"subscriptionId,omitempty"`
	ResourceGroup     string                 `json:"resourceGroup,omitempty"`
	ProviderNamespace string                 `json:"providerNamespace"`
	ResourceType      string                 `json:"resourceType"`
	ResourceName      string                 `json:"resourceName"`
	Location          string                 `json:"location,omitempty"`
	Body              map[string]interface{} `json:"body,omitempty"`
	Action            string                 `json:"action,omitempty"`
	APIVersion        string                 `json:"apiVersion"`
}

// OK validates the request fields that every provider relies on.
func (r ResourceRequest) OK() error {
	if r.ProviderNamespace == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "provider namespace is required",
		}
	}
	if r.ResourceType == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "resource type is required",
		}
	}
	if r.ResourceName == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "resource name is required",
		}
	}
	if len(r.ResourceName) > MaxResourceNameLength {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("resource name exceeds %d characters", MaxResourceNameLength),
		}
	}
	if r.APIVersion == "" || !apiVersionPattern.MatchString(r.APIVersion) {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("api version %q does not match YYYY-MM-DD", r.APIVersion),
		}
	}
	return nil
}

// Path renders the hierarchical resource ID addressed by the request.
//
// Subscription and resource group segments are omitted for tenant-level
// resources, so a management group request renders as
// /providers/ITL.Core/managementgroups/{name}.
func (r ResourceRequest) Path() string {
	p := "/"
	if r.SubscriptionID != "" {
		p = path.Join(p, "subscriptions", r.SubscriptionID)
	}
	if r.ResourceGroup != "" {
		p = path.Join(p, "resourceGroups", r.ResourceGroup)
	}
	return path.Join(p, "providers", r.ProviderNamespace, r.ResourceType, r.ResourceName)
}

// ResourceResponse is the uniform payload a provider returns for a resource.
type ResourceResponse struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Type              string                 `json:"type"`
	Location          string                 `json:"location,omitempty"`
	Properties        map[string]interface{} `json:"properties,omitempty"`
	Tags              map[string]string      `json:"tags,omitempty"`
	ProvisioningState ProvisioningState      `json:"provisioningState"`
	ResourceGUID      uuid.UUID              `json:"resourceGuid"`
}

// EnsureGUID assigns a fresh resource GUID when none was set by the provider.
func (r *ResourceResponse) EnsureGUID() {
	if r.ResourceGUID == uuid.Nil {
		r.ResourceGUID = uuid.New()
	}
}
