package controlplane

import (
	"context"
	"fmt"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// PolicyMode controls which resources a policy definition evaluates.
type PolicyMode string

const (
	// PolicyModeAll evaluates every resource under the assignment scope.
	PolicyModeAll PolicyMode = "All"
	// PolicyModeIndexed evaluates only resources that support tags and location.
	PolicyModeIndexed PolicyMode = "Indexed"
)

// Valid reports whether m is one of the declared policy modes.
func (m PolicyMode) Valid() error {
	switch m {
	case PolicyModeAll, PolicyModeIndexed:
		return nil
	default:
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid policy mode %q", string(m)),
		}
	}
}

// PolicyDefinition declares a rule the control plane can enforce. The rule
// payload is opaque to the SDK and interpreted by the policy engine consuming it.
type PolicyDefinition struct {
	ID          platform.ID            `json:"id,omitempty"`
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName,omitempty"`
	Description string                 `json:"description,omitempty"`
	Mode        PolicyMode             `json:"mode"`
	Rule        map[string]interface{} `json:"rule"`
	CRUDLog
}

// PolicyAssignment binds a policy definition to a scope. Scope is a
// hierarchical resource path; an assignment applies to the scope and
// everything below it.
type PolicyAssignment struct {
	ID          platform.ID            `json:"id,omitempty"`
	PolicyID    platform.ID            `json:"policyId"`
	Scope       string                 `json:"scope"`
	DisplayName string                 `json:"displayName,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	CRUDLog
}

// PolicyService represents a service for managing policy definitions and
// their assignments.
type PolicyService interface {
	// FindPolicyDefinitionByID returns a single policy definition by ID.
	FindPolicyDefinitionByID(ctx context.Context, id platform.ID) (*PolicyDefinition, error)

	// FindPolicyDefinitions returns all policy definitions ordered by name.
	FindPolicyDefinitions(ctx context.Context, opt ...FindOptions) ([]*PolicyDefinition, int, error)

	// CreatePolicyDefinition stores a new definition and sets pd.ID.
	CreatePolicyDefinition(ctx context.Context, pd *PolicyDefinition) error

	// DeletePolicyDefinition removes a definition by ID. Definitions with
	// active assignments cannot be removed.
	DeletePolicyDefinition(ctx context.Context, id platform.ID) error

	// AssignPolicy binds a definition to a scope and sets pa.ID.
	AssignPolicy(ctx context.Context, pa *PolicyAssignment) error

	// FindPolicyAssignments returns the assignments whose scope contains the
	// given resource path, from the root of the hierarchy down.
	FindPolicyAssignments(ctx context.Context, scope string) ([]*PolicyAssignment, error)

	// DeletePolicyAssignment removes an assignment by ID.
	DeletePolicyAssignment(ctx context.Context, id platform.ID) error
}
