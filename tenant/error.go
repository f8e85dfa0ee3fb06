package tenant

import (
	"fmt"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

var (
	// ErrNameisEmpty is when a name is empty
	ErrNameisEmpty = &errors.Error{
		Code: errors.EInvalid,
		Msg:  "name is empty",
	}

	// NotUniqueIDError occurs when attempting to create an entity with an ID that already exists.
	NotUniqueIDError = &errors.Error{
		Code: errors.EConflict,
		Msg:  "ID already exists",
	}

	// ErrFailureGeneratingID occurs only when the random number generator
	// cannot generate an ID in MaxIDGenerationN times.
	ErrFailureGeneratingID = &errors.Error{
		Code: errors.EInternal,
		Msg:  "unable to generate valid id",
	}

	// ErrTenantNotFound is used when the tenant is not found.
	ErrTenantNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "tenant not found",
	}

	// ErrManagementGroupNotFound is used when the management group is not found.
	ErrManagementGroupNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "management group not found",
	}

	// ErrSubscriptionNotFound is used when the subscription is not found.
	ErrSubscriptionNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "subscription not found",
	}

	// ErrResourceGroupNotFound is used when the resource group is not found.
	ErrResourceGroupNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "resource group not found",
	}

	// ErrManagementGroupNotEmpty is used when deleting a group that still has
	// children or attached subscriptions.
	ErrManagementGroupNotEmpty = &errors.Error{
		Code: errors.EConflict,
		Msg:  "management group has children or attached subscriptions",
	}

	// ErrTenantNotEmpty is used when deleting a tenant that still owns
	// subscriptions.
	ErrTenantNotEmpty = &errors.Error{
		Code: errors.EConflict,
		Msg:  "tenant still owns subscriptions",
	}
)

// ErrInternalServiceError is used when the error comes from an internal system.
func ErrInternalServiceError(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Err:  err,
	}
}

// ErrCorruptEntity is returned when a stored entity cannot be unmarshalled.
func ErrCorruptEntity(entity string, err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  fmt.Sprintf("%s could not be unmarshalled", entity),
		Err:  err,
		Op:   "tenant.unmarshal" + entity,
	}
}

// ErrUnprocessableEntity is returned when an entity cannot be marshalled for
// storage.
func ErrUnprocessableEntity(entity string, err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  fmt.Sprintf("%s could not be marshalled", entity),
		Err:  err,
		Op:   "tenant.marshal" + entity,
	}
}

// TenantAlreadyExistsError is used when creating a tenant with a name that
// already exists.
func TenantAlreadyExistsError(name string) error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("tenant with name %s already exists", name),
	}
}

// ManagementGroupAlreadyExistsError is used when creating a management group
// with a name that already exists.
func ManagementGroupAlreadyExistsError(name string) error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("management group with name %s already exists", name),
	}
}

// SubscriptionAlreadyExistsError is used when creating a subscription with a
// name that already exists.
func SubscriptionAlreadyExistsError(name string) error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("subscription with name %s already exists", name),
	}
}

// ResourceGroupAlreadyExistsError is used when creating a resource group with
// a name that already exists within its subscription.
func ResourceGroupAlreadyExistsError(name string) error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("resource group with name %s already exists in subscription", name),
	}
}

// TenantNotFoundByName is when a tenant cannot be found by name.
func TenantNotFoundByName(name string) error {
	return &errors.Error{
		Code: errors.ENotFound,
		Msg:  fmt.Sprintf("tenant %q not found", name),
	}
}

// SubscriptionNotFoundByName is when a subscription cannot be found by name.
func SubscriptionNotFoundByName(name string) error {
	return &errors.Error{
		Code: errors.ENotFound,
		Msg:  fmt.Sprintf("subscription %q not found", name),
	}
}

// InvalidIDError is used when an ID cannot be encoded for storage.
func InvalidIDError(err error) error {
	return &errors.Error{
		Code: errors.EInvalid,
		Msg:  "invalid ID provided",
		Err:  err,
	}
}
