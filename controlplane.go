// Package controlplane declares the domain types and service contracts of the
// ITL control plane SDK.
//
// Every entity a resource provider manages (tenants, management groups,
// subscriptions, resource groups, locations, policies) is declared here
// together with its service interface. Concrete implementations live in their
// own packages (tenant, sqlite, bolt, inmem) and are composed by cmd/cpd.
package controlplane

import "time"

// DefaultProviderNamespace is the namespace the built-in tenancy providers
// register under. Deployments can prefix their own namespaces via
// configuration.
const DefaultProviderNamespace = "ITL.Core"

// CRUDLog is the struct to store crud related timestamps.
type CRUDLog struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetCreatedAt set the created time.
func (log *CRUDLog) SetCreatedAt(now time.Time) {
	log.CreatedAt = now
}

// SetUpdatedAt set the updated time.
func (log *CRUDLog) SetUpdatedAt(now time.Time) {
	log.UpdatedAt = now
}
