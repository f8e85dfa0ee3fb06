package tenant

import (
	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
)

// Service implements every tenancy service interface over a single Store, so
// cross-entity invariants (existence checks, cascade deletes) run inside one
// transaction.
type Service struct {
	store *Store
}

var (
	_ controlplane.TenantService          = (*Service)(nil)
	_ controlplane.ManagementGroupService = (*Service)(nil)
	_ controlplane.SubscriptionService    = (*Service)(nil)
	_ controlplane.ResourceGroupService   = (*Service)(nil)
)

// NewService creates a new tenant service over st.
func NewService(st *Store) *Service {
	return &Service{store: st}
}
