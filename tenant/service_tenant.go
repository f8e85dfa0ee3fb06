package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
)

// FindTenantByID returns a single tenant by ID.
func (s *Service) FindTenantByID(ctx context.Context, id platform.ID) (*controlplane.Tenant, error) {
	var t *controlplane.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		tenant, err := s.store.GetTenant(ctx, tx, id)
		if err != nil {
			return err
		}
		t = tenant
		return nil
	})

	if err != nil {
		return nil, err
	}

	return t, nil
}

// FindTenant returns the first tenant that matches filter.
func (s *Service) FindTenant(ctx context.Context, filter controlplane.TenantFilter) (*controlplane.Tenant, error) {
	if filter.ID != nil {
		return s.FindTenantByID(ctx, *filter.ID)
	}

	if filter.Name == nil {
		return nil, controlplane.ErrInvalidTenantFilter
	}

	var t *controlplane.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		tenant, err := s.store.GetTenantByName(ctx, tx, *filter.Name)
		if err != nil {
			return err
		}
		t = tenant
		return nil
	})

	if err != nil {
		return nil, err
	}

	return t, nil
}

// FindTenants returns a list of tenants that match filter and the total count
// of matching tenants.
func (s *Service) FindTenants(ctx context.Context, filter controlplane.TenantFilter, opt ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error) {
	// a filter with an id or name can match at most one tenant
	if filter.ID != nil || filter.Name != nil {
		t, err := s.FindTenant(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		return []*controlplane.Tenant{t}, 1, nil
	}

	var ts []*controlplane.Tenant
	err := s.store.View(ctx, func(tx kv.Tx) error {
		tenants, err := s.store.ListTenants(ctx, tx, opt...)
		if err != nil {
			return err
		}
		ts = tenants
		return nil
	})

	if err != nil {
		return nil, 0, err
	}

	return ts, len(ts), nil
}

// CreateTenant creates a new tenant and sets t.ID with the new identifier.
func (s *Service) CreateTenant(ctx context.Context, t *controlplane.Tenant) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateTenant(ctx, tx, t)
	})
}

// UpdateTenant updates a single tenant with changeset.
// Returns the new tenant state after update.
func (s *Service) UpdateTenant(ctx context.Context, id platform.ID, upd controlplane.TenantUpdate) (*controlplane.Tenant, error) {
	var t *controlplane.Tenant
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		tenant, err := s.store.UpdateTenant(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		t = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTenant removes a tenant by ID. Tenants that still own subscriptions
// cannot be removed.
func (s *Service) DeleteTenant(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		subs, err := s.store.ListSubscriptions(ctx, tx, controlplane.SubscriptionFilter{TenantID: &id}, controlplane.FindOptions{Limit: 1})
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			return ErrTenantNotEmpty
		}

		return s.store.DeleteTenant(ctx, tx, id)
	})
}
