package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
)

// FindResourceGroupByID returns a single resource group by ID.
func (s *Service) FindResourceGroupByID(ctx context.Context, id platform.ID) (*controlplane.ResourceGroup, error) {
	var rg *controlplane.ResourceGroup
	err := s.store.View(ctx, func(tx kv.Tx) error {
		group, err := s.store.GetResourceGroup(ctx, tx, id)
		if err != nil {
			return err
		}
		rg = group
		return nil
	})

	if err != nil {
		return nil, err
	}

	return rg, nil
}

// FindResourceGroup returns the first resource group that matches filter.
func (s *Service) FindResourceGroup(ctx context.Context, filter controlplane.ResourceGroupFilter) (*controlplane.ResourceGroup, error) {
	if filter.ID != nil {
		return s.FindResourceGroupByID(ctx, *filter.ID)
	}

	if filter.SubscriptionID == nil || filter.Name == nil {
		return nil, controlplane.ErrInvalidResourceGroupFilter
	}

	var rg *controlplane.ResourceGroup
	err := s.store.View(ctx, func(tx kv.Tx) error {
		group, err := s.store.GetResourceGroupByName(ctx, tx, *filter.SubscriptionID, *filter.Name)
		if err != nil {
			return err
		}
		rg = group
		return nil
	})

	if err != nil {
		return nil, err
	}

	return rg, nil
}

// FindResourceGroups returns a list of resource groups that match filter and
// the total count of matching groups.
func (s *Service) FindResourceGroups(ctx context.Context, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) ([]*controlplane.ResourceGroup, int, error) {
	if filter.ID != nil {
		rg, err := s.FindResourceGroupByID(ctx, *filter.ID)
		if err != nil {
			return nil, 0, err
		}
		return []*controlplane.ResourceGroup{rg}, 1, nil
	}

	var rgs []*controlplane.ResourceGroup
	err := s.store.View(ctx, func(tx kv.Tx) error {
		groups, err := s.store.ListResourceGroups(ctx, tx, filter, opt...)
		if err != nil {
			return err
		}
		rgs = groups
		return nil
	})

	if err != nil {
		return nil, 0, err
	}

	return rgs, len(rgs), nil
}

// CreateResourceGroup creates a new resource group and sets rg.ID with the
// new identifier.
func (s *Service) CreateResourceGroup(ctx context.Context, rg *controlplane.ResourceGroup) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateResourceGroup(ctx, tx, rg)
	})
}

// UpdateResourceGroup updates a single resource group with changeset.
// Returns the new group state after update.
func (s *Service) UpdateResourceGroup(ctx context.Context, id platform.ID, upd controlplane.ResourceGroupUpdate) (*controlplane.ResourceGroup, error) {
	var rg *controlplane.ResourceGroup
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		group, err := s.store.UpdateResourceGroup(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		rg = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rg, nil
}

// DeleteResourceGroup removes a resource group by ID.
func (s *Service) DeleteResourceGroup(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.DeleteResourceGroup(ctx, tx, id)
	})
}
