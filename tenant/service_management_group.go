package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
)

// FindManagementGroupByID returns a single management group by ID.
func (s *Service) FindManagementGroupByID(ctx context.Context, id platform.ID) (*controlplane.ManagementGroup, error) {
	var mg *controlplane.ManagementGroup
	err := s.store.View(ctx, func(tx kv.Tx) error {
		group, err := s.store.GetManagementGroup(ctx, tx, id)
		if err != nil {
			return err
		}
		mg = group
		return nil
	})

	if err != nil {
		return nil, err
	}

	return mg, nil
}

// FindManagementGroups returns a list of management groups that match filter
// and the total count of matching groups.
func (s *Service) FindManagementGroups(ctx context.Context, filter controlplane.ManagementGroupFilter, opt ...controlplane.FindOptions) ([]*controlplane.ManagementGroup, int, error) {
	if filter.ID != nil {
		mg, err := s.FindManagementGroupByID(ctx, *filter.ID)
		if err != nil {
			return nil, 0, err
		}
		return []*controlplane.ManagementGroup{mg}, 1, nil
	}

	var mgs []*controlplane.ManagementGroup
	err := s.store.View(ctx, func(tx kv.Tx) error {
		groups, err := s.store.ListManagementGroups(ctx, tx, filter, opt...)
		if err != nil {
			return err
		}
		mgs = groups
		return nil
	})

	if err != nil {
		return nil, 0, err
	}

	return mgs, len(mgs), nil
}

// CreateManagementGroup creates a new management group and sets mg.ID with
// the new identifier.
func (s *Service) CreateManagementGroup(ctx context.Context, mg *controlplane.ManagementGroup) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateManagementGroup(ctx, tx, mg)
	})
}

// UpdateManagementGroup updates a single management group with changeset.
// Returns the new group state after update.
func (s *Service) UpdateManagementGroup(ctx context.Context, id platform.ID, upd controlplane.ManagementGroupUpdate) (*controlplane.ManagementGroup, error) {
	var mg *controlplane.ManagementGroup
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		group, err := s.store.UpdateManagementGroup(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		mg = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mg, nil
}

// DeleteManagementGroup removes a management group by ID. Groups with child
// groups or attached subscriptions cannot be removed.
func (s *Service) DeleteManagementGroup(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		children, err := s.store.ListManagementGroups(ctx, tx, controlplane.ManagementGroupFilter{ParentID: &id}, controlplane.FindOptions{Limit: 1})
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return ErrManagementGroupNotEmpty
		}

		subs, err := s.store.ListSubscriptions(ctx, tx, controlplane.SubscriptionFilter{ManagementGroupID: &id}, controlplane.FindOptions{Limit: 1})
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			return ErrManagementGroupNotEmpty
		}

		return s.store.DeleteManagementGroup(ctx, tx, id)
	})
}
