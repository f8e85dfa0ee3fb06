package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
)

// FindSubscriptionByID returns a single subscription by ID.
func (s *Service) FindSubscriptionByID(ctx context.Context, id platform.ID) (*controlplane.Subscription, error) {
	var sub *controlplane.Subscription
	err := s.store.View(ctx, func(tx kv.Tx) error {
		su, err := s.store.GetSubscription(ctx, tx, id)
		if err != nil {
			return err
		}
		sub = su
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sub, nil
}

// FindSubscription returns the first subscription that matches filter.
func (s *Service) FindSubscription(ctx context.Context, filter controlplane.SubscriptionFilter) (*controlplane.Subscription, error) {
	if filter.ID != nil {
		return s.FindSubscriptionByID(ctx, *filter.ID)
	}

	if filter.Name == nil {
		return nil, controlplane.ErrInvalidSubscriptionFilter
	}

	var sub *controlplane.Subscription
	err := s.store.View(ctx, func(tx kv.Tx) error {
		su, err := s.store.GetSubscriptionByName(ctx, tx, *filter.Name)
		if err != nil {
			return err
		}
		sub = su
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sub, nil
}

// FindSubscriptions returns a list of subscriptions that match filter and the
// total count of matching subscriptions.
func (s *Service) FindSubscriptions(ctx context.Context, filter controlplane.SubscriptionFilter, opt ...controlplane.FindOptions) ([]*controlplane.Subscription, int, error) {
	// a filter with an id or name can match at most one subscription
	if filter.ID != nil || filter.Name != nil {
		sub, err := s.FindSubscription(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		return []*controlplane.Subscription{sub}, 1, nil
	}

	var subs []*controlplane.Subscription
	err := s.store.View(ctx, func(tx kv.Tx) error {
		ss, err := s.store.ListSubscriptions(ctx, tx, filter, opt...)
		if err != nil {
			return err
		}
		subs = ss
		return nil
	})

	if err != nil {
		return nil, 0, err
	}

	return subs, len(subs), nil
}

// CreateSubscription creates a new subscription and sets sub.ID with the new
// identifier.
func (s *Service) CreateSubscription(ctx context.Context, sub *controlplane.Subscription) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		return s.store.CreateSubscription(ctx, tx, sub)
	})
}

// UpdateSubscription updates a single subscription with changeset.
// Returns the new subscription state after update.
func (s *Service) UpdateSubscription(ctx context.Context, id platform.ID, upd controlplane.SubscriptionUpdate) (*controlplane.Subscription, error) {
	var sub *controlplane.Subscription
	err := s.store.Update(ctx, func(tx kv.Tx) error {
		su, err := s.store.UpdateSubscription(ctx, tx, id, upd)
		if err != nil {
			return err
		}
		sub = su
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubscription removes a subscription by ID and its dependent resource
// groups.
func (s *Service) DeleteSubscription(ctx context.Context, id platform.ID) error {
	return s.store.Update(ctx, func(tx kv.Tx) error {
		rgs, err := s.store.ListResourceGroups(ctx, tx, controlplane.ResourceGroupFilter{SubscriptionID: &id})
		if err != nil {
			return err
		}

		for _, rg := range rgs {
			if err := s.store.DeleteResourceGroup(ctx, tx, rg.ID); err != nil {
				return err
			}
		}

		return s.store.DeleteSubscription(ctx, tx, id)
	})
}
