package tenant

import (
	"context"
	"encoding/json"
	"strings"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
)

var (
	subscriptionBucket = []byte("subscriptionsv1")
	subscriptionIndex  = []byte("subscriptionindexv1")
)

func subscriptionIndexKey(n string) []byte {
	return []byte(strings.TrimSpace(n))
}

func (s *Store) uniqueSubscriptionName(ctx context.Context, tx kv.Tx, uname string) error {
	key := subscriptionIndexKey(uname)
	if len(key) == 0 {
		return ErrNameisEmpty
	}

	idx, err := tx.Bucket(subscriptionIndex)
	if err != nil {
		return ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	if kv.IsNotFound(err) {
		return nil
	}

	if err == nil {
		return SubscriptionAlreadyExistsError(uname)
	}

	return ErrInternalServiceError(err)
}

func unmarshalSubscription(v []byte) (*controlplane.Subscription, error) {
	sub := &controlplane.Subscription{}
	if err := json.Unmarshal(v, sub); err != nil {
		return nil, ErrCorruptEntity("subscription", err)
	}

	return sub, nil
}

func marshalSubscription(sub *controlplane.Subscription) ([]byte, error) {
	v, err := json.Marshal(sub)
	if err != nil {
		return nil, ErrUnprocessableEntity("subscription", err)
	}

	return v, nil
}

// GetSubscription reads a subscription from tx by ID.
func (s *Store) GetSubscription(ctx context.Context, tx kv.Tx, id platform.ID) (sub *controlplane.Subscription, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindSubscriptionByID))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, InvalidIDError(err)
	}

	b, err := tx.Bucket(subscriptionBucket)
	if err != nil {
		return nil, err
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrSubscriptionNotFound
	}

	if err != nil {
		return nil, err
	}

	return unmarshalSubscription(v)
}

// GetSubscriptionByName reads a subscription from tx via the name index.
func (s *Store) GetSubscriptionByName(ctx context.Context, tx kv.Tx, n string) (sub *controlplane.Subscription, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindSubscription))
	}()
	b, err := tx.Bucket(subscriptionIndex)
	if err != nil {
		return nil, err
	}

	uid, err := b.Get(subscriptionIndexKey(n))
	if kv.IsNotFound(err) {
		return nil, SubscriptionNotFoundByName(n)
	}

	if err != nil {
		return nil, err
	}

	var id platform.ID
	if err := id.Decode(uid); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetSubscription(ctx, tx, id)
}

// ListSubscriptions returns subscriptions matching filter in key order
// honoring offset/limit.
func (s *Store) ListSubscriptions(ctx context.Context, tx kv.Tx, filter controlplane.SubscriptionFilter, opt ...controlplane.FindOptions) (subs []*controlplane.Subscription, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindSubscriptions))
	}()
	if len(opt) == 0 {
		opt = append(opt, controlplane.FindOptions{})
	}
	o := opt[0]

	b, err := tx.Bucket(subscriptionBucket)
	if err != nil {
		return nil, err
	}

	cursor, err := b.ForwardCursor(nil)
	if err != nil {
		return nil, err
	}

	matches := func(sub *controlplane.Subscription) bool {
		if filter.Name != nil && sub.Name != *filter.Name {
			return false
		}
		if filter.TenantID != nil && sub.TenantID != *filter.TenantID {
			return false
		}
		if filter.ManagementGroupID != nil && (sub.ManagementGroupID == nil || *sub.ManagementGroupID != *filter.ManagementGroupID) {
			return false
		}
		return true
	}

	count := 0
	subs = []*controlplane.Subscription{}
	err = kv.WalkCursor(ctx, cursor, func(k, v []byte) (bool, error) {
		sub, err := unmarshalSubscription(v)
		if err != nil {
			return false, err
		}

		if !matches(sub) {
			return true, nil
		}

		if o.Offset != 0 && count < o.Offset {
			count++
			return true, nil
		}

		subs = append(subs, sub)

		if o.Limit != 0 && len(subs) >= o.Limit {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return subs, nil
}

// CreateSubscription writes a subscription and its name index entry.
// The owning tenant and the management group, when set, must exist.
func (s *Store) CreateSubscription(ctx context.Context, tx kv.Tx, sub *controlplane.Subscription) (err error) {
	defer func() {
		err = errors.ErrInternalServiceError(err, errors.WithErrorOp(controlplane.OpCreateSubscription))
	}()
	if _, err := s.GetTenant(ctx, tx, sub.TenantID); err != nil {
		return err
	}

	if sub.ManagementGroupID != nil {
		if _, err := s.GetManagementGroup(ctx, tx, *sub.ManagementGroupID); err != nil {
			return err
		}
	}

	if sub.State == "" {
		sub.State = controlplane.SubscriptionEnabled
	}
	if err := sub.State.Valid(); err != nil {
		return err
	}

	sub.ID, err = s.generateSafeID(ctx, tx, subscriptionBucket)
	if err != nil {
		return err
	}

	encodedID, err := sub.ID.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	if err := s.uniqueSubscriptionName(ctx, tx, sub.Name); err != nil {
		return err
	}

	sub.SetCreatedAt(s.now())
	sub.SetUpdatedAt(s.now())

	idx, err := tx.Bucket(subscriptionIndex)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(subscriptionBucket)
	if err != nil {
		return err
	}

	v, err := marshalSubscription(sub)
	if err != nil {
		return err
	}

	if err := idx.Put(subscriptionIndexKey(sub.Name), encodedID); err != nil {
		return err
	}

	return b.Put(encodedID, v)
}

// UpdateSubscription applies upd to the stored subscription and returns the
// new state.
func (s *Store) UpdateSubscription(ctx context.Context, tx kv.Tx, id platform.ID, upd controlplane.SubscriptionUpdate) (sub *controlplane.Subscription, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpUpdateSubscription))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, err
	}

	u, err := s.GetSubscription(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	u.SetUpdatedAt(s.now())

	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}

	if upd.ManagementGroupID != nil {
		if _, err := s.GetManagementGroup(ctx, tx, *upd.ManagementGroupID); err != nil {
			return nil, err
		}
		u.ManagementGroupID = upd.ManagementGroupID
	}

	if upd.State != nil {
		if err := upd.State.Valid(); err != nil {
			return nil, err
		}
		u.State = *upd.State
	}

	v, err := marshalSubscription(u)
	if err != nil {
		return nil, err
	}

	b, err := tx.Bucket(subscriptionBucket)
	if err != nil {
		return nil, err
	}
	if err := b.Put(encodedID, v); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteSubscription removes the subscription and its name index entry.
func (s *Store) DeleteSubscription(ctx context.Context, tx kv.Tx, id platform.ID) (retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpDeleteSubscription))
	}()
	sub, err := s.GetSubscription(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	idx, err := tx.Bucket(subscriptionIndex)
	if err != nil {
		return err
	}

	if err := idx.Delete(subscriptionIndexKey(sub.Name)); err != nil {
		return err
	}

	b, err := tx.Bucket(subscriptionBucket)
	if err != nil {
		return err
	}

	return b.Delete(encodedID)
}
