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
	resourceGroupBucket = []byte("resourcegroupsv1")
	resourceGroupIndex  = []byte("resourcegroupindexv1")
)

// resourceGroupIndexKey scopes names per subscription, so the same group name
// can exist under different subscriptions.
func resourceGroupIndexKey(subID platform.ID, n string) ([]byte, error) {
	encodedID, err := subID.Encode()
	if err != nil {
		return nil, InvalidIDError(err)
	}
	return append(append(encodedID, '/'), strings.TrimSpace(n)...), nil
}

func (s *Store) uniqueResourceGroupName(ctx context.Context, tx kv.Tx, subID platform.ID, uname string) error {
	if strings.TrimSpace(uname) == "" {
		return ErrNameisEmpty
	}

	key, err := resourceGroupIndexKey(subID, uname)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(resourceGroupIndex)
	if err != nil {
		return ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	if kv.IsNotFound(err) {
		return nil
	}

	if err == nil {
		return ResourceGroupAlreadyExistsError(uname)
	}

	return ErrInternalServiceError(err)
}

func unmarshalResourceGroup(v []byte) (*controlplane.ResourceGroup, error) {
	rg := &controlplane.ResourceGroup{}
	if err := json.Unmarshal(v, rg); err != nil {
		return nil, ErrCorruptEntity("resource group", err)
	}

	return rg, nil
}

func marshalResourceGroup(rg *controlplane.ResourceGroup) ([]byte, error) {
	v, err := json.Marshal(rg)
	if err != nil {
		return nil, ErrUnprocessableEntity("resource group", err)
	}

	return v, nil
}

// GetResourceGroup reads a resource group from tx by ID.
func (s *Store) GetResourceGroup(ctx context.Context, tx kv.Tx, id platform.ID) (rg *controlplane.ResourceGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindResourceGroupByID))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, InvalidIDError(err)
	}

	b, err := tx.Bucket(resourceGroupBucket)
	if err != nil {
		return nil, err
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrResourceGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	return unmarshalResourceGroup(v)
}

// GetResourceGroupByName reads a resource group from tx via the
// per-subscription name index.
func (s *Store) GetResourceGroupByName(ctx context.Context, tx kv.Tx, subID platform.ID, n string) (rg *controlplane.ResourceGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindResourceGroup))
	}()
	key, err := resourceGroupIndexKey(subID, n)
	if err != nil {
		return nil, err
	}

	b, err := tx.Bucket(resourceGroupIndex)
	if err != nil {
		return nil, err
	}

	uid, err := b.Get(key)
	if kv.IsNotFound(err) {
		return nil, ErrResourceGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	var id platform.ID
	if err := id.Decode(uid); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetResourceGroup(ctx, tx, id)
}

// ListResourceGroups returns groups matching filter in key order honoring
// offset/limit.
func (s *Store) ListResourceGroups(ctx context.Context, tx kv.Tx, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) (rgs []*controlplane.ResourceGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindResourceGroups))
	}()
	if len(opt) == 0 {
		opt = append(opt, controlplane.FindOptions{})
	}
	o := opt[0]

	b, err := tx.Bucket(resourceGroupBucket)
	if err != nil {
		return nil, err
	}

	cursor, err := b.ForwardCursor(nil)
	if err != nil {
		return nil, err
	}

	matches := func(rg *controlplane.ResourceGroup) bool {
		if filter.Name != nil && rg.Name != *filter.Name {
			return false
		}
		if filter.SubscriptionID != nil && rg.SubscriptionID != *filter.SubscriptionID {
			return false
		}
		return true
	}

	count := 0
	rgs = []*controlplane.ResourceGroup{}
	err = kv.WalkCursor(ctx, cursor, func(k, v []byte) (bool, error) {
		rg, err := unmarshalResourceGroup(v)
		if err != nil {
			return false, err
		}

		if !matches(rg) {
			return true, nil
		}

		if o.Offset != 0 && count < o.Offset {
			count++
			return true, nil
		}

		rgs = append(rgs, rg)

		if o.Limit != 0 && len(rgs) >= o.Limit {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return rgs, nil
}

// CreateResourceGroup writes a resource group and its index entry.
// The owning subscription must exist.
func (s *Store) CreateResourceGroup(ctx context.Context, tx kv.Tx, rg *controlplane.ResourceGroup) (err error) {
	defer func() {
		err = errors.ErrInternalServiceError(err, errors.WithErrorOp(controlplane.OpCreateResourceGroup))
	}()
	if _, err := s.GetSubscription(ctx, tx, rg.SubscriptionID); err != nil {
		return err
	}

	if err := s.uniqueResourceGroupName(ctx, tx, rg.SubscriptionID, rg.Name); err != nil {
		return err
	}

	if rg.ProvisioningState == "" {
		rg.ProvisioningState = controlplane.ProvisioningSucceeded
	}
	if err := rg.ProvisioningState.Valid(); err != nil {
		return err
	}

	rg.ID, err = s.generateSafeID(ctx, tx, resourceGroupBucket)
	if err != nil {
		return err
	}

	encodedID, err := rg.ID.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	rg.SetCreatedAt(s.now())
	rg.SetUpdatedAt(s.now())

	key, err := resourceGroupIndexKey(rg.SubscriptionID, rg.Name)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(resourceGroupIndex)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(resourceGroupBucket)
	if err != nil {
		return err
	}

	v, err := marshalResourceGroup(rg)
	if err != nil {
		return err
	}

	if err := idx.Put(key, encodedID); err != nil {
		return err
	}

	return b.Put(encodedID, v)
}

// UpdateResourceGroup applies upd to the stored group and returns the new state.
func (s *Store) UpdateResourceGroup(ctx context.Context, tx kv.Tx, id platform.ID, upd controlplane.ResourceGroupUpdate) (rg *controlplane.ResourceGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpUpdateResourceGroup))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, err
	}

	u, err := s.GetResourceGroup(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	u.SetUpdatedAt(s.now())

	if upd.Tags != nil {
		u.Tags = upd.Tags
	}

	if upd.ProvisioningState != nil {
		if err := upd.ProvisioningState.Valid(); err != nil {
			return nil, err
		}
		u.ProvisioningState = *upd.ProvisioningState
	}

	v, err := marshalResourceGroup(u)
	if err != nil {
		return nil, err
	}

	b, err := tx.Bucket(resourceGroupBucket)
	if err != nil {
		return nil, err
	}
	if err := b.Put(encodedID, v); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteResourceGroup removes the group and its index entry.
func (s *Store) DeleteResourceGroup(ctx context.Context, tx kv.Tx, id platform.ID) (retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpDeleteResourceGroup))
	}()
	rg, err := s.GetResourceGroup(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	key, err := resourceGroupIndexKey(rg.SubscriptionID, rg.Name)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(resourceGroupIndex)
	if err != nil {
		return err
	}

	if err := idx.Delete(key); err != nil {
		return err
	}

	b, err := tx.Bucket(resourceGroupBucket)
	if err != nil {
		return err
	}

	return b.Delete(encodedID)
}
