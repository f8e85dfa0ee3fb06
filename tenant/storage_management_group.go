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
	managementGroupBucket = []byte("managementgroupsv1")
	managementGroupIndex  = []byte("managementgroupindexv1")
)

func managementGroupIndexKey(n string) []byte {
	return []byte(strings.TrimSpace(n))
}

func (s *Store) uniqueManagementGroupName(ctx context.Context, tx kv.Tx, uname string) error {
	key := managementGroupIndexKey(uname)
	if len(key) == 0 {
		return ErrNameisEmpty
	}

	idx, err := tx.Bucket(managementGroupIndex)
	if err != nil {
		return ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	if kv.IsNotFound(err) {
		return nil
	}

	if err == nil {
		return ManagementGroupAlreadyExistsError(uname)
	}

	return ErrInternalServiceError(err)
}

func unmarshalManagementGroup(v []byte) (*controlplane.ManagementGroup, error) {
	mg := &controlplane.ManagementGroup{}
	if err := json.Unmarshal(v, mg); err != nil {
		return nil, ErrCorruptEntity("management group", err)
	}

	return mg, nil
}

func marshalManagementGroup(mg *controlplane.ManagementGroup) ([]byte, error) {
	v, err := json.Marshal(mg)
	if err != nil {
		return nil, ErrUnprocessableEntity("management group", err)
	}

	return v, nil
}

// GetManagementGroup reads a management group from tx by ID.
func (s *Store) GetManagementGroup(ctx context.Context, tx kv.Tx, id platform.ID) (mg *controlplane.ManagementGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindManagementGroupByID))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, InvalidIDError(err)
	}

	b, err := tx.Bucket(managementGroupBucket)
	if err != nil {
		return nil, err
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrManagementGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	return unmarshalManagementGroup(v)
}

// ListManagementGroups returns groups matching filter in key order honoring
// offset/limit.
func (s *Store) ListManagementGroups(ctx context.Context, tx kv.Tx, filter controlplane.ManagementGroupFilter, opt ...controlplane.FindOptions) (mgs []*controlplane.ManagementGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindManagementGroups))
	}()
	if len(opt) == 0 {
		opt = append(opt, controlplane.FindOptions{})
	}
	o := opt[0]

	b, err := tx.Bucket(managementGroupBucket)
	if err != nil {
		return nil, err
	}

	cursor, err := b.ForwardCursor(nil)
	if err != nil {
		return nil, err
	}

	matches := func(mg *controlplane.ManagementGroup) bool {
		if filter.Name != nil && mg.Name != *filter.Name {
			return false
		}
		if filter.TenantID != nil && mg.TenantID != *filter.TenantID {
			return false
		}
		if filter.ParentID != nil && (mg.ParentID == nil || *mg.ParentID != *filter.ParentID) {
			return false
		}
		return true
	}

	count := 0
	mgs = []*controlplane.ManagementGroup{}
	err = kv.WalkCursor(ctx, cursor, func(k, v []byte) (bool, error) {
		mg, err := unmarshalManagementGroup(v)
		if err != nil {
			return false, err
		}

		if !matches(mg) {
			return true, nil
		}

		if o.Offset != 0 && count < o.Offset {
			count++
			return true, nil
		}

		mgs = append(mgs, mg)

		if o.Limit != 0 && len(mgs) >= o.Limit {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return mgs, nil
}

// CreateManagementGroup writes a group and its name index entry.
// The owning tenant and the parent group, when set, must exist.
func (s *Store) CreateManagementGroup(ctx context.Context, tx kv.Tx, mg *controlplane.ManagementGroup) (err error) {
	defer func() {
		err = errors.ErrInternalServiceError(err, errors.WithErrorOp(controlplane.OpCreateManagementGroup))
	}()
	if _, err := s.GetTenant(ctx, tx, mg.TenantID); err != nil {
		return err
	}

	if mg.ParentID != nil {
		if _, err := s.GetManagementGroup(ctx, tx, *mg.ParentID); err != nil {
			return err
		}
	}

	mg.ID, err = s.generateSafeID(ctx, tx, managementGroupBucket)
	if err != nil {
		return err
	}

	encodedID, err := mg.ID.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	if err := s.uniqueManagementGroupName(ctx, tx, mg.Name); err != nil {
		return err
	}

	mg.SetCreatedAt(s.now())
	mg.SetUpdatedAt(s.now())

	idx, err := tx.Bucket(managementGroupIndex)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(managementGroupBucket)
	if err != nil {
		return err
	}

	v, err := marshalManagementGroup(mg)
	if err != nil {
		return err
	}

	if err := idx.Put(managementGroupIndexKey(mg.Name), encodedID); err != nil {
		return err
	}

	return b.Put(encodedID, v)
}

// UpdateManagementGroup applies upd to the stored group and returns the new state.
func (s *Store) UpdateManagementGroup(ctx context.Context, tx kv.Tx, id platform.ID, upd controlplane.ManagementGroupUpdate) (mg *controlplane.ManagementGroup, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpUpdateManagementGroup))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, err
	}

	u, err := s.GetManagementGroup(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	u.SetUpdatedAt(s.now())

	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}

	if upd.ParentID != nil {
		if _, err := s.GetManagementGroup(ctx, tx, *upd.ParentID); err != nil {
			return nil, err
		}
		u.ParentID = upd.ParentID
	}

	v, err := marshalManagementGroup(u)
	if err != nil {
		return nil, err
	}

	b, err := tx.Bucket(managementGroupBucket)
	if err != nil {
		return nil, err
	}
	if err := b.Put(encodedID, v); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteManagementGroup removes the group and its name index entry.
func (s *Store) DeleteManagementGroup(ctx context.Context, tx kv.Tx, id platform.ID) (retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpDeleteManagementGroup))
	}()
	mg, err := s.GetManagementGroup(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	idx, err := tx.Bucket(managementGroupIndex)
	if err != nil {
		return err
	}

	if err := idx.Delete(managementGroupIndexKey(mg.Name)); err != nil {
		return err
	}

	b, err := tx.Bucket(managementGroupBucket)
	if err != nil {
		return err
	}

	return b.Delete(encodedID)
}
