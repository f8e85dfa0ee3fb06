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
	tenantBucket = []byte("tenantsv1")
	tenantIndex  = []byte("tenantindexv1")
)

func tenantIndexKey(n string) []byte {
	return []byte(strings.TrimSpace(n))
}

func (s *Store) uniqueTenantName(ctx context.Context, tx kv.Tx, uname string) error {
	key := tenantIndexKey(uname)
	if len(key) == 0 {
		return ErrNameisEmpty
	}

	idx, err := tx.Bucket(tenantIndex)
	if err != nil {
		return ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	// if not found then this is  _unique_.
	if kv.IsNotFound(err) {
		return nil
	}

	// no error means this is not unique
	if err == nil {
		return TenantAlreadyExistsError(uname)
	}

	// any other error is some sort of internal server error
	return ErrInternalServiceError(err)
}

func unmarshalTenant(v []byte) (*controlplane.Tenant, error) {
	t := &controlplane.Tenant{}
	if err := json.Unmarshal(v, t); err != nil {
		return nil, ErrCorruptEntity("tenant", err)
	}

	return t, nil
}

func marshalTenant(t *controlplane.Tenant) ([]byte, error) {
	v, err := json.Marshal(t)
	if err != nil {
		return nil, ErrUnprocessableEntity("tenant", err)
	}

	return v, nil
}

// GetTenant reads a tenant from tx by ID.
func (s *Store) GetTenant(ctx context.Context, tx kv.Tx, id platform.ID) (t *controlplane.Tenant, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindTenantByID))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, InvalidIDError(err)
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return nil, err
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrTenantNotFound
	}

	if err != nil {
		return nil, err
	}

	return unmarshalTenant(v)
}

// GetTenantByName reads a tenant from tx via the name index.
func (s *Store) GetTenantByName(ctx context.Context, tx kv.Tx, n string) (t *controlplane.Tenant, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindTenant))
	}()
	b, err := tx.Bucket(tenantIndex)
	if err != nil {
		return nil, err
	}

	uid, err := b.Get(tenantIndexKey(n))
	if kv.IsNotFound(err) {
		return nil, TenantNotFoundByName(n)
	}

	if err != nil {
		return nil, err
	}

	var id platform.ID
	if err := id.Decode(uid); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetTenant(ctx, tx, id)
}

// ListTenants returns tenants in key order honoring offset/limit.
func (s *Store) ListTenants(ctx context.Context, tx kv.Tx, opt ...controlplane.FindOptions) (ts []*controlplane.Tenant, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpFindTenants))
	}()
	if len(opt) == 0 {
		opt = append(opt, controlplane.FindOptions{})
	}
	o := opt[0]

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return nil, err
	}

	cursor, err := b.ForwardCursor(nil)
	if err != nil {
		return nil, err
	}

	count := 0
	ts = []*controlplane.Tenant{}
	err = kv.WalkCursor(ctx, cursor, func(k, v []byte) (bool, error) {
		if o.Offset != 0 && count < o.Offset {
			count++
			return true, nil
		}
		t, err := unmarshalTenant(v)
		if err != nil {
			return false, err
		}

		ts = append(ts, t)

		if o.Limit != 0 && len(ts) >= o.Limit {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return ts, nil
}

// CreateTenant writes a tenant and its name index entry.
func (s *Store) CreateTenant(ctx context.Context, tx kv.Tx, t *controlplane.Tenant) (err error) {
	defer func() {
		err = errors.ErrInternalServiceError(err, errors.WithErrorOp(controlplane.OpCreateTenant))
	}()
	t.ID, err = s.generateSafeID(ctx, tx, tenantBucket)
	if err != nil {
		return err
	}

	encodedID, err := t.ID.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	if err := s.uniqueTenantName(ctx, tx, t.Name); err != nil {
		return err
	}

	t.SetCreatedAt(s.now())
	t.SetUpdatedAt(s.now())
	idx, err := tx.Bucket(tenantIndex)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return err
	}

	v, err := marshalTenant(t)
	if err != nil {
		return err
	}

	if err := idx.Put(tenantIndexKey(t.Name), encodedID); err != nil {
		return err
	}

	return b.Put(encodedID, v)
}

// UpdateTenant applies upd to the stored tenant and returns the new state.
func (s *Store) UpdateTenant(ctx context.Context, tx kv.Tx, id platform.ID, upd controlplane.TenantUpdate) (t *controlplane.Tenant, retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpUpdateTenant))
	}()
	encodedID, err := id.Encode()
	if err != nil {
		return nil, err
	}

	u, err := s.GetTenant(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	u.SetUpdatedAt(s.now())
	if upd.Name != nil && u.Name != *upd.Name {
		if err := s.uniqueTenantName(ctx, tx, *upd.Name); err != nil {
			return nil, err
		}

		idx, err := tx.Bucket(tenantIndex)
		if err != nil {
			return nil, err
		}

		if err := idx.Delete(tenantIndexKey(u.Name)); err != nil {
			return nil, err
		}

		u.Name = *upd.Name

		if err := idx.Put(tenantIndexKey(*upd.Name), encodedID); err != nil {
			return nil, err
		}
	}

	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}

	if upd.DefaultDomain != nil {
		u.DefaultDomain = *upd.DefaultDomain
	}

	v, err := marshalTenant(u)
	if err != nil {
		return nil, err
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return nil, err
	}
	if err := b.Put(encodedID, v); err != nil {
		return nil, err
	}

	return u, nil
}

// DeleteTenant removes the tenant and its name index entry.
func (s *Store) DeleteTenant(ctx context.Context, tx kv.Tx, id platform.ID) (retErr error) {
	defer func() {
		retErr = errors.ErrInternalServiceError(retErr, errors.WithErrorOp(controlplane.OpDeleteTenant))
	}()
	t, err := s.GetTenant(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return InvalidIDError(err)
	}

	idx, err := tx.Bucket(tenantIndex)
	if err != nil {
		return err
	}

	if err := idx.Delete(tenantIndexKey(t.Name)); err != nil {
		return err
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return err
	}

	return b.Delete(encodedID)
}
