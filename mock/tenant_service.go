package mock

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
)

var _ controlplane.TenantService = (*TenantService)(nil)

// TenantService is a mock implementation of controlplane.TenantService.
type TenantService struct {
	FindTenantByIDFn func(ctx context.Context, id platform.ID) (*controlplane.Tenant, error)
	FindTenantFn     func(ctx context.Context, filter controlplane.TenantFilter) (*controlplane.Tenant, error)
	FindTenantsFn    func(ctx context.Context, filter controlplane.TenantFilter, opt ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error)
	CreateTenantFn   func(ctx context.Context, t *controlplane.Tenant) error
	UpdateTenantFn   func(ctx context.Context, id platform.ID, upd controlplane.TenantUpdate) (*controlplane.Tenant, error)
	DeleteTenantFn   func(ctx context.Context, id platform.ID) error
}

// NewTenantService returns a mock TenantService where all methods return
// zero values.
func NewTenantService() *TenantService {
	return &TenantService{
		FindTenantByIDFn: func(context.Context, platform.ID) (*controlplane.Tenant, error) { return nil, nil },
		FindTenantFn: func(context.Context, controlplane.TenantFilter) (*controlplane.Tenant, error) {
			return nil, nil
		},
		FindTenantsFn: func(context.Context, controlplane.TenantFilter, ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error) {
			return nil, 0, nil
		},
		CreateTenantFn: func(context.Context, *controlplane.Tenant) error { return nil },
		UpdateTenantFn: func(context.Context, platform.ID, controlplane.TenantUpdate) (*controlplane.Tenant, error) {
			return nil, nil
		},
		DeleteTenantFn: func(context.Context, platform.ID) error { return nil },
	}
}

func (s *TenantService) FindTenantByID(ctx context.Context, id platform.ID) (*controlplane.Tenant, error) {
	return s.FindTenantByIDFn(ctx, id)
}

func (s *TenantService) FindTenant(ctx context.Context, filter controlplane.TenantFilter) (*controlplane.Tenant, error) {
	return s.FindTenantFn(ctx, filter)
}

func (s *TenantService) FindTenants(ctx context.Context, filter controlplane.TenantFilter, opt ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error) {
	return s.FindTenantsFn(ctx, filter, opt...)
}

func (s *TenantService) CreateTenant(ctx context.Context, t *controlplane.Tenant) error {
	return s.CreateTenantFn(ctx, t)
}

func (s *TenantService) UpdateTenant(ctx context.Context, id platform.ID, upd controlplane.TenantUpdate) (*controlplane.Tenant, error) {
	return s.UpdateTenantFn(ctx, id, upd)
}

func (s *TenantService) DeleteTenant(ctx context.Context, id platform.ID) error {
	return s.DeleteTenantFn(ctx, id)
}

var _ controlplane.ResourceGroupService = (*ResourceGroupService)(nil)

// ResourceGroupService is a mock implementation of
// controlplane.ResourceGroupService.
type ResourceGroupService struct {
	FindResourceGroupByIDFn func(ctx context.Context, id platform.ID) (*controlplane.ResourceGroup, error)
	FindResourceGroupFn     func(ctx context.Context, filter controlplane.ResourceGroupFilter) (*controlplane.ResourceGroup, error)
	FindResourceGroupsFn    func(ctx context.Context, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) ([]*controlplane.ResourceGroup, int, error)
	CreateResourceGroupFn   func(ctx context.Context, rg *controlplane.ResourceGroup) error
	UpdateResourceGroupFn   func(ctx context.Context, id platform.ID, upd controlplane.ResourceGroupUpdate) (*controlplane.ResourceGroup, error)
	DeleteResourceGroupFn   func(ctx context.Context, id platform.ID) error
}

func (s *ResourceGroupService) FindResourceGroupByID(ctx context.Context, id platform.ID) (*controlplane.ResourceGroup, error) {
	return s.FindResourceGroupByIDFn(ctx, id)
}

func (s *ResourceGroupService) FindResourceGroup(ctx context.Context, filter controlplane.ResourceGroupFilter) (*controlplane.ResourceGroup, error) {
	return s.FindResourceGroupFn(ctx, filter)
}

func (s *ResourceGroupService) FindResourceGroups(ctx context.Context, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) ([]*controlplane.ResourceGroup, int, error) {
	return s.FindResourceGroupsFn(ctx, filter, opt...)
}

func (s *ResourceGroupService) CreateResourceGroup(ctx context.Context, rg *controlplane.ResourceGroup) error {
	return s.CreateResourceGroupFn(ctx, rg)
}

func (s *ResourceGroupService) UpdateResourceGroup(ctx context.Context, id platform.ID, upd controlplane.ResourceGroupUpdate) (*controlplane.ResourceGroup, error) {
	return s.UpdateResourceGroupFn(ctx, id, upd)
}

func (s *ResourceGroupService) DeleteResourceGroup(ctx context.Context, id platform.ID) error {
	return s.DeleteResourceGroupFn(ctx, id)
}
