package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/metric"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/prometheus/client_golang/prometheus"
)

var _ controlplane.ResourceGroupService = (*ResourceGroupMetrics)(nil)

type ResourceGroupMetrics struct {
	// RED metrics
	rec *metric.REDClient

	resourceGroupService controlplane.ResourceGroupService
}

// NewResourceGroupMetrics returns a metrics service middleware for the
// Resource Group Service.
func NewResourceGroupMetrics(reg prometheus.Registerer, s controlplane.ResourceGroupService, opts ...metric.ClientOptFn) *ResourceGroupMetrics {
	return &ResourceGroupMetrics{
		rec:                  metric.New(reg, "resource_group", opts...),
		resourceGroupService: s,
	}
}

func (m *ResourceGroupMetrics) FindResourceGroupByID(ctx context.Context, id platform.ID) (*controlplane.ResourceGroup, error) {
	rec := m.rec.Record("find_resource_group_by_id")
	rg, err := m.resourceGroupService.FindResourceGroupByID(ctx, id)
	return rg, rec(err)
}

func (m *ResourceGroupMetrics) FindResourceGroup(ctx context.Context, filter controlplane.ResourceGroupFilter) (*controlplane.ResourceGroup, error) {
	rec := m.rec.Record("find_resource_group")
	rg, err := m.resourceGroupService.FindResourceGroup(ctx, filter)
	return rg, rec(err)
}

func (m *ResourceGroupMetrics) FindResourceGroups(ctx context.Context, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) ([]*controlplane.ResourceGroup, int, error) {
	rec := m.rec.Record("find_resource_groups")
	rgs, n, err := m.resourceGroupService.FindResourceGroups(ctx, filter, opt...)
	return rgs, n, rec(err)
}

func (m *ResourceGroupMetrics) CreateResourceGroup(ctx context.Context, rg *controlplane.ResourceGroup) error {
	rec := m.rec.Record("create_resource_group")
	err := m.resourceGroupService.CreateResourceGroup(ctx, rg)
	return rec(err)
}

func (m *ResourceGroupMetrics) UpdateResourceGroup(ctx context.Context, id platform.ID, upd controlplane.ResourceGroupUpdate) (*controlplane.ResourceGroup, error) {
	rec := m.rec.Record("update_resource_group")
	rg, err := m.resourceGroupService.UpdateResourceGroup(ctx, id, upd)
	return rg, rec(err)
}

func (m *ResourceGroupMetrics) DeleteResourceGroup(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_resource_group")
	err := m.resourceGroupService.DeleteResourceGroup(ctx, id)
	return rec(err)
}
