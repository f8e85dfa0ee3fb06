package tenant

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/metric"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/prometheus/client_golang/prometheus"
)

var _ controlplane.TenantService = (*TenantMetrics)(nil)

type TenantMetrics struct {
	// RED metrics
	rec *metric.REDClient

	tenantService controlplane.TenantService
}

// NewTenantMetrics returns a metrics service middleware for the Tenant Service.
func NewTenantMetrics(reg prometheus.Registerer, s controlplane.TenantService, opts ...metric.ClientOptFn) *TenantMetrics {
	return &TenantMetrics{
		rec:           metric.New(reg, "tenant", opts...),
		tenantService: s,
	}
}

func (m *TenantMetrics) FindTenantByID(ctx context.Context, id platform.ID) (*controlplane.Tenant, error) {
	rec := m.rec.Record("find_tenant_by_id")
	t, err := m.tenantService.FindTenantByID(ctx, id)
	return t, rec(err)
}

func (m *TenantMetrics) FindTenant(ctx context.Context, filter controlplane.TenantFilter) (*controlplane.Tenant, error) {
	rec := m.rec.Record("find_tenant")
	t, err := m.tenantService.FindTenant(ctx, filter)
	return t, rec(err)
}

func (m *TenantMetrics) FindTenants(ctx context.Context, filter controlplane.TenantFilter, opt ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error) {
	rec := m.rec.Record("find_tenants")
	ts, n, err := m.tenantService.FindTenants(ctx, filter, opt...)
	return ts, n, rec(err)
}

func (m *TenantMetrics) CreateTenant(ctx context.Context, t *controlplane.Tenant) error {
	rec := m.rec.Record("create_tenant")
	err := m.tenantService.CreateTenant(ctx, t)
	return rec(err)
}

func (m *TenantMetrics) UpdateTenant(ctx context.Context, id platform.ID, upd controlplane.TenantUpdate) (*controlplane.Tenant, error) {
	rec := m.rec.Record("update_tenant")
	t, err := m.tenantService.UpdateTenant(ctx, id, upd)
	return t, rec(err)
}

func (m *TenantMetrics) DeleteTenant(ctx context.Context, id platform.ID) error {
	rec := m.rec.Record("delete_tenant")
	err := m.tenantService.DeleteTenant(ctx, id)
	return rec(err)
}
