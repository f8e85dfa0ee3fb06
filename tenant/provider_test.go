package tenant_test

import (
	"context"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*registry.Registry, *tenant.Service) {
	t.Helper()

	svc := newTestService(t)
	reg := registry.New()
	require.NoError(t, tenant.RegisterProviders(reg, "", svc))
	return reg, svc
}

func TestRegisterProviders(t *testing.T) {
	reg, _ := newTestRegistry(t)

	regs := reg.List()
	require.Len(t, regs, 4)
	for i, want := range []string{"managementgroups", "resourcegroups", "subscriptions", "tenants"} {
		assert.Equal(t, "ITL.Core", regs[i].Namespace)
		assert.Equal(t, want, regs[i].ResourceType)
	}

	// registering twice conflicts
	err := tenant.RegisterProviders(reg, "", newTestService(t))
	require.Error(t, err)
	assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
}

func TestTenantProvider(t *testing.T) {
	ctx := context.Background()

	req := func(name string) controlplane.ResourceRequest {
		return controlplane.ResourceRequest{
			ProviderNamespace: "ITL.Core",
			ResourceType:      "tenants",
			ResourceName:      name,
			APIVersion:        "2025-06-01",
		}
	}

	t.Run("put creates then updates in place", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		r := req("contoso")
		r.Body = map[string]interface{}{"displayName": "Contoso Ltd"}

		created, err := reg.CreateOrUpdate(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "/providers/ITL.Core/tenants/contoso", created.ID)
		assert.Equal(t, "Contoso Ltd", created.Properties["displayName"])

		r.Body = map[string]interface{}{"displayName": "Contoso v2"}
		updated, err := reg.CreateOrUpdate(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "Contoso v2", updated.Properties["displayName"])

		// the same resource keeps the same guid across calls
		got, err := reg.GetResource(ctx, req("contoso"))
		require.NoError(t, err)
		assert.Equal(t, created.ResourceGUID, got.ResourceGUID)
	})

	t.Run("get of an absent tenant is not found", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		_, err := reg.GetResource(ctx, req("missing"))
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("delete removes the tenant", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		_, err := reg.CreateOrUpdate(ctx, req("contoso"))
		require.NoError(t, err)

		require.NoError(t, reg.DeleteResource(ctx, req("contoso")))

		_, err = reg.GetResource(ctx, req("contoso"))
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("list pages with a continuation token", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		for _, name := range []string{"a", "b", "c"} {
			_, err := reg.CreateOrUpdate(ctx, req(name))
			require.NoError(t, err)
		}

		listReq := req("")
		resps, token, err := reg.ListResources(ctx, listReq, controlplane.FindOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, resps, 2)
		assert.Equal(t, "2", token)

		resps, token, err = reg.ListResources(ctx, listReq, controlplane.FindOptions{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, resps, 1)
		assert.Empty(t, token)
	})
}

func TestResourceGroupProvider(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*registry.Registry, string) {
		reg, svc := newTestRegistry(t)

		tn := createTenant(t, svc, "contoso")
		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))
		return reg, sub.ID.String()
	}

	req := func(subID, name string) controlplane.ResourceRequest {
		return controlplane.ResourceRequest{
			SubscriptionID:    subID,
			ProviderNamespace: "ITL.Core",
			ResourceType:      "resourcegroups",
			ResourceName:      name,
			APIVersion:        "2025-06-01",
		}
	}

	t.Run("put creates with location and tags", func(t *testing.T) {
		reg, subID := setup(t)

		r := req(subID, "rg-app")
		r.Location = "westeurope"
		r.Body = map[string]interface{}{"tags": map[string]interface{}{"env": "prod"}}

		resp, err := reg.CreateOrUpdate(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "westeurope", resp.Location)
		assert.Equal(t, map[string]string{"env": "prod"}, resp.Tags)
		assert.Equal(t, "/subscriptions/"+subID+"/providers/ITL.Core/resourcegroups/rg-app", resp.ID)
	})

	t.Run("missing subscription scope is invalid", func(t *testing.T) {
		reg, _ := setup(t)

		_, err := reg.GetResource(ctx, req("", "rg-app"))
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("check name availability", func(t *testing.T) {
		reg, subID := setup(t)

		r := req(subID, "rg-app")
		r.Location = "westeurope"
		_, err := reg.CreateOrUpdate(ctx, r)
		require.NoError(t, err)

		taken := req(subID, "rg-app")
		taken.Action = "checkNameAvailability"
		resp, err := reg.ExecuteAction(ctx, taken)
		require.NoError(t, err)
		assert.Equal(t, false, resp.Properties["nameAvailable"])

		free := req(subID, "rg-new")
		free.Action = "checkNameAvailability"
		resp, err = reg.ExecuteAction(ctx, free)
		require.NoError(t, err)
		assert.Equal(t, true, resp.Properties["nameAvailable"])
	})

	t.Run("unknown action is invalid", func(t *testing.T) {
		reg, subID := setup(t)

		r := req(subID, "rg-app")
		r.Action = "restart"
		_, err := reg.ExecuteAction(ctx, r)
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("delete removes the group", func(t *testing.T) {
		reg, subID := setup(t)

		r := req(subID, "rg-app")
		r.Location = "westeurope"
		_, err := reg.CreateOrUpdate(ctx, r)
		require.NoError(t, err)

		require.NoError(t, reg.DeleteResource(ctx, r))

		_, err = reg.GetResource(ctx, req(subID, "rg-app"))
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}
