package tenant_test

import (
	"context"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/inmem"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration/all"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/mock"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) *tenant.Service {
	t.Helper()

	store := inmem.NewKVStore()
	migrator, err := migration.NewMigrator(zaptest.NewLogger(t), store, all.Migrations[:]...)
	require.NoError(t, err)
	require.NoError(t, migrator.Up(context.Background()))

	st := tenant.NewStore(store)
	st.IDGen = mock.NewIncrementingIDGenerator(1)
	return tenant.NewService(st)
}

func createTenant(t *testing.T, svc *tenant.Service, name string) *controlplane.Tenant {
	t.Helper()

	tn := &controlplane.Tenant{Name: name}
	require.NoError(t, svc.CreateTenant(context.Background(), tn))
	require.True(t, tn.ID.Valid())
	return tn
}

func TestTenantService_Tenants(t *testing.T) {
	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		svc := newTestService(t)

		tn := &controlplane.Tenant{
			Name:          "contoso",
			DisplayName:   "Contoso Ltd",
			DefaultDomain: "contoso.example.com",
		}
		require.NoError(t, svc.CreateTenant(ctx, tn))
		require.False(t, tn.CreatedAt.IsZero())

		got, err := svc.FindTenantByID(ctx, tn.ID)
		require.NoError(t, err)
		assert.Equal(t, tn.Name, got.Name)
		assert.Equal(t, tn.DisplayName, got.DisplayName)

		got, err = svc.FindTenant(ctx, controlplane.TenantFilter{Name: strPtr("contoso")})
		require.NoError(t, err)
		assert.Equal(t, tn.ID, got.ID)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := newTestService(t)
		createTenant(t, svc, "contoso")

		err := svc.CreateTenant(ctx, &controlplane.Tenant{Name: "contoso"})
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})

	t.Run("missing tenant is not found", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.FindTenantByID(ctx, 42)
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("filter requires id or name", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.FindTenant(ctx, controlplane.TenantFilter{})
		assert.Equal(t, controlplane.ErrInvalidTenantFilter, err)
	})

	t.Run("list honors offset and limit", func(t *testing.T) {
		svc := newTestService(t)
		for _, name := range []string{"a", "b", "c", "d"} {
			createTenant(t, svc, name)
		}

		ts, n, err := svc.FindTenants(ctx, controlplane.TenantFilter{}, controlplane.FindOptions{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, ts, 2)
		assert.Equal(t, "b", ts[0].Name)
		assert.Equal(t, "c", ts[1].Name)
	})

	t.Run("update renames and preserves uniqueness", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")
		createTenant(t, svc, "fabrikam")

		_, err := svc.UpdateTenant(ctx, tn.ID, controlplane.TenantUpdate{Name: strPtr("fabrikam")})
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))

		got, err := svc.UpdateTenant(ctx, tn.ID, controlplane.TenantUpdate{
			Name:        strPtr("initech"),
			DisplayName: strPtr("Initech"),
		})
		require.NoError(t, err)
		assert.Equal(t, "initech", got.Name)
		assert.Equal(t, "Initech", got.DisplayName)

		// the old name no longer resolves
		_, err = svc.FindTenant(ctx, controlplane.TenantFilter{Name: strPtr("contoso")})
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("delete refuses while subscriptions exist", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))

		err := svc.DeleteTenant(ctx, tn.ID)
		assert.Equal(t, tenant.ErrTenantNotEmpty, err)

		require.NoError(t, svc.DeleteSubscription(ctx, sub.ID))
		require.NoError(t, svc.DeleteTenant(ctx, tn.ID))

		_, err = svc.FindTenantByID(ctx, tn.ID)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestTenantService_ManagementGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("create under a tenant and nest", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		root := &controlplane.ManagementGroup{TenantID: tn.ID, Name: "platform"}
		require.NoError(t, svc.CreateManagementGroup(ctx, root))

		child := &controlplane.ManagementGroup{TenantID: tn.ID, ParentID: &root.ID, Name: "landing-zones"}
		require.NoError(t, svc.CreateManagementGroup(ctx, child))

		got, err := svc.FindManagementGroupByID(ctx, child.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, root.ID, *got.ParentID)

		mgs, n, err := svc.FindManagementGroups(ctx, controlplane.ManagementGroupFilter{ParentID: &root.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, mgs, 1)
		assert.Equal(t, "landing-zones", mgs[0].Name)
	})

	t.Run("missing parent fails create", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		absent := platformID(999)
		err := svc.CreateManagementGroup(ctx, &controlplane.ManagementGroup{
			TenantID: tn.ID,
			ParentID: &absent,
			Name:     "orphan",
		})
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("delete refuses while children or subscriptions exist", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		root := &controlplane.ManagementGroup{TenantID: tn.ID, Name: "platform"}
		require.NoError(t, svc.CreateManagementGroup(ctx, root))

		child := &controlplane.ManagementGroup{TenantID: tn.ID, ParentID: &root.ID, Name: "child"}
		require.NoError(t, svc.CreateManagementGroup(ctx, child))

		err := svc.DeleteManagementGroup(ctx, root.ID)
		assert.Equal(t, tenant.ErrManagementGroupNotEmpty, err)

		sub := &controlplane.Subscription{TenantID: tn.ID, ManagementGroupID: &child.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))

		err = svc.DeleteManagementGroup(ctx, child.ID)
		assert.Equal(t, tenant.ErrManagementGroupNotEmpty, err)

		require.NoError(t, svc.DeleteSubscription(ctx, sub.ID))
		require.NoError(t, svc.DeleteManagementGroup(ctx, child.ID))
		require.NoError(t, svc.DeleteManagementGroup(ctx, root.ID))
	})
}

func TestTenantService_Subscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults to enabled", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))
		assert.Equal(t, controlplane.SubscriptionEnabled, sub.State)
	})

	t.Run("create requires an existing tenant", func(t *testing.T) {
		svc := newTestService(t)

		err := svc.CreateSubscription(ctx, &controlplane.Subscription{TenantID: 999, Name: "sub-prod"})
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("update moves group and state", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		mg := &controlplane.ManagementGroup{TenantID: tn.ID, Name: "platform"}
		require.NoError(t, svc.CreateManagementGroup(ctx, mg))

		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))

		state := controlplane.SubscriptionDisabled
		got, err := svc.UpdateSubscription(ctx, sub.ID, controlplane.SubscriptionUpdate{
			ManagementGroupID: &mg.ID,
			State:             &state,
		})
		require.NoError(t, err)
		require.NotNil(t, got.ManagementGroupID)
		assert.Equal(t, mg.ID, *got.ManagementGroupID)
		assert.Equal(t, controlplane.SubscriptionDisabled, got.State)

		bogus := controlplane.SubscriptionState("Paused")
		_, err = svc.UpdateSubscription(ctx, sub.ID, controlplane.SubscriptionUpdate{State: &bogus})
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("list filters by tenant and group", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")
		other := createTenant(t, svc, "fabrikam")

		mg := &controlplane.ManagementGroup{TenantID: tn.ID, Name: "platform"}
		require.NoError(t, svc.CreateManagementGroup(ctx, mg))

		require.NoError(t, svc.CreateSubscription(ctx, &controlplane.Subscription{TenantID: tn.ID, ManagementGroupID: &mg.ID, Name: "sub-prod"}))
		require.NoError(t, svc.CreateSubscription(ctx, &controlplane.Subscription{TenantID: tn.ID, Name: "sub-dev"}))
		require.NoError(t, svc.CreateSubscription(ctx, &controlplane.Subscription{TenantID: other.ID, Name: "sub-other"}))

		subs, n, err := svc.FindSubscriptions(ctx, controlplane.SubscriptionFilter{TenantID: &tn.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		subs, n, err = svc.FindSubscriptions(ctx, controlplane.SubscriptionFilter{ManagementGroupID: &mg.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, subs, 1)
		assert.Equal(t, "sub-prod", subs[0].Name)
	})

	t.Run("delete cascades to resource groups", func(t *testing.T) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")

		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))

		rg := &controlplane.ResourceGroup{SubscriptionID: sub.ID, Name: "rg-app", Location: "westeurope"}
		require.NoError(t, svc.CreateResourceGroup(ctx, rg))

		require.NoError(t, svc.DeleteSubscription(ctx, sub.ID))

		_, err := svc.FindResourceGroupByID(ctx, rg.ID)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestTenantService_ResourceGroups(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*tenant.Service, *controlplane.Subscription) {
		svc := newTestService(t)
		tn := createTenant(t, svc, "contoso")
		sub := &controlplane.Subscription{TenantID: tn.ID, Name: "sub-prod"}
		require.NoError(t, svc.CreateSubscription(ctx, sub))
		return svc, sub
	}

	t.Run("create and find by name within subscription", func(t *testing.T) {
		svc, sub := setup(t)

		rg := &controlplane.ResourceGroup{
			SubscriptionID: sub.ID,
			Name:           "rg-app",
			Location:       "westeurope",
			Tags:           map[string]string{"env": "prod"},
		}
		require.NoError(t, svc.CreateResourceGroup(ctx, rg))
		assert.Equal(t, controlplane.ProvisioningSucceeded, rg.ProvisioningState)

		got, err := svc.FindResourceGroup(ctx, controlplane.ResourceGroupFilter{
			SubscriptionID: &sub.ID,
			Name:           strPtr("rg-app"),
		})
		require.NoError(t, err)
		assert.Equal(t, rg.ID, got.ID)
		assert.Equal(t, "westeurope", got.Location)
	})

	t.Run("name is unique per subscription only", func(t *testing.T) {
		svc, sub := setup(t)

		require.NoError(t, svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{
			SubscriptionID: sub.ID, Name: "rg-app", Location: "westeurope",
		}))

		err := svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{
			SubscriptionID: sub.ID, Name: "rg-app", Location: "northeurope",
		})
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))

		tn2 := createTenant(t, svc, "fabrikam")
		sub2 := &controlplane.Subscription{TenantID: tn2.ID, Name: "sub-other"}
		require.NoError(t, svc.CreateSubscription(ctx, sub2))

		// same name under another subscription is fine
		require.NoError(t, svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{
			SubscriptionID: sub2.ID, Name: "rg-app", Location: "westeurope",
		}))
	})

	t.Run("create requires an existing subscription", func(t *testing.T) {
		svc := newTestService(t)

		err := svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{
			SubscriptionID: 999, Name: "rg-app", Location: "westeurope",
		})
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("update replaces tags and state", func(t *testing.T) {
		svc, sub := setup(t)

		rg := &controlplane.ResourceGroup{SubscriptionID: sub.ID, Name: "rg-app", Location: "westeurope"}
		require.NoError(t, svc.CreateResourceGroup(ctx, rg))

		state := controlplane.ProvisioningUpdating
		got, err := svc.UpdateResourceGroup(ctx, rg.ID, controlplane.ResourceGroupUpdate{
			Tags:              map[string]string{"env": "dev"},
			ProvisioningState: &state,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"env": "dev"}, got.Tags)
		assert.Equal(t, controlplane.ProvisioningUpdating, got.ProvisioningState)
	})

	t.Run("list scoped to subscription", func(t *testing.T) {
		svc, sub := setup(t)

		require.NoError(t, svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{SubscriptionID: sub.ID, Name: "rg-a", Location: "westeurope"}))
		require.NoError(t, svc.CreateResourceGroup(ctx, &controlplane.ResourceGroup{SubscriptionID: sub.ID, Name: "rg-b", Location: "westeurope"}))

		rgs, n, err := svc.FindResourceGroups(ctx, controlplane.ResourceGroupFilter{SubscriptionID: &sub.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, rgs, 2)
	})
}

func strPtr(s string) *string { return &s }

func platformID(id uint64) platform.ID { return platform.ID(id) }
