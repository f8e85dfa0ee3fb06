package sqlite

import (
	"context"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicyService(t *testing.T) *PolicyService {
	t.Helper()
	return NewPolicyService(newTestStore(t), mock.NewIncrementingIDGenerator(1))
}

func testRule() map[string]interface{} {
	return map[string]interface{}{
		"if":   map[string]interface{}{"field": "location", "notIn": []interface{}{"westeurope"}},
		"then": map[string]interface{}{"effect": "deny"},
	}
}

func createDefinition(t *testing.T, svc *PolicyService, name string) *controlplane.PolicyDefinition {
	t.Helper()

	pd := &controlplane.PolicyDefinition{
		Name: name,
		Rule: testRule(),
	}
	require.NoError(t, svc.CreatePolicyDefinition(context.Background(), pd))
	return pd
}

func TestPolicyService_CreatePolicyDefinition(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults mode and round-trips the rule", func(t *testing.T) {
		svc := newTestPolicyService(t)

		pd := createDefinition(t, svc, "allowed-locations")
		assert.Equal(t, controlplane.PolicyModeAll, pd.Mode)
		require.True(t, pd.ID.Valid())

		got, err := svc.FindPolicyDefinitionByID(ctx, pd.ID)
		require.NoError(t, err)
		assert.Equal(t, "allowed-locations", got.Name)
		assert.Equal(t, pd.Rule["then"], got.Rule["then"])
	})

	t.Run("missing rule is invalid", func(t *testing.T) {
		svc := newTestPolicyService(t)

		err := svc.CreatePolicyDefinition(ctx, &controlplane.PolicyDefinition{Name: "no-rule"})
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc := newTestPolicyService(t)

		err := svc.CreatePolicyDefinition(ctx, &controlplane.PolicyDefinition{Rule: testRule()})
		require.Error(t, err)
		assert.Equal(t, errors.EEmptyValue, errors.ErrorCode(err))
	})

	t.Run("unknown mode is invalid", func(t *testing.T) {
		svc := newTestPolicyService(t)

		err := svc.CreatePolicyDefinition(ctx, &controlplane.PolicyDefinition{
			Name: "bad-mode",
			Mode: controlplane.PolicyMode("Sampled"),
			Rule: testRule(),
		})
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := newTestPolicyService(t)
		createDefinition(t, svc, "allowed-locations")

		err := svc.CreatePolicyDefinition(ctx, &controlplane.PolicyDefinition{
			Name: "allowed-locations",
			Rule: testRule(),
		})
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))
	})
}

func TestPolicyService_FindPolicyDefinitions(t *testing.T) {
	ctx := context.Background()
	svc := newTestPolicyService(t)

	for _, name := range []string{"b-policy", "a-policy", "c-policy"} {
		createDefinition(t, svc, name)
	}

	pds, n, err := svc.FindPolicyDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "a-policy", pds[0].Name)

	pds, n, err = svc.FindPolicyDefinitions(ctx, controlplane.FindOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pds, 1)
	assert.Equal(t, "b-policy", pds[0].Name)
}

func TestPolicyService_DeletePolicyDefinition(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes the definition", func(t *testing.T) {
		svc := newTestPolicyService(t)
		pd := createDefinition(t, svc, "allowed-locations")

		require.NoError(t, svc.DeletePolicyDefinition(ctx, pd.ID))

		_, err := svc.FindPolicyDefinitionByID(ctx, pd.ID)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("assigned definitions cannot be deleted", func(t *testing.T) {
		svc := newTestPolicyService(t)
		pd := createDefinition(t, svc, "allowed-locations")

		pa := &controlplane.PolicyAssignment{PolicyID: pd.ID, Scope: "/subscriptions/0000000000000001"}
		require.NoError(t, svc.AssignPolicy(ctx, pa))

		err := svc.DeletePolicyDefinition(ctx, pd.ID)
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))

		require.NoError(t, svc.DeletePolicyAssignment(ctx, pa.ID))
		require.NoError(t, svc.DeletePolicyDefinition(ctx, pd.ID))
	})

	t.Run("missing definition is not found", func(t *testing.T) {
		svc := newTestPolicyService(t)

		err := svc.DeletePolicyDefinition(ctx, 42)
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})
}

func TestPolicyService_AssignPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment requires an existing definition", func(t *testing.T) {
		svc := newTestPolicyService(t)

		err := svc.AssignPolicy(ctx, &controlplane.PolicyAssignment{
			PolicyID: 42,
			Scope:    "/subscriptions/0000000000000001",
		})
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("empty scope is rejected", func(t *testing.T) {
		svc := newTestPolicyService(t)
		pd := createDefinition(t, svc, "allowed-locations")

		err := svc.AssignPolicy(ctx, &controlplane.PolicyAssignment{PolicyID: pd.ID})
		require.Error(t, err)
		assert.Equal(t, errors.EEmptyValue, errors.ErrorCode(err))
	})
}

func TestPolicyService_FindPolicyAssignments(t *testing.T) {
	ctx := context.Background()
	svc := newTestPolicyService(t)
	pd := createDefinition(t, svc, "allowed-locations")

	assign := func(scope string) *controlplane.PolicyAssignment {
		pa := &controlplane.PolicyAssignment{PolicyID: pd.ID, Scope: scope}
		require.NoError(t, svc.AssignPolicy(ctx, pa))
		return pa
	}

	subScope := "/subscriptions/0000000000000001"
	rgScope := subScope + "/resourceGroups/rg-app"
	assign(subScope)
	assign(rgScope)
	assign("/subscriptions/0000000000000002")

	t.Run("resource path collects ancestors root-down", func(t *testing.T) {
		pas, err := svc.FindPolicyAssignments(ctx, rgScope+"/providers/ITL.Compute/virtualMachines/vm-001")
		require.NoError(t, err)
		require.Len(t, pas, 2)
		assert.Equal(t, subScope, pas[0].Scope)
		assert.Equal(t, rgScope, pas[1].Scope)
	})

	t.Run("exact scope matches itself", func(t *testing.T) {
		pas, err := svc.FindPolicyAssignments(ctx, subScope)
		require.NoError(t, err)
		require.Len(t, pas, 1)
		assert.Equal(t, subScope, pas[0].Scope)
	})

	t.Run("trailing slash is normalized", func(t *testing.T) {
		pas, err := svc.FindPolicyAssignments(ctx, subScope+"/")
		require.NoError(t, err)
		require.Len(t, pas, 1)
	})

	t.Run("sibling prefixes do not leak", func(t *testing.T) {
		// scope /subscriptions/...01 must not match /subscriptions/...012
		pas, err := svc.FindPolicyAssignments(ctx, subScope+"2")
		require.NoError(t, err)
		require.Len(t, pas, 0)
	})

	t.Run("unrelated path matches nothing", func(t *testing.T) {
		pas, err := svc.FindPolicyAssignments(ctx, "/subscriptions/00000000000000ff")
		require.NoError(t, err)
		assert.Empty(t, pas)
	})
}

func TestPolicyService_DeletePolicyAssignment(t *testing.T) {
	ctx := context.Background()
	svc := newTestPolicyService(t)

	err := svc.DeletePolicyAssignment(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
}
