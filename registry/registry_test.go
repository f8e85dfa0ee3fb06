package registry_test

import (
	"context"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/mock"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() controlplane.ResourceRequest {
	return controlplane.ResourceRequest{
		ProviderNamespace: "ITL.Compute",
		ResourceType:      "virtualMachines",
		ResourceName:      "vm-001",
		APIVersion:        "2025-06-01",
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registered provider is returned by Get", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")

		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		got, ok := r.Get("ITL.Compute", "virtualMachines")
		require.True(t, ok)
		require.Same(t, p, got)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")

		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		got, ok := r.Get("itl.compute", "VIRTUALMACHINES")
		require.True(t, ok)
		require.Same(t, p, got)
	})

	t.Run("unregistered pair is absent", func(t *testing.T) {
		r := registry.New()

		got, ok := r.Get("ITL.Compute", "virtualMachines")
		require.False(t, ok)
		require.Nil(t, got)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		r := registry.New()

		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", mock.NewResourceProvider("one")))

		err := r.Register("itl.compute", "VirtualMachines", mock.NewResourceProvider("two"))
		require.Error(t, err)
		assert.Equal(t, errors.EConflict, errors.ErrorCode(err))

		// first registration survives
		got, ok := r.Get("ITL.Compute", "virtualMachines")
		require.True(t, ok)
		assert.Equal(t, "one", got.ResourceProviderKind())
	})

	t.Run("empty namespace is rejected", func(t *testing.T) {
		r := registry.New()

		err := r.Register("", "virtualMachines", mock.NewResourceProvider("compute"))
		require.Error(t, err)
		assert.Equal(t, errors.EEmptyValue, errors.ErrorCode(err))
	})

	t.Run("nil provider is rejected", func(t *testing.T) {
		r := registry.New()

		err := r.Register("ITL.Compute", "virtualMachines", nil)
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})
}

func TestRegistry_List(t *testing.T) {
	r := registry.New()

	require.NoError(t, r.Register("ITL.Storage", "accounts", mock.NewResourceProvider("storage")))
	require.NoError(t, r.Register("ITL.Compute", "virtualMachines", mock.NewResourceProvider("compute")))
	require.NoError(t, r.Register("ITL.Compute", "disks", mock.NewResourceProvider("compute")))

	want := []registry.Registration{
		{Namespace: "ITL.Compute", ResourceType: "disks", Kind: "compute"},
		{Namespace: "ITL.Compute", ResourceType: "virtualMachines", Kind: "compute"},
		{Namespace: "ITL.Storage", ResourceType: "accounts", Kind: "storage"},
	}
	assert.Equal(t, want, r.List())
}

func TestRegistry_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("create returns provider response with a guid", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", mock.NewResourceProvider("compute")))

		resp, err := r.CreateOrUpdate(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "vm-001", resp.Name)
		assert.Equal(t, "ITL.Compute/virtualMachines", resp.Type)
		assert.NotEmpty(t, resp.ResourceGUID)
	})

	t.Run("unknown pair is not found", func(t *testing.T) {
		r := registry.New()

		_, err := r.GetResource(ctx, validRequest())
		require.Error(t, err)
		assert.Equal(t, errors.ENotFound, errors.ErrorCode(err))
	})

	t.Run("invalid request is rejected before lookup", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", mock.NewResourceProvider("compute")))

		req := validRequest()
		req.APIVersion = "latest"

		_, err := r.GetResource(ctx, req)
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	})

	t.Run("provider without the capability is not implemented", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", &mock.KindOnlyProvider{Kind: "compute"}))

		_, err := r.CreateOrUpdate(ctx, validRequest())
		assert.Equal(t, errors.ENotImplemented, errors.ErrorCode(err))

		_, err = r.GetResource(ctx, validRequest())
		assert.Equal(t, errors.ENotImplemented, errors.ErrorCode(err))

		err = r.DeleteResource(ctx, validRequest())
		assert.Equal(t, errors.ENotImplemented, errors.ErrorCode(err))

		_, _, err = r.ListResources(ctx, validRequest())
		assert.Equal(t, errors.ENotImplemented, errors.ErrorCode(err))

		req := validRequest()
		req.Action = "restart"
		_, err = r.ExecuteAction(ctx, req)
		assert.Equal(t, errors.ENotImplemented, errors.ErrorCode(err))
	})

	t.Run("list fills a placeholder resource name", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")

		var gotName string
		p.ListResourcesFn = func(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
			gotName = req.ResourceName
			return nil, "", nil
		}
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		req := validRequest()
		req.ResourceName = ""
		_, _, err := r.ListResources(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "-", gotName)
	})

	t.Run("nil response without error is an internal error", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")
		p.CreateOrUpdateResourceFn = func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
			return nil, nil
		}
		p.GetResourceFn = func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
			return nil, nil
		}
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		_, err := r.CreateOrUpdate(ctx, validRequest())
		require.Error(t, err)
		assert.Equal(t, errors.EInternal, errors.ErrorCode(err))

		_, err = r.GetResource(ctx, validRequest())
		require.Error(t, err)
		assert.Equal(t, errors.EInternal, errors.ErrorCode(err))
	})

	t.Run("list skips nil elements", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")
		p.ListResourcesFn = func(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
			return []*controlplane.ResourceResponse{
				{ID: "/providers/ITL.Compute/virtualMachines/vm-001", Name: "vm-001"},
				nil,
			}, "", nil
		}
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		resps, _, err := r.ListResources(ctx, validRequest())
		require.NoError(t, err)
		require.Len(t, resps, 2)
		assert.NotEmpty(t, resps[0].ResourceGUID)
		assert.Nil(t, resps[1])
	})

	t.Run("action without a name is rejected", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", mock.NewResourceProvider("compute")))

		_, err := r.ExecuteAction(ctx, validRequest())
		require.Error(t, err)
		assert.Equal(t, errors.EEmptyValue, errors.ErrorCode(err))
	})

	t.Run("action may complete without a body", func(t *testing.T) {
		r := registry.New()
		p := mock.NewResourceProvider("compute")
		p.ExecuteActionFn = func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
			return nil, nil
		}
		require.NoError(t, r.Register("ITL.Compute", "virtualMachines", p))

		req := validRequest()
		req.Action = "restart"
		resp, err := r.ExecuteAction(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})
}
