package controlplane_test

import (
	"strings"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRequest_OK(t *testing.T) {
	valid := controlplane.ResourceRequest{
		ProviderNamespace: "ITL.Compute",
		ResourceType:      "virtualMachines",
		ResourceName:      "vm-001",
		APIVersion:        "2025-06-01",
	}
	require.NoError(t, valid.OK())

	tests := []struct {
		name     string
		mutate   func(r *controlplane.ResourceRequest)
		wantCode string
	}{
		{
			name:     "missing namespace",
			mutate:   func(r *controlplane.ResourceRequest) { r.ProviderNamespace = "" },
			wantCode: errors.EEmptyValue,
		},
		{
			name:     "missing resource type",
			mutate:   func(r *controlplane.ResourceRequest) { r.ResourceType = "" },
			wantCode: errors.EEmptyValue,
		},
		{
			name:     "missing resource name",
			mutate:   func(r *controlplane.ResourceRequest) { r.ResourceName = "" },
			wantCode: errors.EEmptyValue,
		},
		{
			name: "name too long",
			mutate: func(r *controlplane.ResourceRequest) {
				r.ResourceName = strings.Repeat("a", controlplane.MaxResourceNameLength+1)
			},
			wantCode: errors.EInvalid,
		},
		{
			name:     "missing api version",
			mutate:   func(r *controlplane.ResourceRequest) { r.APIVersion = "" },
			wantCode: errors.EInvalid,
		},
		{
			name:     "api version not date-stamped",
			mutate:   func(r *controlplane.ResourceRequest) { r.APIVersion = "v1" },
			wantCode: errors.EInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.OK()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.ErrorCode(err))
		})
	}
}

func TestResourceRequest_Path(t *testing.T) {
	tests := []struct {
		name string
		req  controlplane.ResourceRequest
		want string
	}{
		{
			name: "tenant-level resource",
			req: controlplane.ResourceRequest{
				ProviderNamespace: "ITL.Core",
				ResourceType:      "managementGroups",
				ResourceName:      "platform",
			},
			want: "/providers/ITL.Core/managementGroups/platform",
		},
		{
			name: "subscription-scoped resource",
			req: controlplane.ResourceRequest{
				SubscriptionID:    "0000000000000001",
				ProviderNamespace: "ITL.Core",
				ResourceType:      "resourceGroups",
				ResourceName:      "rg-dev",
			},
			want: "/subscriptions/0000000000000001/providers/ITL.Core/resourceGroups/rg-dev",
		},
		{
			name: "resource group scoped resource",
			req: controlplane.ResourceRequest{
				SubscriptionID:    "0000000000000001",
				ResourceGroup:     "rg-dev",
				ProviderNamespace: "ITL.Compute",
				ResourceType:      "virtualMachines",
				ResourceName:      "vm-001",
			},
			want: "/subscriptions/0000000000000001/resourceGroups/rg-dev/providers/ITL.Compute/virtualMachines/vm-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Path())
		})
	}
}

func TestResourceResponse_EnsureGUID(t *testing.T) {
	var resp controlplane.ResourceResponse
	resp.EnsureGUID()
	require.NotEmpty(t, resp.ResourceGUID)

	// a set guid is preserved
	guid := resp.ResourceGUID
	resp.EnsureGUID()
	assert.Equal(t, guid, resp.ResourceGUID)
}

func TestProvisioningState_Valid(t *testing.T) {
	for _, s := range []controlplane.ProvisioningState{
		controlplane.ProvisioningSucceeded,
		controlplane.ProvisioningFailed,
		controlplane.ProvisioningCanceled,
		controlplane.ProvisioningCreating,
		controlplane.ProvisioningUpdating,
		controlplane.ProvisioningDeleting,
	} {
		require.NoError(t, s.Valid())
	}

	err := controlplane.ProvisioningState("Paused").Valid()
	require.Error(t, err)
	assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
}
