package http

import (
	"path"
	"testing"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/stretchr/testify/assert"
)

func Test_NormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "entity id",
			path:     path.Join("/api/v1/tenants", platform.ID(2).String()),
			expected: "/api/v1/tenants/:id",
		},
		{
			name:     "collection",
			path:     "/api/v1/tenants",
			expected: "/api/v1/tenants",
		},
		{
			name:     "root",
			path:     "/",
			expected: "/",
		},
		{
			name:     "nested ids",
			path:     path.Join("/api/v1/subscriptions", platform.ID(2).String(), "resourceGroups", "rg-app"),
			expected: "/api/v1/subscriptions/:id/resourceGroups/rg-app",
		},
		{
			name:     "provider resource name",
			path:     "/api/v1/providers/ITL.Compute/virtualMachines/vm-001",
			expected: "/api/v1/providers/ITL.Compute/virtualMachines/:name",
		},
		{
			name:     "provider collection",
			path:     "/api/v1/providers/ITL.Compute/virtualMachines",
			expected: "/api/v1/providers/ITL.Compute/virtualMachines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := NormalizePath(tt.path)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func Test_reportFromCode(t *testing.T) {
	assert.True(t, reportFromCode(200))
	assert.True(t, reportFromCode(204))
	assert.True(t, reportFromCode(500))
	assert.False(t, reportFromCode(404))
	assert.False(t, reportFromCode(301))
}
