package tenant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/mock"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTenantHandler_Prefix(t *testing.T) {
	h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), mock.NewTenantService())
	assert.Equal(t, "/api/v1/tenants", h.Prefix())
}

func TestTenantHandler_PostTenant(t *testing.T) {
	t.Run("creates and responds 201", func(t *testing.T) {
		svc := mock.NewTenantService()
		svc.CreateTenantFn = func(ctx context.Context, tn *controlplane.Tenant) error {
			tn.ID = 1
			return nil
		}
		h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "contoso", "displayName": "Contoso Ltd"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			controlplane.Tenant
			Links map[string]string `json:"links"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "contoso", resp.Name)
		assert.Equal(t, "/api/v1/tenants/0000000000000001", resp.Links["self"])
	})

	t.Run("missing name responds 400", func(t *testing.T) {
		h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), mock.NewTenantService())

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"displayName": "Contoso Ltd"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenantHandler_GetTenant(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := mock.NewTenantService()
		svc.FindTenantByIDFn = func(ctx context.Context, id platform.ID) (*controlplane.Tenant, error) {
			return &controlplane.Tenant{ID: id, Name: "contoso"}, nil
		}
		h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

		r := httptest.NewRequest(http.MethodGet, "/0000000000000001", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			controlplane.Tenant
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "contoso", resp.Name)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := mock.NewTenantService()
		svc.FindTenantByIDFn = func(ctx context.Context, id platform.ID) (*controlplane.Tenant, error) {
			return nil, tenant.ErrTenantNotFound
		}
		h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

		r := httptest.NewRequest(http.MethodGet, "/0000000000000001", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id responds 400", func(t *testing.T) {
		h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), mock.NewTenantService())

		r := httptest.NewRequest(http.MethodGet, "/not-an-id", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenantHandler_GetTenants(t *testing.T) {
	svc := mock.NewTenantService()
	var gotFilter controlplane.TenantFilter
	var gotOpts controlplane.FindOptions
	svc.FindTenantsFn = func(ctx context.Context, f controlplane.TenantFilter, opts ...controlplane.FindOptions) ([]*controlplane.Tenant, int, error) {
		gotFilter = f
		gotOpts = opts[0]
		return []*controlplane.Tenant{
			{ID: 1, Name: "contoso"},
			{ID: 2, Name: "fabrikam"},
		}, 2, nil
	}
	h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

	r := httptest.NewRequest(http.MethodGet, "/?name=contoso&limit=2&offset=2", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotFilter.Name)
	assert.Equal(t, "contoso", *gotFilter.Name)
	assert.Equal(t, 2, gotOpts.Limit)
	assert.Equal(t, 2, gotOpts.Offset)

	var resp struct {
		Links struct {
			Prev string `json:"prev"`
			Self string `json:"self"`
			Next string `json:"next"`
		} `json:"links"`
		Tenants []struct {
			Name string `json:"name"`
		} `json:"tenants"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Tenants, 2)
	assert.NotEmpty(t, resp.Links.Self)
	assert.NotEmpty(t, resp.Links.Prev)
	assert.NotEmpty(t, resp.Links.Next)
}

func TestTenantHandler_PatchTenant(t *testing.T) {
	svc := mock.NewTenantService()
	svc.UpdateTenantFn = func(ctx context.Context, id platform.ID, upd controlplane.TenantUpdate) (*controlplane.Tenant, error) {
		require.NotNil(t, upd.DisplayName)
		return &controlplane.Tenant{ID: id, Name: "contoso", DisplayName: *upd.DisplayName}, nil
	}
	h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

	r := httptest.NewRequest(http.MethodPatch, "/0000000000000001", strings.NewReader(`{"displayName": "Contoso v2"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DisplayName string `json:"displayName"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Contoso v2", resp.DisplayName)
}

func TestTenantHandler_DeleteTenant(t *testing.T) {
	svc := mock.NewTenantService()
	var deleted platform.ID
	svc.DeleteTenantFn = func(ctx context.Context, id platform.ID) error {
		deleted = id
		return nil
	}
	h := tenant.NewHTTPTenantHandler(zaptest.NewLogger(t), svc)

	r := httptest.NewRequest(http.MethodDelete, "/0000000000000001", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, platform.ID(1), deleted)
}
