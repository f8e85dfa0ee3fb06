package tenant

import (
	"net/http"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

// TenantHandler represents an HTTP API handler for tenants.
type TenantHandler struct {
	chi.Router
	api       *kithttp.API
	log       *zap.Logger
	tenantSvc controlplane.TenantService
}

const prefixTenants = "/api/v1/tenants"

// Prefix returns the mount path of the tenant handler.
func (h *TenantHandler) Prefix() string {
	return prefixTenants
}

// NewHTTPTenantHandler constructs a new http server.
func NewHTTPTenantHandler(log *zap.Logger, tenantSvc controlplane.TenantService) *TenantHandler {
	svr := &TenantHandler{
		api:       kithttp.New(kithttp.WithLog(log)),
		log:       log,
		tenantSvc: tenantSvc,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	)

	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostTenant)
		r.Get("/", svr.handleGetTenants)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetTenant)
			r.Patch("/", svr.handlePatchTenant)
			r.Delete("/", svr.handleDeleteTenant)
		})
	})

	svr.Router = r
	return svr
}

type tenantResponse struct {
	controlplane.Tenant
	Links map[string]string `json:"links"`
}

func newTenantResponse(t *controlplane.Tenant) tenantResponse {
	return tenantResponse{
		Tenant: *t,
		Links: map[string]string{
			"self": prefixTenants + "/" + t.ID.String(),
		},
	}
}

type tenantsResponse struct {
	Links   *controlplane.PagingLinks `json:"links"`
	Tenants []tenantResponse          `json:"tenants"`
}

func newTenantsResponse(opts controlplane.FindOptions, f controlplane.TenantFilter, ts []*controlplane.Tenant) tenantsResponse {
	resp := tenantsResponse{
		Links:   newPagingLinks(prefixTenants, opts, f, len(ts)),
		Tenants: make([]tenantResponse, 0, len(ts)),
	}
	for _, t := range ts {
		resp.Tenants = append(resp.Tenants, newTenantResponse(t))
	}
	return resp
}

type postTenantRequest struct {
	Name          string `json:"name"`
	DisplayName   string `json:"displayName"`
	DefaultDomain string `json:"defaultDomain"`
}

func (req postTenantRequest) OK() error {
	if req.Name == "" {
		return ErrNameisEmpty
	}
	return nil
}

func (h *TenantHandler) handlePostTenant(w http.ResponseWriter, r *http.Request) {
	var req postTenantRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	t := &controlplane.Tenant{
		Name:          req.Name,
		DisplayName:   req.DisplayName,
		DefaultDomain: req.DefaultDomain,
	}
	if err := h.tenantSvc.CreateTenant(r.Context(), t); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("tenant created", zap.String("tenant", t.Name))

	h.api.Respond(w, r, http.StatusCreated, newTenantResponse(t))
}

func (h *TenantHandler) handleGetTenants(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeFindOptions(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var f controlplane.TenantFilter
	if name := r.URL.Query().Get("name"); name != "" {
		f.Name = &name
	}

	ts, _, err := h.tenantSvc.FindTenants(r.Context(), f, opts)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newTenantsResponse(opts, f, ts))
}

func (h *TenantHandler) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	t, err := h.tenantSvc.FindTenantByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newTenantResponse(t))
}

func (h *TenantHandler) handlePatchTenant(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var upd controlplane.TenantUpdate
	if err := h.api.DecodeJSON(r.Body, &upd); err != nil {
		h.api.Err(w, r, err)
		return
	}

	t, err := h.tenantSvc.UpdateTenant(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newTenantResponse(t))
}

func (h *TenantHandler) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.tenantSvc.DeleteTenant(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
