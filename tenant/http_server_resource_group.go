package tenant

import (
	"net/http"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

// ResourceGroupHandler represents an HTTP API handler for resource groups.
type ResourceGroupHandler struct {
	chi.Router
	api   *kithttp.API
	log   *zap.Logger
	rgSvc controlplane.ResourceGroupService
}

const prefixResourceGroups = "/api/v1/resourceGroups"

// Prefix returns the mount path of the resource group handler.
func (h *ResourceGroupHandler) Prefix() string {
	return prefixResourceGroups
}

// NewHTTPResourceGroupHandler constructs a new http server.
func NewHTTPResourceGroupHandler(log *zap.Logger, rgSvc controlplane.ResourceGroupService) *ResourceGroupHandler {
	svr := &ResourceGroupHandler{
		api:   kithttp.New(kithttp.WithLog(log)),
		log:   log,
		rgSvc: rgSvc,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	)

	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostResourceGroup)
		r.Get("/", svr.handleGetResourceGroups)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetResourceGroup)
			r.Patch("/", svr.handlePatchResourceGroup)
			r.Delete("/", svr.handleDeleteResourceGroup)
		})
	})

	svr.Router = r
	return svr
}

type resourceGroupResponse struct {
	controlplane.ResourceGroup
	Links map[string]string `json:"links"`
}

func newResourceGroupResponse(rg *controlplane.ResourceGroup) resourceGroupResponse {
	return resourceGroupResponse{
		ResourceGroup: *rg,
		Links: map[string]string{
			"self":         prefixResourceGroups + "/" + rg.ID.String(),
			"subscription": prefixSubscriptions + "/" + rg.SubscriptionID.String(),
		},
	}
}

type resourceGroupsResponse struct {
	Links          *controlplane.PagingLinks `json:"links"`
	ResourceGroups []resourceGroupResponse   `json:"resourceGroups"`
}

func newResourceGroupsResponse(opts controlplane.FindOptions, f controlplane.ResourceGroupFilter, rgs []*controlplane.ResourceGroup) resourceGroupsResponse {
	resp := resourceGroupsResponse{
		Links:          newPagingLinks(prefixResourceGroups, opts, f, len(rgs)),
		ResourceGroups: make([]resourceGroupResponse, 0, len(rgs)),
	}
	for _, rg := range rgs {
		resp.ResourceGroups = append(resp.ResourceGroups, newResourceGroupResponse(rg))
	}
	return resp
}

type postResourceGroupRequest struct {
	SubscriptionID platform.ID       `json:"subscriptionId"`
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	Tags           map[string]string `json:"tags"`
}

func (req postResourceGroupRequest) OK() error {
	if req.Name == "" {
		return ErrNameisEmpty
	}
	if !req.SubscriptionID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "subscriptionId is required",
		}
	}
	if req.Location == "" {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "location is required",
		}
	}
	return nil
}

func (h *ResourceGroupHandler) handlePostResourceGroup(w http.ResponseWriter, r *http.Request) {
	var req postResourceGroupRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	rg := &controlplane.ResourceGroup{
		SubscriptionID: req.SubscriptionID,
		Name:           req.Name,
		Location:       req.Location,
		Tags:           req.Tags,
	}
	if err := h.rgSvc.CreateResourceGroup(r.Context(), rg); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("resource group created", zap.String("resourceGroup", rg.Name))

	h.api.Respond(w, r, http.StatusCreated, newResourceGroupResponse(rg))
}

func (h *ResourceGroupHandler) handleGetResourceGroups(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeFindOptions(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var f controlplane.ResourceGroupFilter
	qp := r.URL.Query()
	if name := qp.Get("name"); name != "" {
		f.Name = &name
	}
	if raw := qp.Get("subscriptionID"); raw != "" {
		id, err := platform.IDFromString(raw)
		if err != nil {
			h.api.Err(w, r, InvalidIDError(err))
			return
		}
		f.SubscriptionID = id
	}

	rgs, _, err := h.rgSvc.FindResourceGroups(r.Context(), f, opts)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newResourceGroupsResponse(opts, f, rgs))
}

func (h *ResourceGroupHandler) handleGetResourceGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	rg, err := h.rgSvc.FindResourceGroupByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newResourceGroupResponse(rg))
}

func (h *ResourceGroupHandler) handlePatchResourceGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var upd controlplane.ResourceGroupUpdate
	if err := h.api.DecodeJSON(r.Body, &upd); err != nil {
		h.api.Err(w, r, err)
		return
	}
	if upd.ProvisioningState != nil {
		if err := upd.ProvisioningState.Valid(); err != nil {
			h.api.Err(w, r, err)
			return
		}
	}

	rg, err := h.rgSvc.UpdateResourceGroup(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newResourceGroupResponse(rg))
}

func (h *ResourceGroupHandler) handleDeleteResourceGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.rgSvc.DeleteResourceGroup(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
