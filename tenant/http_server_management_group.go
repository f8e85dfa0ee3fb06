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

// ManagementGroupHandler represents an HTTP API handler for management groups.
type ManagementGroupHandler struct {
	chi.Router
	api   *kithttp.API
	log   *zap.Logger
	mgSvc controlplane.ManagementGroupService
}

const prefixManagementGroups = "/api/v1/managementGroups"

// Prefix returns the mount path of the management group handler.
func (h *ManagementGroupHandler) Prefix() string {
	return prefixManagementGroups
}

// NewHTTPManagementGroupHandler constructs a new http server.
func NewHTTPManagementGroupHandler(log *zap.Logger, mgSvc controlplane.ManagementGroupService) *ManagementGroupHandler {
	svr := &ManagementGroupHandler{
		api:   kithttp.New(kithttp.WithLog(log)),
		log:   log,
		mgSvc: mgSvc,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	)

	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostManagementGroup)
		r.Get("/", svr.handleGetManagementGroups)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetManagementGroup)
			r.Patch("/", svr.handlePatchManagementGroup)
			r.Delete("/", svr.handleDeleteManagementGroup)
		})
	})

	svr.Router = r
	return svr
}

type managementGroupResponse struct {
	controlplane.ManagementGroup
	Links map[string]string `json:"links"`
}

func newManagementGroupResponse(mg *controlplane.ManagementGroup) managementGroupResponse {
	return managementGroupResponse{
		ManagementGroup: *mg,
		Links: map[string]string{
			"self":   prefixManagementGroups + "/" + mg.ID.String(),
			"tenant": prefixTenants + "/" + mg.TenantID.String(),
		},
	}
}

type managementGroupsResponse struct {
	Links            *controlplane.PagingLinks `json:"links"`
	ManagementGroups []managementGroupResponse `json:"managementGroups"`
}

func newManagementGroupsResponse(opts controlplane.FindOptions, f controlplane.ManagementGroupFilter, mgs []*controlplane.ManagementGroup) managementGroupsResponse {
	resp := managementGroupsResponse{
		Links:            newPagingLinks(prefixManagementGroups, opts, f, len(mgs)),
		ManagementGroups: make([]managementGroupResponse, 0, len(mgs)),
	}
	for _, mg := range mgs {
		resp.ManagementGroups = append(resp.ManagementGroups, newManagementGroupResponse(mg))
	}
	return resp
}

type postManagementGroupRequest struct {
	TenantID    platform.ID  `json:"tenantId"`
	ParentID    *platform.ID `json:"parentId"`
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
}

func (req postManagementGroupRequest) OK() error {
	if req.Name == "" {
		return ErrNameisEmpty
	}
	if !req.TenantID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "tenantId is required",
		}
	}
	return nil
}

func (h *ManagementGroupHandler) handlePostManagementGroup(w http.ResponseWriter, r *http.Request) {
	var req postManagementGroupRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	mg := &controlplane.ManagementGroup{
		TenantID:    req.TenantID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		DisplayName: req.DisplayName,
	}
	if err := h.mgSvc.CreateManagementGroup(r.Context(), mg); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("management group created", zap.String("managementGroup", mg.Name))

	h.api.Respond(w, r, http.StatusCreated, newManagementGroupResponse(mg))
}

func (h *ManagementGroupHandler) handleGetManagementGroups(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeFindOptions(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var f controlplane.ManagementGroupFilter
	qp := r.URL.Query()
	if name := qp.Get("name"); name != "" {
		f.Name = &name
	}
	if raw := qp.Get("tenantID"); raw != "" {
		id, err := platform.IDFromString(raw)
		if err != nil {
			h.api.Err(w, r, InvalidIDError(err))
			return
		}
		f.TenantID = id
	}
	if raw := qp.Get("parentID"); raw != "" {
		id, err := platform.IDFromString(raw)
		if err != nil {
			h.api.Err(w, r, InvalidIDError(err))
			return
		}
		f.ParentID = id
	}

	mgs, _, err := h.mgSvc.FindManagementGroups(r.Context(), f, opts)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newManagementGroupsResponse(opts, f, mgs))
}

func (h *ManagementGroupHandler) handleGetManagementGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	mg, err := h.mgSvc.FindManagementGroupByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newManagementGroupResponse(mg))
}

func (h *ManagementGroupHandler) handlePatchManagementGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var upd controlplane.ManagementGroupUpdate
	if err := h.api.DecodeJSON(r.Body, &upd); err != nil {
		h.api.Err(w, r, err)
		return
	}

	mg, err := h.mgSvc.UpdateManagementGroup(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newManagementGroupResponse(mg))
}

func (h *ManagementGroupHandler) handleDeleteManagementGroup(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.mgSvc.DeleteManagementGroup(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
