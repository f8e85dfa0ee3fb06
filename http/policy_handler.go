package http

import (
	"net/http"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// PolicyDefinitionHandler represents an HTTP API handler for policy
// definitions.
type PolicyDefinitionHandler struct {
	chi.Router
	api       *kithttp.API
	log       *zap.Logger
	policySvc controlplane.PolicyService
}

const prefixPolicyDefinitions = "/api/v1/policyDefinitions"

// Prefix returns the mount path of the policy definition handler.
func (h *PolicyDefinitionHandler) Prefix() string {
	return prefixPolicyDefinitions
}

// NewPolicyDefinitionHandler constructs a new http server.
func NewPolicyDefinitionHandler(b *APIBackend) *PolicyDefinitionHandler {
	svr := &PolicyDefinitionHandler{
		api:       kithttp.New(kithttp.WithLog(b.Logger)),
		log:       b.Logger,
		policySvc: b.PolicyService,
	}

	r := chi.NewRouter()
	r.Post("/", svr.handlePostDefinition)
	r.Get("/", svr.handleGetDefinitions)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", svr.handleGetDefinition)
		r.Delete("/", svr.handleDeleteDefinition)
	})

	svr.Router = r
	return svr
}

type postPolicyDefinitionRequest struct {
	Name        string                  `json:"name"`
	DisplayName string                  `json:"displayName"`
	Description string                  `json:"description"`
	Mode        controlplane.PolicyMode `json:"mode"`
	Rule        map[string]interface{}  `json:"rule"`
}

func (h *PolicyDefinitionHandler) handlePostDefinition(w http.ResponseWriter, r *http.Request) {
	var req postPolicyDefinitionRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	pd := &controlplane.PolicyDefinition{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Mode:        req.Mode,
		Rule:        req.Rule,
	}
	if err := h.policySvc.CreatePolicyDefinition(r.Context(), pd); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("policy definition created", zap.String("policy", pd.Name))

	h.api.Respond(w, r, http.StatusCreated, pd)
}

func (h *PolicyDefinitionHandler) handleGetDefinitions(w http.ResponseWriter, r *http.Request) {
	pds, _, err := h.policySvc.FindPolicyDefinitions(r.Context())
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, struct {
		PolicyDefinitions []*controlplane.PolicyDefinition `json:"policyDefinitions"`
	}{PolicyDefinitions: pds})
}

func (h *PolicyDefinitionHandler) handleGetDefinition(w http.ResponseWriter, r *http.Request) {
	id, err := decodePolicyID(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	pd, err := h.policySvc.FindPolicyDefinitionByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, pd)
}

func (h *PolicyDefinitionHandler) handleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	id, err := decodePolicyID(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.policySvc.DeletePolicyDefinition(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}

// PolicyAssignmentHandler represents an HTTP API handler for policy
// assignments.
type PolicyAssignmentHandler struct {
	chi.Router
	api       *kithttp.API
	log       *zap.Logger
	policySvc controlplane.PolicyService
}

const prefixPolicyAssignments = "/api/v1/policyAssignments"

// Prefix returns the mount path of the policy assignment handler.
func (h *PolicyAssignmentHandler) Prefix() string {
	return prefixPolicyAssignments
}

// NewPolicyAssignmentHandler constructs a new http server.
func NewPolicyAssignmentHandler(b *APIBackend) *PolicyAssignmentHandler {
	svr := &PolicyAssignmentHandler{
		api:       kithttp.New(kithttp.WithLog(b.Logger)),
		log:       b.Logger,
		policySvc: b.PolicyService,
	}

	r := chi.NewRouter()
	r.Post("/", svr.handlePostAssignment)
	r.Get("/", svr.handleGetAssignments)
	r.Delete("/{id}", svr.handleDeleteAssignment)

	svr.Router = r
	return svr
}

type postPolicyAssignmentRequest struct {
	PolicyID    platform.ID            `json:"policyId"`
	Scope       string                 `json:"scope"`
	DisplayName string                 `json:"displayName"`
	Parameters  map[string]interface{} `json:"parameters"`
}

func (req postPolicyAssignmentRequest) OK() error {
	if !req.PolicyID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "policyId is required",
		}
	}
	if req.Scope == "" {
		return &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "scope is required",
		}
	}
	return nil
}

func (h *PolicyAssignmentHandler) handlePostAssignment(w http.ResponseWriter, r *http.Request) {
	var req postPolicyAssignmentRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	pa := &controlplane.PolicyAssignment{
		PolicyID:    req.PolicyID,
		Scope:       req.Scope,
		DisplayName: req.DisplayName,
		Parameters:  req.Parameters,
	}
	if err := h.policySvc.AssignPolicy(r.Context(), pa); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("policy assigned", zap.String("scope", pa.Scope))

	h.api.Respond(w, r, http.StatusCreated, pa)
}

func (h *PolicyAssignmentHandler) handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		h.api.Err(w, r, &errors.Error{
			Code: errors.EInvalid,
			Msg:  "scope query parameter is required",
		})
		return
	}

	pas, err := h.policySvc.FindPolicyAssignments(r.Context(), scope)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, struct {
		PolicyAssignments []*controlplane.PolicyAssignment `json:"policyAssignments"`
	}{PolicyAssignments: pas})
}

func (h *PolicyAssignmentHandler) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := decodePolicyID(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.policySvc.DeletePolicyAssignment(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}

func decodePolicyID(r *http.Request) (platform.ID, error) {
	id, err := platform.IDFromString(chi.URLParam(r, "id"))
	if err != nil {
		return platform.InvalidID(), &errors.Error{
			Code: errors.EInvalid,
			Msg:  "invalid id",
			Err:  err,
		}
	}
	return *id, nil
}
