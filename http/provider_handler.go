package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// ProviderHandler serves the generic resource provider surface: discovery of
// registered providers and dispatch of resource CRUD and actions through the
// registry.
type ProviderHandler struct {
	api      *kithttp.API
	log      *zap.Logger
	registry *registry.Registry
}

// NewProviderHandler constructs a ProviderHandler from the backend.
func NewProviderHandler(b *APIBackend) *ProviderHandler {
	return &ProviderHandler{
		api:      kithttp.New(kithttp.WithLog(b.Logger)),
		log:      b.Logger,
		registry: b.Registry,
	}
}

// Register attaches the discovery and dispatch routes to r.
//
// Scoped dispatch shares the /api/v1/subscriptions subtree with the
// subscription REST handler; chi resolves the more specific dispatch
// patterns first.
func (h *ProviderHandler) Register(r chi.Router) {
	r.Get("/api/v1/providers", h.handleGetProviders)

	dispatch := func(r chi.Router) {
		r.Get("/", h.handleListResources)
		r.Route("/{resourceName}", func(r chi.Router) {
			r.Put("/", h.handlePutResource)
			r.Get("/", h.handleGetResource)
			r.Delete("/", h.handleDeleteResource)
			r.Post("/{action}", h.handlePostAction)
		})
	}

	// tenant-level resources, e.g. /api/v1/providers/ITL.Core/tenants/{name}
	r.Route("/api/v1/providers/{namespace}/{resourceType}", dispatch)

	// subscription-scoped resources
	r.Route("/api/v1/subscriptions/{subscriptionID}/resourceGroups/{resourceGroup}/providers/{namespace}/{resourceType}", dispatch)
}

type providerResponse struct {
	Namespace    string `json:"namespace"`
	ResourceType string `json:"resourceType"`
	Kind         string `json:"kind"`
}

func (h *ProviderHandler) handleGetProviders(w http.ResponseWriter, r *http.Request) {
	regs := h.registry.List()

	resp := struct {
		Providers []providerResponse `json:"providers"`
	}{
		Providers: make([]providerResponse, 0, len(regs)),
	}
	for _, reg := range regs {
		resp.Providers = append(resp.Providers, providerResponse{
			Namespace:    reg.Namespace,
			ResourceType: reg.ResourceType,
			Kind:         reg.Kind,
		})
	}

	h.api.Respond(w, r, http.StatusOK, resp)
}

// decodeResourceRequest builds a ResourceRequest from the URL segments and
// query parameters of an inbound dispatch call.
func decodeResourceRequest(r *http.Request) controlplane.ResourceRequest {
	return controlplane.ResourceRequest{
		SubscriptionID:    chi.URLParam(r, "subscriptionID"),
		ResourceGroup:     chi.URLParam(r, "resourceGroup"),
		ProviderNamespace: chi.URLParam(r, "namespace"),
		ResourceType:      chi.URLParam(r, "resourceType"),
		ResourceName:      chi.URLParam(r, "resourceName"),
		Action:            chi.URLParam(r, "action"),
		APIVersion:        r.URL.Query().Get("api-version"),
	}
}

// decodeResourceBody reads an optional JSON document from the request body.
func decodeResourceBody(body io.Reader, req *controlplane.ResourceRequest) error {
	doc := map[string]interface{}{}
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode request body",
			Err:  err,
		}
	}

	req.Body = doc
	if loc, ok := doc["location"].(string); ok {
		req.Location = loc
	}
	return nil
}

func (h *ProviderHandler) handlePutResource(w http.ResponseWriter, r *http.Request) {
	req := decodeResourceRequest(r)
	if err := decodeResourceBody(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	resp, err := h.registry.CreateOrUpdate(r.Context(), req)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("resource created or updated", zap.String("resource", resp.ID))

	h.api.Respond(w, r, http.StatusCreated, resp)
}

func (h *ProviderHandler) handleGetResource(w http.ResponseWriter, r *http.Request) {
	resp, err := h.registry.GetResource(r.Context(), decodeResourceRequest(r))
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, resp)
}

func (h *ProviderHandler) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteResource(r.Context(), decodeResourceRequest(r)); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}

func (h *ProviderHandler) handleListResources(w http.ResponseWriter, r *http.Request) {
	req := decodeResourceRequest(r)

	opts := controlplane.FindOptions{Limit: controlplane.DefaultPageSize}
	qp := r.URL.Query()
	if v := qp.Get("top"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			h.api.Err(w, r, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "top must be a positive integer",
			})
			return
		}
		if limit > controlplane.MaxPageSize {
			limit = controlplane.MaxPageSize
		}
		opts.Limit = limit
	}
	if v := qp.Get("skipToken"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			h.api.Err(w, r, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "invalid skip token",
			})
			return
		}
		opts.Offset = offset
	}

	resps, token, err := h.registry.ListResources(r.Context(), req, opts)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, struct {
		Value     []*controlplane.ResourceResponse `json:"value"`
		SkipToken string                           `json:"skipToken,omitempty"`
	}{
		Value:     resps,
		SkipToken: token,
	})
}

func (h *ProviderHandler) handlePostAction(w http.ResponseWriter, r *http.Request) {
	req := decodeResourceRequest(r)
	if err := decodeResourceBody(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	resp, err := h.registry.ExecuteAction(r.Context(), req)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}
	if resp == nil {
		h.api.Respond(w, r, http.StatusNoContent, nil)
		return
	}

	h.api.Respond(w, r, http.StatusOK, resp)
}
