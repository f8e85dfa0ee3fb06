package http

import (
	"net/http"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// APIBackend is all services and associated parameters required to construct
// an APIHandler.
type APIBackend struct {
	Logger *zap.Logger
	errors.HTTPErrorHandler

	Registry *registry.Registry

	TenantService          controlplane.TenantService
	ManagementGroupService controlplane.ManagementGroupService
	SubscriptionService    controlplane.SubscriptionService
	ResourceGroupService   controlplane.ResourceGroupService
	LocationService        controlplane.LocationService
	PolicyService          controlplane.PolicyService
}

// ResourceHandler is an HTTP handler for a resource. The prefix describes the
// url path prefix that relates to the handler endpoints.
type ResourceHandler interface {
	Prefix() string
	http.Handler
}

// APIHandler is a collection of all the service handlers.
type APIHandler struct {
	errors.HTTPErrorHandler
	Gateway chi.Router
}

// APIHandlerOptFn is a functional input param to set parameters on
// the APIHandler.
type APIHandlerOptFn func(*APIHandler)

// WithResourceHandler registers a resource handler on the APIHandler.
func WithResourceHandler(resHandler ResourceHandler) APIHandlerOptFn {
	return func(h *APIHandler) {
		h.Gateway.Mount(resHandler.Prefix(), resHandler)
	}
}

// NewAPIHandler constructs the api gateway, mounting the registry dispatch
// routes and any additional resource handlers.
func NewAPIHandler(b *APIBackend, opts ...APIHandlerOptFn) *APIHandler {
	h := &APIHandler{
		HTTPErrorHandler: b.HTTPErrorHandler,
		Gateway:          newBaseChiRouter(b.HTTPErrorHandler),
	}

	// Dispatch routes are registered on the gateway itself; they share the
	// /api/v1/subscriptions subtree with the subscription resource handler.
	NewProviderHandler(b).Register(h.Gateway)

	locationHandler := NewLocationHandler(b)
	h.Gateway.Mount(locationHandler.Prefix(), locationHandler)

	definitionHandler := NewPolicyDefinitionHandler(b)
	h.Gateway.Mount(definitionHandler.Prefix(), definitionHandler)

	assignmentHandler := NewPolicyAssignmentHandler(b)
	h.Gateway.Mount(assignmentHandler.Prefix(), assignmentHandler)

	h.Gateway.Get("/api/v1", h.serveLinks)
	h.Gateway.Get("/api/v1/", h.serveLinks)

	for _, o := range opts {
		o(h)
	}

	return h
}

var apiLinks = map[string]interface{}{
	// when adding new links, please take care to keep this list alphabetical.
	"locations":         "/api/v1/locations",
	"managementGroups":  "/api/v1/managementGroups",
	"policyAssignments": "/api/v1/policyAssignments",
	"policyDefinitions": "/api/v1/policyDefinitions",
	"providers":         "/api/v1/providers",
	"resourceGroups":    "/api/v1/resourceGroups",
	"subscriptions":     "/api/v1/subscriptions",
	"tenants":           "/api/v1/tenants",
}

func (h *APIHandler) serveLinks(w http.ResponseWriter, r *http.Request) {
	api := kithttp.New()
	api.Respond(w, r, http.StatusOK, map[string]interface{}{"links": apiLinks})
}

func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Gateway.ServeHTTP(w, r)
}
