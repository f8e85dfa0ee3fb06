package http

import (
	"net/http"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// LocationHandler represents an HTTP API handler for the location catalog.
type LocationHandler struct {
	chi.Router
	api         *kithttp.API
	log         *zap.Logger
	locationSvc controlplane.LocationService
}

const prefixLocations = "/api/v1/locations"

// Prefix returns the mount path of the location handler.
func (h *LocationHandler) Prefix() string {
	return prefixLocations
}

// NewLocationHandler constructs a new http server.
func NewLocationHandler(b *APIBackend) *LocationHandler {
	svr := &LocationHandler{
		api:         kithttp.New(kithttp.WithLog(b.Logger)),
		log:         b.Logger,
		locationSvc: b.LocationService,
	}

	r := chi.NewRouter()
	r.Post("/", svr.handlePostLocation)
	r.Get("/", svr.handleGetLocations)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", svr.handleGetLocation)
		r.Delete("/", svr.handleDeleteLocation)
	})

	svr.Router = r
	return svr
}

type postLocationRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Geography   string `json:"geography"`
}

func (h *LocationHandler) handlePostLocation(w http.ResponseWriter, r *http.Request) {
	var req postLocationRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	l := &controlplane.Location{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Geography:   req.Geography,
	}
	if err := h.locationSvc.CreateLocation(r.Context(), l); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusCreated, l)
}

func (h *LocationHandler) handleGetLocations(w http.ResponseWriter, r *http.Request) {
	ls, err := h.locationSvc.ListLocations(r.Context())
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, struct {
		Locations []*controlplane.Location `json:"locations"`
	}{Locations: ls})
}

func (h *LocationHandler) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	l, err := h.locationSvc.FindLocationByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, l)
}

func (h *LocationHandler) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.locationSvc.DeleteLocation(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
