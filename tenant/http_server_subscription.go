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

// SubscriptionHandler represents an HTTP API handler for subscriptions.
type SubscriptionHandler struct {
	chi.Router
	api    *kithttp.API
	log    *zap.Logger
	subSvc controlplane.SubscriptionService
}

const prefixSubscriptions = "/api/v1/subscriptions"

// Prefix returns the mount path of the subscription handler.
func (h *SubscriptionHandler) Prefix() string {
	return prefixSubscriptions
}

// NewHTTPSubscriptionHandler constructs a new http server.
func NewHTTPSubscriptionHandler(log *zap.Logger, subSvc controlplane.SubscriptionService) *SubscriptionHandler {
	svr := &SubscriptionHandler{
		api:    kithttp.New(kithttp.WithLog(log)),
		log:    log,
		subSvc: subSvc,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	)

	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostSubscription)
		r.Get("/", svr.handleGetSubscriptions)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetSubscription)
			r.Patch("/", svr.handlePatchSubscription)
			r.Delete("/", svr.handleDeleteSubscription)
		})
	})

	svr.Router = r
	return svr
}

type subscriptionResponse struct {
	controlplane.Subscription
	Links map[string]string `json:"links"`
}

func newSubscriptionResponse(sub *controlplane.Subscription) subscriptionResponse {
	return subscriptionResponse{
		Subscription: *sub,
		Links: map[string]string{
			"self":           prefixSubscriptions + "/" + sub.ID.String(),
			"tenant":         prefixTenants + "/" + sub.TenantID.String(),
			"resourceGroups": prefixSubscriptions + "/" + sub.ID.String() + "/resourceGroups",
		},
	}
}

type subscriptionsResponse struct {
	Links         *controlplane.PagingLinks `json:"links"`
	Subscriptions []subscriptionResponse    `json:"subscriptions"`
}

func newSubscriptionsResponse(opts controlplane.FindOptions, f controlplane.SubscriptionFilter, subs []*controlplane.Subscription) subscriptionsResponse {
	resp := subscriptionsResponse{
		Links:         newPagingLinks(prefixSubscriptions, opts, f, len(subs)),
		Subscriptions: make([]subscriptionResponse, 0, len(subs)),
	}
	for _, sub := range subs {
		resp.Subscriptions = append(resp.Subscriptions, newSubscriptionResponse(sub))
	}
	return resp
}

type postSubscriptionRequest struct {
	TenantID          platform.ID                    `json:"tenantId"`
	ManagementGroupID *platform.ID                   `json:"managementGroupId"`
	Name              string                         `json:"name"`
	DisplayName       string                         `json:"displayName"`
	State             controlplane.SubscriptionState `json:"state"`
}

func (req postSubscriptionRequest) OK() error {
	if req.Name == "" {
		return ErrNameisEmpty
	}
	if !req.TenantID.Valid() {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "tenantId is required",
		}
	}
	if req.State != "" {
		return req.State.Valid()
	}
	return nil
}

func (h *SubscriptionHandler) handlePostSubscription(w http.ResponseWriter, r *http.Request) {
	var req postSubscriptionRequest
	if err := h.api.DecodeJSON(r.Body, &req); err != nil {
		h.api.Err(w, r, err)
		return
	}

	sub := &controlplane.Subscription{
		TenantID:          req.TenantID,
		ManagementGroupID: req.ManagementGroupID,
		Name:              req.Name,
		DisplayName:       req.DisplayName,
		State:             req.State,
	}
	if err := h.subSvc.CreateSubscription(r.Context(), sub); err != nil {
		h.api.Err(w, r, err)
		return
	}
	h.log.Debug("subscription created", zap.String("subscription", sub.Name))

	h.api.Respond(w, r, http.StatusCreated, newSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) handleGetSubscriptions(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeFindOptions(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var f controlplane.SubscriptionFilter
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
	if raw := qp.Get("managementGroupID"); raw != "" {
		id, err := platform.IDFromString(raw)
		if err != nil {
			h.api.Err(w, r, InvalidIDError(err))
			return
		}
		f.ManagementGroupID = id
	}

	subs, _, err := h.subSvc.FindSubscriptions(r.Context(), f, opts)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newSubscriptionsResponse(opts, f, subs))
}

func (h *SubscriptionHandler) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	sub, err := h.subSvc.FindSubscriptionByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) handlePatchSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var upd controlplane.SubscriptionUpdate
	if err := h.api.DecodeJSON(r.Body, &upd); err != nil {
		h.api.Err(w, r, err)
		return
	}
	if upd.State != nil {
		if err := upd.State.Valid(); err != nil {
			h.api.Err(w, r, err)
			return
		}
	}

	sub, err := h.subSvc.UpdateSubscription(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, newSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r, "id")
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.subSvc.DeleteSubscription(r.Context(), id); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
