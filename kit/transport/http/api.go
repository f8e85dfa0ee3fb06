package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"go.uber.org/zap"
)

type oker interface {
	OK() error
}

// APIOptFn configures an API helper.
type APIOptFn func(*API)

// WithLog sets the logger the API helper reports write failures to.
func WithLog(logger *zap.Logger) APIOptFn {
	return func(api *API) {
		api.logger = logger
	}
}

// WithPrettyJSON toggles indented response bodies.
func WithPrettyJSON(b bool) APIOptFn {
	return func(api *API) {
		api.prettyJSON = b
	}
}

// API is a helper for decoding requests and writing responses in handlers.
// Decoded values implementing OK() error are validated in place.
type API struct {
	logger     *zap.Logger
	prettyJSON bool
	errHandler errors.HTTPErrorHandler
}

// New creates an API helper with sane defaults.
func New(opts ...APIOptFn) *API {
	api := API{
		logger:     zap.NewNop(),
		errHandler: ErrorHandler(0),
	}
	for _, o := range opts {
		o(&api)
	}
	return &api
}

// DecodeJSON decodes r into v and validates v when it implements OK.
func (a *API) DecodeJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode request body",
			Err:  err,
		}
	}

	if vv, ok := v.(oker); ok {
		return vv.OK()
	}
	return nil
}

// Respond writes v as JSON with the given status.
func (a *API) Respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	enc := json.NewEncoder(w)
	if a.prettyJSON {
		enc.SetIndent("", "\t")
	}

	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		a.logger.Error("failed to encode response body", zap.Error(err))
	}
}

// Err writes err through the uniform error envelope.
func (a *API) Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	a.logger.Debug("api error encountered", zap.Error(err))
	a.errHandler.HandleHTTPError(r.Context(), err, w)
}
