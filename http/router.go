package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// newBaseChiRouter returns a chi router with the common middleware stack and
// uniform JSON error envelopes for unmatched routes and panics.
func newBaseChiRouter(errorHandler errors.HTTPErrorHandler) chi.Router {
	router := chi.NewRouter()
	router.Use(
		panicMW(errorHandler),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
	)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleHTTPError(r.Context(), &errors.Error{
			Code: errors.ENotFound,
			Msg:  "path not found",
		}, w)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleHTTPError(r.Context(), &errors.Error{
			Code: errors.EMethodNotAllowed,
			Msg:  fmt.Sprintf("allow: %s", w.Header().Get("Allow")),
		}, w)
	})
	return router
}

func panicMW(errorHandler errors.HTTPErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rcv := recover(); rcv != nil {
					errorHandler.HandleHTTPError(r.Context(), &errors.Error{
						Code: errors.EInternal,
						Msg:  "an internal error has occurred",
						Err:  fmt.Errorf("panic: %v\n%s", rcv, debug.Stack()),
					}, w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
