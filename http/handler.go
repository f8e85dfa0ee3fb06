package http

import (
	"net/http"
	"net/http/pprof"
	"strings"

	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	// MetricsPath exposes the prometheus metrics over /metrics.
	MetricsPath = "/metrics"
	// ReadyPath exposes the readiness of the daemon over /ready.
	ReadyPath = "/ready"
	// HealthPath exposes the health of the daemon over /health.
	HealthPath = "/health"
	// DebugPath exposes /debug/pprof for go debugging.
	DebugPath = "/debug"
)

// Handler provides basic handling of metrics, health and debug endpoints.
// All other requests are passed down to the sub handler.
type Handler struct {
	name string

	// handler to respond to metric requests
	metricsHandler http.Handler

	// handler to respond to health requests
	healthHandler http.Handler

	// handler to respond to readiness requests
	readyHandler http.Handler

	// handler to respond to debug requests
	debugHandler http.Handler

	// handler to respond to all other requests
	handler http.Handler

	log *zap.Logger
}

// HandlerOptFn is a functional option for the Handler.
type HandlerOptFn func(*Handler)

// WithLog sets the logger of the handler, which enables request access
// logging.
func WithLog(log *zap.Logger) HandlerOptFn {
	return func(h *Handler) {
		h.log = log
	}
}

// WithAPIHandler sets the handler for all non-operational requests.
func WithAPIHandler(h http.Handler) HandlerOptFn {
	return func(hh *Handler) {
		hh.handler = h
	}
}

// NewHandlerFromRegistry creates a new Handler with the given name, and
// registers the handler's metrics on reg.
func NewHandlerFromRegistry(name string, reg *prometheus.Registry, opts ...HandlerOptFn) *Handler {
	h := &Handler{
		name:           name,
		metricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		readyHandler:   http.HandlerFunc(ReadyHandler),
		healthHandler:  http.HandlerFunc(HealthHandler),
		debugHandler:   debugHandler(),
		log:            zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}

	requestCount, requestDuration := h.metrics()
	reg.MustRegister(requestCount, requestDuration)

	h.handler = applyMiddleware(h.handler,
		kithttp.Metrics(name, requestCount, requestDuration),
		kithttp.AccessLog(h.log),
	)

	return h
}

func applyMiddleware(h http.Handler, mws ...kithttp.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == MetricsPath:
		h.metricsHandler.ServeHTTP(w, r)
	case r.URL.Path == ReadyPath:
		h.readyHandler.ServeHTTP(w, r)
	case r.URL.Path == HealthPath:
		h.healthHandler.ServeHTTP(w, r)
	case strings.HasPrefix(r.URL.Path, DebugPath):
		h.debugHandler.ServeHTTP(w, r)
	default:
		h.handler.ServeHTTP(w, r)
	}
}

func (h *Handler) metrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	namespace := strings.Replace(h.name, "-", "_", -1)

	requestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Number of http requests received",
		},
		[]string{"handler", "method", "path", "status", "response_code"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Time taken to respond to HTTP request",
		},
		[]string{"handler", "method", "path", "status", "response_code"},
	)

	return requestCount, requestDuration
}

func debugHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
