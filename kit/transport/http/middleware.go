package http

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Middleware constructor.
type Middleware func(http.Handler) http.Handler

// Metrics records request counts and durations per handler/method/path.
// Paths are normalized so entity IDs and resource names do not explode the
// label cardinality.
func Metrics(name string, reqMetric *prometheus.CounterVec, durMetric *prometheus.HistogramVec) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			statusW := NewStatusResponseWriter(w)

			defer func(start time.Time) {
				statusCode := statusW.Code()
				// only report metrics for 2XX or 5XX requests
				if !reportFromCode(statusCode) {
					return
				}

				label := prometheus.Labels{
					"handler":       name,
					"method":        r.Method,
					"path":          NormalizePath(r.URL.Path),
					"status":        statusW.StatusCodeClass(),
					"response_code": fmt.Sprintf("%d", statusCode),
				}

				durMetric.With(label).Observe(time.Since(start).Seconds())
				reqMetric.With(label).Inc()
			}(time.Now())

			next.ServeHTTP(statusW, r)
		}
		return http.HandlerFunc(fn)
	}
}

// AccessLog logs one line per completed request at debug level.
func AccessLog(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			statusW := NewStatusResponseWriter(w)

			defer func(start time.Time) {
				log.Debug("Request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", statusW.Code()),
					zap.Int("bytes", statusW.ResponseBytes()),
					zap.Duration("took", time.Since(start)),
				)
			}(time.Now())

			next.ServeHTTP(statusW, r)
		}
		return http.HandlerFunc(fn)
	}
}

const (
	idSlug   = ":id"
	nameSlug = ":name"
)

// NormalizePath replaces entity IDs and the trailing resource name of a
// provider path with slugs.
func NormalizePath(p string) string {
	var parts []string
	for head, tail := shiftPath(p); ; head, tail = shiftPath(tail) {
		piece := head

		if len(piece) == platform.IDLength {
			if _, err := platform.IDFromString(head); err == nil {
				piece = idSlug
			}
		}
		parts = append(parts, piece)

		if tail == "/" {
			break
		}
	}

	// The segment following a resource type under /providers/ is a
	// caller-chosen resource name.
	for i := range parts {
		if parts[i] == "providers" && i+3 < len(parts) {
			parts[i+3] = nameSlug
		}
	}

	return "/" + path.Join(parts...)
}

func shiftPath(p string) (head, tail string) {
	p = path.Clean("/" + p)
	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}

// reportFromCode is a helper function to determine if telemetry data should be
// reported for this response.
func reportFromCode(c int) bool {
	return (c >= 200 && c <= 299) || (c >= 500 && c <= 599)
}
