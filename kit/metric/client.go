// Package metric provides RED (rate, errors, duration) instrumentation for
// service middleware.
package metric

import (
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// REDClient records calls, failures and durations of service methods.
type REDClient struct {
	calls    *prometheus.CounterVec
	errs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// ClientOptFn configures a REDClient before registration.
type ClientOptFn func(*clientOpts)

type clientOpts struct {
	namespace string
	service   string
}

// WithSuffix appends a suffix to the service label of every metric name.
func WithSuffix(suffix string) ClientOptFn {
	return func(o *clientOpts) {
		if suffix != "" {
			o.service += "_" + suffix
		}
	}
}

// New creates a REDClient for the named service and registers its collectors
// with reg.
func New(reg prometheus.Registerer, service string, opts ...ClientOptFn) *REDClient {
	o := clientOpts{
		namespace: "service",
		service:   service,
	}
	for _, opt := range opts {
		opt(&o)
	}

	labels := []string{"method", "error_code"}

	client := &REDClient{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.service,
			Name:      "call_total",
			Help:      "Number of calls",
		}, labels),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.service,
			Name:      "error_total",
			Help:      "Number of errors encountered",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: o.service,
			Name:      "duration",
			Help:      "Duration of calls",
			Buckets:   prometheus.ExponentialBuckets(0.001, 10, 5),
		}, labels),
	}

	reg.MustRegister(client.collectors()...)

	return client
}

func (c *REDClient) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.calls, c.errs, c.duration}
}

// Record returns a completion function for the named method. The returned
// function records the outcome and passes the error through unchanged, so it
// can wrap a service call in a single line:
//
//	rec := c.rec.Record("create_tenant")
//	err := c.service.CreateTenant(ctx, t)
//	return rec(err)
func (c *REDClient) Record(method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		labels := prometheus.Labels{
			"method":     method,
			"error_code": "",
		}
		if err != nil {
			labels["error_code"] = errors.ErrorCode(err)
			c.errs.With(labels).Inc()
		}

		c.calls.With(labels).Inc()
		c.duration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}
