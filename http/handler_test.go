package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controlplanehttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/http"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/prom/promtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHandler_ServeHTTP(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		h := controlplanehttp.NewHandlerFromRegistry("cpd", prometheus.NewRegistry())

		r := httptest.NewRequest(http.MethodGet, "/ready", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ready", resp.Status)
	})

	t.Run("health", func(t *testing.T) {
		h := controlplanehttp.NewHandlerFromRegistry("cpd", prometheus.NewRegistry())

		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "controlplane", resp.Name)
		assert.Equal(t, "pass", resp.Status)
	})

	t.Run("metrics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		h := controlplanehttp.NewHandlerFromRegistry("cpd", reg)

		r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api requests are delegated and counted", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		h := controlplanehttp.NewHandlerFromRegistry("cpd", reg,
			controlplanehttp.WithLog(zaptest.NewLogger(t)),
			controlplanehttp.WithAPIHandler(api),
		)

		r := httptest.NewRequest(http.MethodGet, "/api/v1", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		mfs := promtest.MustGather(t, reg)
		m := promtest.MustFindMetric(t, mfs, "cpd_api_requests_total", map[string]string{
			"handler":       "cpd",
			"method":        "GET",
			"path":          "/api/v1",
			"status":        "2XX",
			"response_code": "200",
		})
		assert.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("debug pprof index", func(t *testing.T) {
		h := controlplanehttp.NewHandlerFromRegistry("cpd", prometheus.NewRegistry())

		r := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
