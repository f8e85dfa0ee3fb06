// Package promtest has assertion helpers for prometheus metrics in tests.
package promtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MustGather calls g.Gather and calls tb.Fatal if there was an error.
func MustGather(tb testing.TB, g prometheus.Gatherer) []*dto.MetricFamily {
	tb.Helper()

	mfs, err := g.Gather()
	if err != nil {
		tb.Fatalf("error while gathering metrics: %v", err)
		return nil
	}

	return mfs
}

// MustFindMetric returns the metric in mfs named name whose labels match
// labels exactly. When nothing matches it logs what was available, then
// fails the test.
func MustFindMetric(tb testing.TB, mfs []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	tb.Helper()

	var fam *dto.MetricFamily
	for _, mf := range mfs {
		if mf.GetName() == name {
			fam = mf
			break
		}
	}
	if fam == nil {
		tb.Logf("metric family with name %q not found", name)
		tb.Log("available names:")
		for _, mf := range mfs {
			tb.Logf("\t%s", mf.GetName())
		}
		tb.FailNow()
		return nil
	}

	for _, m := range fam.Metric {
		if len(m.Label) != len(labels) {
			continue
		}

		match := true
		for _, l := range m.Label {
			if labels[l.GetName()] != l.GetValue() {
				match = false
				break
			}
		}
		if match {
			return m
		}
	}

	tb.Logf("found metric family with name %q, but metric with labels %v not found", name, labels)
	tb.Logf("available labels on metric family %q:", name)
	for _, m := range fam.Metric {
		pairs := make([]string, len(m.Label))
		for i, l := range m.Label {
			pairs[i] = fmt.Sprintf("%q: %q", l.GetName(), l.GetValue())
		}
		tb.Logf("\t%s", strings.Join(pairs, ", "))
	}
	tb.FailNow()
	return nil
}
