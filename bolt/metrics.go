package bolt

import (
	"github.com/prometheus/client_golang/prometheus"
	bolt "go.etcd.io/bbolt"
)

var _ prometheus.Collector = (*KVStore)(nil)

// entity buckets counted by the collector
var (
	tenantBucket          = []byte("tenantsv1")
	managementGroupBucket = []byte("managementgroupsv1")
	subscriptionBucket    = []byte("subscriptionsv1")
	resourceGroupBucket   = []byte("resourcegroupsv1")
)

var (
	tenantsDesc = prometheus.NewDesc(
		"controlplane_tenants_total",
		"Number of total tenants on the server",
		nil, nil)

	managementGroupsDesc = prometheus.NewDesc(
		"controlplane_management_groups_total",
		"Number of total management groups on the server",
		nil, nil)

	subscriptionsDesc = prometheus.NewDesc(
		"controlplane_subscriptions_total",
		"Number of total subscriptions on the server",
		nil, nil)

	resourceGroupsDesc = prometheus.NewDesc(
		"controlplane_resource_groups_total",
		"Number of total resource groups on the server",
		nil, nil)

	boltWritesDesc = prometheus.NewDesc(
		"boltdb_writes_total",
		"Total number of boltdb writes",
		nil, nil)

	boltReadsDesc = prometheus.NewDesc(
		"boltdb_reads_total",
		"Total number of boltdb reads",
		nil, nil)
)

// Describe returns all descriptions of the collector.
func (s *KVStore) Describe(ch chan<- *prometheus.Desc) {
	ch <- tenantsDesc
	ch <- managementGroupsDesc
	ch <- subscriptionsDesc
	ch <- resourceGroupsDesc
	ch <- boltWritesDesc
	ch <- boltReadsDesc
}

// Collect returns the current state of all metrics of the collector.
func (s *KVStore) Collect(ch chan<- prometheus.Metric) {
	stats := s.db.Stats()
	writes := stats.TxStats.Write
	reads := stats.TxN

	ch <- prometheus.MustNewConstMetric(
		boltReadsDesc,
		prometheus.CounterValue,
		float64(reads),
	)

	ch <- prometheus.MustNewConstMetric(
		boltWritesDesc,
		prometheus.CounterValue,
		float64(writes),
	)

	counts := map[string]int{}
	_ = s.db.View(func(tx *bolt.Tx) error {
		for _, bkt := range [][]byte{
			tenantBucket,
			managementGroupBucket,
			subscriptionBucket,
			resourceGroupBucket,
		} {
			b := tx.Bucket(bkt)
			if b == nil {
				continue
			}
			counts[string(bkt)] = b.Stats().KeyN
		}
		return nil
	})

	for desc, bkt := range map[*prometheus.Desc][]byte{
		tenantsDesc:          tenantBucket,
		managementGroupsDesc: managementGroupBucket,
		subscriptionsDesc:    subscriptionBucket,
		resourceGroupsDesc:   resourceGroupBucket,
	} {
		ch <- prometheus.MustNewConstMetric(
			desc,
			prometheus.GaugeValue,
			float64(counts[string(bkt)]),
		)
	}
}
