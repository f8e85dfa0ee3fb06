package all

import "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration"

// Migration0001_InitialMigration creates the buckets for the tenancy
// hierarchy and their name indexes.
var Migration0001_InitialMigration = migration.CreateBuckets(
	"initial migration",
	[]byte("tenantsv1"),
	[]byte("tenantindexv1"),
	[]byte("managementgroupsv1"),
	[]byte("managementgroupindexv1"),
	[]byte("subscriptionsv1"),
	[]byte("subscriptionindexv1"),
	[]byte("resourcegroupsv1"),
)
