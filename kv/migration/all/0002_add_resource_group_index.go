package all

import "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration"

// Migration0002_AddResourceGroupIndex adds the per-subscription name index
// for resource groups.
var Migration0002_AddResourceGroupIndex = migration.CreateBuckets(
	"add resource group index",
	[]byte("resourcegroupindexv1"),
)
