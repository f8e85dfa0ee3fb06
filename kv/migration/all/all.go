// Package all declares the ordered list of kv metadata migrations.
//
// Append only; every released migration keeps its index forever.
package all

import "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration"

// Migrations contains all the migrations required for the entire of the
// kv store backing the control plane.
var Migrations = [...]migration.Spec{
	// 0001 initial migration
	Migration0001_InitialMigration,
	// 0002 add resource group index
	Migration0002_AddResourceGroupIndex,
}
