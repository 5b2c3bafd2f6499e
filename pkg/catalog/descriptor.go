// Package catalog lists the resources of a dbt project via "dbt ls" and
// resolves project-level configuration from dbt_project.yml. It is the
// read-only source of truth for which resources exist, their types, their
// materializations, and where their defining files live.
package catalog

import (
	"path/filepath"

	"github.com/propsync/propsync/pkg/properties"
)

// ResourceDescriptor identifies one resource selected from the project.
// Descriptors are immutable inputs to every downstream component.
type ResourceDescriptor struct {
	// Name is the resource name as known to dbt (e.g. "orders").
	Name string

	// Type is the resource type (model, seed, snapshot, analysis).
	Type properties.ResourceType

	// Materialized is the resource's materialization strategy
	// (table, view, incremental, ephemeral, ...).
	Materialized string

	// Location is the resource's defining file path relative to the
	// project root (e.g. "models/staging/orders.sql").
	Location string
}

// PropertyPath returns the absolute path of the resource's per-resource
// property document under the given project root.
func (d ResourceDescriptor) PropertyPath(projectPath string) string {
	return filepath.Join(projectPath, properties.PathFor(d.Location))
}

// Introspectable reports whether the resource is physically materialized
// in the warehouse. Ephemeral models and analyses have no relation to
// query, so their columns are resolved from compiled SQL instead.
func (d ResourceDescriptor) Introspectable() bool {
	return d.Materialized != "ephemeral" && d.Type != properties.TypeAnalysis
}
