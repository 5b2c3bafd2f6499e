// Package properties defines the property document model and its on-disk
// store. A property document is a dbt schema YAML file describing one or
// more resources and their columns. Fields set by humans (descriptions,
// tests, meta blocks) are carried as opaque extras and round-trip through
// parse/serialize untouched.
package properties

import (
	"strings"

	"github.com/propsync/propsync/pkg/errors"
)

// ResourceType identifies the kind of dbt resource a document describes.
type ResourceType string

// Supported resource types.
const (
	TypeModel    ResourceType = "model"
	TypeSeed     ResourceType = "seed"
	TypeSnapshot ResourceType = "snapshot"
	TypeAnalysis ResourceType = "analysis"
)

// pluralSections maps each resource type to its document section key.
var pluralSections = map[ResourceType]string{
	TypeModel:    "models",
	TypeSeed:     "seeds",
	TypeSnapshot: "snapshots",
	TypeAnalysis: "analyses",
}

// SupportedTypes returns the supported resource types in a stable order.
func SupportedTypes() []ResourceType {
	return []ResourceType{TypeModel, TypeSeed, TypeSnapshot, TypeAnalysis}
}

// SupportedTypeNames returns the supported resource type names in a stable order.
func SupportedTypeNames() []string {
	types := SupportedTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// ParseResourceType parses a resource type name, case-insensitively.
// Unsupported names yield a SelectionError.
func ParseResourceType(name string) (ResourceType, error) {
	rt := ResourceType(strings.ToLower(name))
	if _, ok := pluralSections[rt]; !ok {
		return "", errors.NewSelectionError(name, SupportedTypeNames())
	}
	return rt, nil
}

// String returns the resource type name.
func (rt ResourceType) String() string {
	return string(rt)
}

// Plural returns the document section key for the resource type
// (e.g. "models" for a model).
func (rt ResourceType) Plural() string {
	return pluralSections[rt]
}

// Supported reports whether the resource type is one this tool manages.
func (rt ResourceType) Supported() bool {
	_, ok := pluralSections[rt]
	return ok
}
