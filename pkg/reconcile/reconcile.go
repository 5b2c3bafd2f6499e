// Package reconcile merges freshly introspected column lists into
// property documents. The merge never destroys manual edits: resource
// descriptions, column descriptions, and any extra fields humans have
// added all survive as long as the column still exists in the warehouse.
package reconcile

import (
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// Reconcile loads the property document at path (if any) and merges the
// introspected columns into the entry for the given resource, returning
// the updated in-memory document ready to persist. A malformed or empty
// existing document is treated the same as an absent one. The operation
// is idempotent: unchanged inputs produce an equivalent document.
func Reconcile(path string, desc catalog.ResourceDescriptor, columns []string) (*properties.Document, error) {
	doc, err := properties.Read(path)
	if err != nil {
		// A document that cannot be parsed is handled like a missing
		// one rather than failing the resource; the rewrite replaces it.
		var docErr *errors.DocumentError
		if !errors.As(err, &docErr) {
			return nil, err
		}
		doc = nil
	}
	return Merge(doc, desc, columns), nil
}

// Merge applies the reconciliation algorithm to an in-memory document.
// A nil doc synthesizes a fresh header for the resource. Only the named
// resource's own sub-record is touched; sibling resources sharing a
// legacy document are left as-is.
func Merge(doc *properties.Document, desc catalog.ResourceDescriptor, columns []string) *properties.Document {
	if doc == nil {
		doc = properties.NewDocument(desc.Type, desc.Name)
	}

	resource := doc.Resource(desc.Type, desc.Name)
	if resource == nil {
		resource = &properties.Resource{
			Name:        desc.Name,
			Description: "",
			Columns:     []*properties.Column{},
		}
		doc.SetSection(desc.Type, append(doc.Section(desc.Type), resource))
	}

	// Index the existing column entries by name, then rebuild the list
	// in introspected order. Surviving entries are reused verbatim so
	// descriptions and extra fields carry over; new names get a fresh
	// entry with an empty description.
	existing := make(map[string]*properties.Column, len(resource.Columns))
	for _, col := range resource.Columns {
		existing[col.Name] = col
	}

	rebuilt := make([]*properties.Column, 0, len(columns))
	for _, name := range columns {
		if col, ok := existing[name]; ok {
			rebuilt = append(rebuilt, col)
		} else {
			rebuilt = append(rebuilt, properties.NewColumn(name))
		}
	}
	resource.Columns = rebuilt

	return doc
}
