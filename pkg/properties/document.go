package properties

// DocumentVersion is the schema version written into every property document.
const DocumentVersion = 2

// Column holds the properties of a single column. Identity is the Name;
// everything else, including unknown keys such as tests or meta blocks,
// is preserved verbatim across reconciliations.
type Column struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Extra       map[string]any `yaml:",inline"`
}

// NewColumn creates a column entry with an empty description.
func NewColumn(name string) *Column {
	return &Column{Name: name, Description: ""}
}

// Resource holds the documented properties of one resource inside a
// document section. Unknown resource-level keys survive in Extra.
type Resource struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Columns     []*Column      `yaml:"columns"`
	Extra       map[string]any `yaml:",inline"`
}

// Column returns the column entry with the given name, or nil.
func (r *Resource) Column(name string) *Column {
	for _, c := range r.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Document is a property document. One document may describe several
// resources under the legacy layout or exactly one under the per-resource
// layout. Section order follows dbt convention: version first, then one
// list per plural resource type. Top-level sections this tool does not
// manage (sources, exposures, ...) survive in Extra.
type Document struct {
	Version   int            `yaml:"version"`
	Models    []*Resource    `yaml:"models,omitempty"`
	Seeds     []*Resource    `yaml:"seeds,omitempty"`
	Snapshots []*Resource    `yaml:"snapshots,omitempty"`
	Analyses  []*Resource    `yaml:"analyses,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// NewDocument creates a fresh document header describing a single resource
// with no columns yet.
func NewDocument(resourceType ResourceType, resourceName string) *Document {
	doc := &Document{Version: DocumentVersion}
	doc.SetSection(resourceType, []*Resource{
		{Name: resourceName, Description: "", Columns: []*Column{}},
	})
	return doc
}

// Section returns the resource list for the given type.
func (d *Document) Section(rt ResourceType) []*Resource {
	switch rt {
	case TypeModel:
		return d.Models
	case TypeSeed:
		return d.Seeds
	case TypeSnapshot:
		return d.Snapshots
	case TypeAnalysis:
		return d.Analyses
	}
	return nil
}

// SetSection replaces the resource list for the given type. Setting a nil
// or empty list removes the section from the document entirely.
func (d *Document) SetSection(rt ResourceType, resources []*Resource) {
	if len(resources) == 0 {
		resources = nil
	}
	switch rt {
	case TypeModel:
		d.Models = resources
	case TypeSeed:
		d.Seeds = resources
	case TypeSnapshot:
		d.Snapshots = resources
	case TypeAnalysis:
		d.Analyses = resources
	}
}

// Resource returns the entry for the named resource within the given
// type's section, or nil if the document does not describe it.
func (d *Document) Resource(rt ResourceType, name string) *Resource {
	for _, r := range d.Section(rt) {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// ResourceCount returns the total number of resource entries across all
// sections.
func (d *Document) ResourceCount() int {
	n := 0
	for _, rt := range SupportedTypes() {
		n += len(d.Section(rt))
	}
	return n
}

// Empty reports whether the document's only remaining content is the
// version marker. Such documents are deleted from storage rather than
// rewritten. Unmanaged top-level sections count as content.
func (d *Document) Empty() bool {
	return d.ResourceCount() == 0 && len(d.Extra) == 0
}
