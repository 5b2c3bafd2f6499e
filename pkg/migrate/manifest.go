// Package migrate restructures legacy property documents that describe
// several resources into one document per resource, using the project
// manifest to associate each resource with the document currently
// patching it. Content is relocated, never altered: descriptions,
// columns, and extra fields move verbatim.
package migrate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// manifestNode is the subset of a manifest node this package reads.
type manifestNode struct {
	ResourceType     string `json:"resource_type"`
	Name             string `json:"name"`
	OriginalFilePath string `json:"original_file_path"`
	PatchPath        string `json:"patch_path"`
}

// manifestFile is the subset of manifest.json this package reads.
type manifestFile struct {
	Nodes map[string]manifestNode `json:"nodes"`
}

// Manifest indexes resource-to-document associations from a dbt manifest
// artifact.
type Manifest struct {
	nodes map[string]manifestNode
}

// LoadManifest reads and indexes a manifest.json artifact. An unreadable
// manifest is fatal for the whole migration.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	m := &Manifest{nodes: make(map[string]manifestNode, len(file.Nodes))}
	for _, node := range file.Nodes {
		m.nodes[nodeKey(node.ResourceType, node.Name)] = node
	}
	return m, nil
}

// PatchPath returns the project-relative path of the document currently
// patching the resource, or false when the resource is undocumented.
func (m *Manifest) PatchPath(desc catalog.ResourceDescriptor) (string, bool) {
	node, ok := m.nodes[nodeKey(desc.Type.String(), desc.Name)]
	if !ok || node.PatchPath == "" {
		return "", false
	}
	return stripPackagePrefix(node.PatchPath), true
}

// stripPackagePrefix removes the "package://" prefix newer dbt versions
// put in front of patch paths.
func stripPackagePrefix(patchPath string) string {
	if idx := strings.Index(patchPath, "://"); idx >= 0 {
		return patchPath[idx+len("://"):]
	}
	return patchPath
}

func nodeKey(resourceType, name string) string {
	return resourceType + "." + name
}

// Plan groups selected resources by the source document that currently
// describes them. It is derived per run and never persisted.
type Plan struct {
	// Sources holds the source document paths in first-seen order.
	Sources []string

	// Members maps a source document path to the resources migrating
	// out of it.
	Members map[string][]Member
}

// Member is one resource's migration within a source document group.
type Member struct {
	Resource   catalog.ResourceDescriptor
	TargetPath string
}

// BuildPlan derives the migration plan for the selected resources. Only
// resources the manifest associates with an existing document take part.
func BuildPlan(manifest *Manifest, resources []catalog.ResourceDescriptor, projectPath string) *Plan {
	plan := &Plan{Members: make(map[string][]Member)}

	for _, desc := range resources {
		patchPath, ok := manifest.PatchPath(desc)
		if !ok {
			continue
		}
		sourcePath := filepath.Join(projectPath, patchPath)
		if !properties.Exists(sourcePath) {
			continue
		}

		if _, seen := plan.Members[sourcePath]; !seen {
			plan.Sources = append(plan.Sources, sourcePath)
		}
		plan.Members[sourcePath] = append(plan.Members[sourcePath], Member{
			Resource:   desc,
			TargetPath: desc.PropertyPath(projectPath),
		})
	}
	return plan
}
