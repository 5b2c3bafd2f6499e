package properties

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/propsync/propsync/pkg/errors"
)

// filePermissions is the mode used for newly written property documents.
const filePermissions = 0o644

// PathFor derives the property document path for a resource location by
// swapping the location's extension for .yml (orders.sql -> orders.yml).
func PathFor(resourceLocation string) string {
	ext := filepath.Ext(resourceLocation)
	return strings.TrimSuffix(resourceLocation, ext) + ".yml"
}

// Read loads the property document at path. A missing file and a file
// that parses to an empty or null value both return (nil, nil): truncated
// or placeholder files are treated the same as absent ones. Malformed
// YAML yields a DocumentError.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewDocumentError(path, "malformed YAML", err)
	}

	// A null or empty file unmarshals to the zero value.
	if doc.Version == 0 && doc.Empty() {
		return nil, nil
	}
	return &doc, nil
}

// Marshal serializes a document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return data, nil
}

// Write serializes the document and writes it to path.
func Write(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// WriteNew writes the document to path only if no file exists there yet.
// Migration targets must never silently overwrite existing documents.
func WriteNew(path string, doc *Document) error {
	if _, err := os.Stat(path); err == nil {
		return errors.NewIOError("create", path, errors.ErrTargetExists)
	} else if !os.IsNotExist(err) {
		return errors.WrapIO("stat", path, err)
	}
	return Write(path, doc)
}

// Delete removes the property document at path.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return errors.WrapIO("delete", path, err)
	}
	return nil
}

// Exists reports whether a property document exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
