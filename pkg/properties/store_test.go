package properties

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsync/propsync/pkg/errors"
)

func TestPathFor(t *testing.T) {
	assert.Equal(t, "models/staging/orders.yml", PathFor("models/staging/orders.sql"))
	assert.Equal(t, "seeds/country_codes.yml", PathFor("seeds/country_codes.csv"))
	assert.Equal(t, "models/orders.yml", PathFor("models/orders"))
}

func TestReadMissingFile(t *testing.T) {
	doc, err := Read(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestReadEmptyAndNullFiles(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"empty.yml": "",
		"null.yml":  "null\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		doc, err := Read(path)
		require.NoError(t, err, name)
		assert.Nil(t, doc, name)
	}
}

func TestReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: 2\nmodels: [unclosed"), 0o644))

	_, err := Read(path)
	require.Error(t, err)
	var docErr *errors.DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestRoundTripPreservesExtras(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yml")
	source := `version: 2
models:
  - name: orders
    description: All orders
    meta:
      owner: finance
    columns:
      - name: id
        description: Primary key
        tests:
          - unique
          - not_null
      - name: amount
        description: ""
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	doc, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	resource := doc.Resource(TypeModel, "orders")
	require.NotNil(t, resource)
	assert.Equal(t, "All orders", resource.Description)
	assert.Contains(t, resource.Extra, "meta")

	id := resource.Column("id")
	require.NotNil(t, id)
	assert.Contains(t, id.Extra, "tests")

	// Write back and re-read: manual fields must survive untouched.
	require.NoError(t, Write(path, doc))
	reread, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, reread)

	id = reread.Resource(TypeModel, "orders").Column("id")
	require.NotNil(t, id)
	assert.Equal(t, "Primary key", id.Description)
	assert.Contains(t, id.Extra, "tests")
	assert.Contains(t, reread.Resource(TypeModel, "orders").Extra, "meta")
}

func TestRoundTripPreservesUnmanagedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yml")
	source := `version: 2
models:
  - name: orders
    columns: []
sources:
  - name: raw
    tables:
      - name: events
exposures:
  - name: weekly_report
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	doc, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc.Extra, "sources")
	assert.Contains(t, doc.Extra, "exposures")

	require.NoError(t, Write(path, doc))
	reread, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Contains(t, reread.Extra, "sources")
	assert.Contains(t, reread.Extra, "exposures")
}

func TestWriteNewRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yml")
	doc := NewDocument(TypeModel, "orders")
	require.NoError(t, WriteNew(path, doc))

	err := WriteNew(path, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTargetExists)
}

func TestDeleteAndExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yml")
	require.NoError(t, Write(path, NewDocument(TypeModel, "orders")))
	assert.True(t, Exists(path))

	require.NoError(t, Delete(path))
	assert.False(t, Exists(path))
}
