package introspect

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// fakeRunner returns canned output and records the arguments it was
// called with.
type fakeRunner struct {
	output string
	err    error
	args   [][]string
}

func (r *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	r.args = append(r.args, args)
	return r.output, r.err
}

func TestColumnsIntrospectableByName(t *testing.T) {
	runner := &fakeRunner{output: `{"code": "M011", "msg": "['id', 'amount']"}`}
	project := &catalog.Project{Path: t.TempDir()}
	desc := catalog.ResourceDescriptor{
		Name:         "orders",
		Type:         properties.TypeModel,
		Materialized: "table",
		Location:     "models/orders.sql",
	}

	columns, err := Columns(context.Background(), runner, project, desc, dbt.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "amount"}, columns)

	require.Len(t, runner.args, 1)
	joined := strings.Join(runner.args[0], " ")
	assert.Contains(t, joined, `"resource_name":"orders"`)
}

func TestColumnsEphemeralUsesCompiledSQL(t *testing.T) {
	dir := t.TempDir()
	project := &catalog.Project{
		Path:         dir,
		CompiledPath: filepath.Join(dir, "target", "compiled", "test_project"),
	}
	compiled := project.CompiledResourcePath("models/eph.sql")
	require.NoError(t, os.MkdirAll(filepath.Dir(compiled), 0o755))
	require.NoError(t, os.WriteFile(compiled, []byte("  select\n\n    1 as id  \n"), 0o644))

	runner := &fakeRunner{output: `{"code": "M011", "msg": "['id']"}`}
	desc := catalog.ResourceDescriptor{
		Name:         "eph",
		Type:         properties.TypeModel,
		Materialized: "ephemeral",
		Location:     "models/eph.sql",
	}

	columns, err := Columns(context.Background(), runner, project, desc, dbt.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, columns)

	// The compiled statement is normalized: trimmed lines, blanks dropped.
	joined := strings.Join(runner.args[0], " ")
	assert.Contains(t, joined, `select\n1 as id`)
	assert.NotContains(t, joined, "resource_name")
}

func TestColumnsEphemeralMissingCompiledFile(t *testing.T) {
	dir := t.TempDir()
	project := &catalog.Project{
		Path:         dir,
		CompiledPath: filepath.Join(dir, "target", "compiled", "test_project"),
	}
	runner := &fakeRunner{}
	desc := catalog.ResourceDescriptor{
		Name:         "eph",
		Type:         properties.TypeModel,
		Materialized: "ephemeral",
		Location:     "models/eph.sql",
	}

	_, err := Columns(context.Background(), runner, project, desc, dbt.Options{})
	require.Error(t, err)
	var introspectionErr *errors.IntrospectionError
	assert.ErrorAs(t, err, &introspectionErr)
	assert.Empty(t, runner.args)
}

func TestColumnsMacroMissingPassesThrough(t *testing.T) {
	runner := &fakeRunner{
		err: errors.New("Runtime Error: dbt could not find a macro with the name '_log_columns_list'"),
	}
	project := &catalog.Project{Path: t.TempDir()}
	desc := catalog.ResourceDescriptor{
		Name:         "orders",
		Type:         properties.TypeModel,
		Materialized: "table",
		Location:     "models/orders.sql",
	}

	_, err := Columns(context.Background(), runner, project, desc, dbt.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMacroMissing)
}
