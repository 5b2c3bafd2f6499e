package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/logging"
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

// scaffoldProject creates a dbt project directory with the given resource
// files on disk.
func scaffoldProject(t *testing.T, files ...string) *Project {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbt_project.yml"),
		[]byte("name: test_project\n"), 0o644))
	for _, file := range files {
		path := filepath.Join(dir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("select 1\n"), 0o644))
	}

	project, err := LoadProject(dir)
	require.NoError(t, err)
	return project
}

func TestListFiltersAndParses(t *testing.T) {
	project := scaffoldProject(t, "models/orders.sql", "seeds/countries.csv")
	runner := &fakeRunner{output: `{"info": {"msg": "Running with dbt"}}
{"resource_type": "model", "name": "orders", "original_file_path": "models/orders.sql", "config": {"materialized": "table"}}
{"resource_type": "seed", "name": "countries", "original_file_path": "seeds/countries.csv", "config": {"materialized": "seed"}}
{"resource_type": "source", "name": "raw_events", "original_file_path": "models/sources.yml", "config": {}}
deprecation warning in plain text`}

	resources, err := List(context.Background(), runner, project, Selection{}, dbt.Options{}, logging.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, resources, 2)

	assert.Equal(t, "orders", resources[0].Name)
	assert.Equal(t, properties.TypeModel, resources[0].Type)
	assert.Equal(t, "table", resources[0].Materialized)
	assert.Equal(t, "models/orders.sql", resources[0].Location)

	assert.Equal(t, "countries", resources[1].Name)
	assert.Equal(t, properties.TypeSeed, resources[1].Type)
}

func TestListSkipsResourcesWithoutFiles(t *testing.T) {
	project := scaffoldProject(t) // no files on disk
	runner := &fakeRunner{output: `{"resource_type": "model", "name": "orders", "original_file_path": "models/orders.sql", "config": {"materialized": "table"}}`}

	resources, err := List(context.Background(), runner, project, Selection{}, dbt.Options{}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestListDefaultSelectionArgs(t *testing.T) {
	project := scaffoldProject(t)
	runner := &fakeRunner{}

	_, err := List(context.Background(), runner, project, Selection{}, dbt.Options{}, logging.NewNopLogger())
	require.NoError(t, err)

	require.Len(t, runner.args, 1)
	args := runner.args[0]
	assert.Equal(t, []string{"--log-format", "json", "ls"}, args[:3])
	assert.Contains(t, args, "--select")
	assert.Contains(t, args, "test_project")
	// All supported types are requested when nothing narrows the selection.
	count := 0
	for _, arg := range args {
		if arg == "--resource-type" {
			count++
		}
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, []string{"--output", "json"}, args[len(args)-2:])
}

func TestListExplicitSelectionArgs(t *testing.T) {
	project := scaffoldProject(t)
	runner := &fakeRunner{}

	sel := Selection{ResourceType: "model", Models: "orders", Exclude: "deprecated"}
	opts := dbt.Options{Target: "dev", State: "prod-artifacts"}
	_, err := List(context.Background(), runner, project, sel, opts, logging.NewNopLogger())
	require.NoError(t, err)

	args := runner.args[0]
	assert.Contains(t, args, "--models")
	assert.Contains(t, args, "orders")
	assert.Contains(t, args, "--exclude")
	assert.Contains(t, args, "--target")
	assert.Contains(t, args, "--state")
	assert.NotContains(t, args, "test_project")
}

func TestListRejectsUnsupportedResourceType(t *testing.T) {
	project := scaffoldProject(t)
	runner := &fakeRunner{}

	_, err := List(context.Background(), runner, project, Selection{ResourceType: "exposure"},
		dbt.Options{}, logging.NewNopLogger())
	require.Error(t, err)
	// The selection is rejected before dbt is ever invoked.
	assert.Empty(t, runner.args)
}

func TestSelectionValidate(t *testing.T) {
	assert.NoError(t, Selection{}.Validate())
	assert.NoError(t, Selection{ResourceType: "model"}.Validate())
	assert.NoError(t, Selection{ResourceType: "Snapshot"}.Validate())
	assert.Error(t, Selection{ResourceType: "metric"}.Validate())
}

func TestLoadProjectDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbt_project.yml"),
		[]byte("name: test_project\n"), 0o644))

	project, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "test_project", project.Name)
	assert.Equal(t, filepath.Join(project.Path, "target"), project.TargetPath)
	assert.Equal(t, []string{filepath.Join(project.Path, "macros")}, project.MacroPaths)
	assert.Equal(t, filepath.Join(project.Path, "target", "manifest.json"), project.ManifestPath())
}

func TestLoadProjectExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbt_project.yml"),
		[]byte("name: test_project\ntarget-path: build\nmacro-paths: [shared_macros, macros]\n"), 0o644))

	project, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project.Path, "build"), project.TargetPath)
	require.Len(t, project.MacroPaths, 2)
	assert.Equal(t, filepath.Join(project.Path, "shared_macros"), project.MacroPaths[0])
	assert.Equal(t, filepath.Join(project.Path, "build", "compiled", "test_project", "models", "orders.sql"),
		project.CompiledResourcePath("models/orders.sql"))
}

func TestLoadProjectWalksUp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbt_project.yml"),
		[]byte("name: test_project\n"), 0o644))
	nested := filepath.Join(dir, "models", "staging")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	project, err := LoadProject(nested)
	require.NoError(t, err)
	assert.Equal(t, "test_project", project.Name)
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject(t.TempDir())
	require.Error(t, err)
}

func TestDescriptorPropertyPath(t *testing.T) {
	desc := ResourceDescriptor{
		Name:     "orders",
		Type:     properties.TypeModel,
		Location: "models/staging/orders.sql",
	}
	assert.Equal(t, filepath.Join("/proj", "models", "staging", "orders.yml"),
		desc.PropertyPath("/proj"))
}

func TestDescriptorIntrospectable(t *testing.T) {
	assert.True(t, ResourceDescriptor{Type: properties.TypeModel, Materialized: "table"}.Introspectable())
	assert.True(t, ResourceDescriptor{Type: properties.TypeSeed, Materialized: "seed"}.Introspectable())
	assert.False(t, ResourceDescriptor{Type: properties.TypeModel, Materialized: "ephemeral"}.Introspectable())
	assert.False(t, ResourceDescriptor{Type: properties.TypeAnalysis, Materialized: "view"}.Introspectable())
}
