package introspect

import (
	"context"
	"os"
	"strings"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
)

// Columns returns the live, warehouse-reported column names of a resource
// in order. Materialized resources are introspected by name; ephemeral
// models and analyses have no relation in the warehouse, so their
// compiled SQL is introspected as an ad-hoc query instead.
func Columns(ctx context.Context, runner dbt.Runner, project *catalog.Project, desc catalog.ResourceDescriptor, opts dbt.Options) ([]string, error) {
	var lines []dbt.LogLine
	var err error

	if desc.Introspectable() {
		lines, err = dbt.RunOperation(ctx, runner, dbt.MacroName,
			map[string]any{"resource_name": desc.Name}, opts)
	} else {
		sql, readErr := compiledSQL(project.CompiledResourcePath(desc.Location))
		if readErr != nil {
			return nil, errors.WrapIntrospection(desc.Name, readErr)
		}
		lines, err = dbt.RunOperation(ctx, runner, dbt.MacroName,
			map[string]any{"sql": sql}, opts)
	}
	if err != nil {
		if errors.IsMacroMissingErr(err) {
			return nil, err
		}
		return nil, errors.WrapIntrospection(desc.Name, err)
	}

	return ParseColumns(lines)
}

// compiledSQL reads a compiled resource file and collapses it to a single
// normalized statement: blank lines dropped, each line trimmed.
func compiledSQL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}
