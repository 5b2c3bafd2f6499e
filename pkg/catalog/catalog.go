package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// Selection narrows which resources "dbt ls" returns. All fields are
// optional; with no resource selector set, the whole project is selected
// across every supported resource type.
type Selection struct {
	ResourceType string
	Select       string
	Models       string
	Exclude      string
	Selector     string
}

// Validate checks the selection before any I/O happens. An unsupported
// resource type aborts the whole invocation.
func (s Selection) Validate() error {
	if s.ResourceType == "" {
		return nil
	}
	_, err := properties.ParseResourceType(s.ResourceType)
	return err
}

// hasResourceSelector reports whether any resource-selecting argument is set.
func (s Selection) hasResourceSelector() bool {
	return s.ResourceType != "" || s.Select != "" || s.Models != "" ||
		s.Exclude != "" || s.Selector != ""
}

// lsRecord is the JSON shape of one "dbt ls --output json" result line.
type lsRecord struct {
	ResourceType     string `json:"resource_type"`
	Name             string `json:"name"`
	OriginalFilePath string `json:"original_file_path"`
	Config           struct {
		Materialized string `json:"materialized"`
	} `json:"config"`
}

// List selects resources via "dbt ls" and returns their descriptors in
// warehouse-reported order. Results are filtered to supported resource
// types whose defining files exist on disk.
func List(ctx context.Context, runner dbt.Runner, project *Project, sel Selection, opts dbt.Options, logger *zerolog.Logger) ([]ResourceDescriptor, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	logger.Info().Msg("Searching for matching resources...")

	args := []string{"--log-format", "json", "ls"}
	args = append(args, opts.CLIArgs()...)
	args = append(args, opts.SelectionArgs()...)
	args = appendSelectionArgs(args, project, sel)
	args = append(args, "--output", "json")

	output, err := runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var results []ResourceDescriptor
	for _, line := range dbt.ParseLogLines(output) {
		// With --log-format json every line is JSON, but only actual
		// results carry a resource_type field. Anything else is dbt
		// chatter such as deprecation warnings.
		if line.Record == nil || line.Record["resource_type"] == nil {
			logger.Warn().Str("line", line.Raw).Msg(`Extra output from "dbt ls" command`)
			continue
		}

		var record lsRecord
		if err := json.Unmarshal([]byte(line.Raw), &record); err != nil {
			return nil, errors.NewParseError("json", "unreadable dbt ls result", line.Raw)
		}

		rt := properties.ResourceType(record.ResourceType)
		if !rt.Supported() {
			continue
		}
		if _, err := os.Stat(filepath.Join(project.Path, record.OriginalFilePath)); err != nil {
			continue
		}

		results = append(results, ResourceDescriptor{
			Name:         record.Name,
			Type:         rt,
			Materialized: record.Config.Materialized,
			Location:     record.OriginalFilePath,
		})
	}

	logger.Info().Msgf("Found %d matching resources in dbt project %q", len(results), project.Name)
	for _, r := range results {
		logger.Debug().Str("resource", r.Name).Str("location", r.Location).Send()
	}
	return results, nil
}

// appendSelectionArgs renders the selection as dbt ls flags. With no
// resource selector present, the project name and every supported
// resource type are selected.
func appendSelectionArgs(args []string, project *Project, sel Selection) []string {
	if !sel.hasResourceSelector() {
		args = append(args, "--select", project.Name)
		for _, rt := range properties.SupportedTypes() {
			args = append(args, "--resource-type", rt.String())
		}
		return args
	}

	if sel.ResourceType != "" {
		args = append(args, "--resource-type", sel.ResourceType)
	}
	if sel.Select != "" {
		args = append(args, "--select", sel.Select)
	}
	if sel.Models != "" {
		args = append(args, "--models", sel.Models)
	}
	if sel.Exclude != "" {
		args = append(args, "--exclude", sel.Exclude)
	}
	if sel.Selector != "" {
		args = append(args, "--selector", sel.Selector)
	}
	return args
}
