// Package fill propagates existing column descriptions from documented
// resources onto matching undocumented columns elsewhere in the project.
// It runs in two passes: collect every description already written for a
// column name, then apply them to target columns, asking the user to pick
// when different resources disagree about what a column name means.
package fill

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/prompt"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// candidate is one distinct description recorded for a column name,
// along with the resources that contributed it.
type candidate struct {
	Description string
	Resources   []string
}

// Engine propagates descriptions from a source selection to a target
// selection.
type Engine struct {
	ProjectPath string
	Prompter    prompt.Prompter
	Logger      *zerolog.Logger
}

// Stats summarizes a fill run.
type Stats struct {
	// Described counts columns that received a description.
	Described int

	// Undocumented counts columns that still lack one.
	Undocumented int

	// UndocumentedColumns itemizes the still-undocumented columns as
	// "resource.column", for verbose reporting.
	UndocumentedColumns []string
}

// Run collects descriptions from the source selection and applies them to
// undocumented columns of the target selection, persisting each updated
// document after all of its columns are processed.
func (e *Engine) Run(source, target []catalog.ResourceDescriptor) (*Stats, error) {
	candidates, err := e.collect(source)
	if err != nil {
		return nil, err
	}
	return e.apply(target, candidates)
}

// collect gathers every non-empty column description in the source
// selection, grouped by column name. A column name may accumulate several
// distinct descriptions contributed by different resources.
func (e *Engine) collect(source []catalog.ResourceDescriptor) (map[string][]*candidate, error) {
	candidates := make(map[string][]*candidate)

	for _, desc := range source {
		_, resource, _, err := e.readResource(desc)
		if err != nil {
			return nil, err
		}
		if resource == nil {
			continue
		}

		for _, col := range resource.Columns {
			if col.Description == "" {
				continue
			}
			merged := false
			for _, cand := range candidates[col.Name] {
				if cand.Description == col.Description {
					cand.Resources = append(cand.Resources, desc.Name)
					merged = true
					break
				}
			}
			if !merged {
				candidates[col.Name] = append(candidates[col.Name], &candidate{
					Description: col.Description,
					Resources:   []string{desc.Name},
				})
			}
		}
	}
	return candidates, nil
}

// apply walks the target selection and fills in descriptions for columns
// that lack one: automatically when exactly one candidate exists,
// interactively when several do, and not at all when none do.
func (e *Engine) apply(target []catalog.ResourceDescriptor, candidates map[string][]*candidate) (*Stats, error) {
	stats := &Stats{}

	for _, desc := range target {
		doc, resource, path, err := e.readResource(desc)
		if err != nil {
			return nil, err
		}
		if resource == nil {
			continue
		}

		changed := false
		for _, col := range resource.Columns {
			if col.Description != "" {
				continue
			}

			options := candidates[col.Name]
			switch {
			case len(options) == 0:
				stats.Undocumented++
				stats.UndocumentedColumns = append(stats.UndocumentedColumns, desc.Name+"."+col.Name)
			case len(options) == 1:
				col.Description = options[0].Description
				stats.Described++
				changed = true
			default:
				applied, err := e.resolveConflict(desc.Name, col, options)
				if err != nil {
					return nil, err
				}
				if applied {
					stats.Described++
					changed = true
				} else {
					stats.Undocumented++
					stats.UndocumentedColumns = append(stats.UndocumentedColumns, desc.Name+"."+col.Name)
				}
			}
		}

		if changed {
			if err := properties.Write(path, doc); err != nil {
				return nil, err
			}
		}
	}

	e.Logger.Info().
		Int("described", stats.Described).
		Int("undocumented", stats.Undocumented).
		Msg("Fill finished")
	for _, name := range stats.UndocumentedColumns {
		e.Logger.Debug().Str("column", name).Msg("Still undocumented")
	}
	return stats, nil
}

// resolveConflict presents the distinct candidate descriptions for a
// column and applies the chosen one, or none when the user skips. The
// prompt re-asks until a listed option is picked.
func (e *Engine) resolveConflict(resourceName string, col *properties.Column, options []*candidate) (bool, error) {
	labels := make([]string, 0, len(options)+1)
	for _, cand := range options {
		label := fmt.Sprintf("%q (from %s", cand.Description, cand.Resources[0])
		if extra := len(cand.Resources) - 1; extra > 0 {
			label += fmt.Sprintf(" and %d more", extra)
		}
		label += ")"
		labels = append(labels, label)
	}
	labels = append(labels, "skip this column")

	choice, err := e.Prompter.Choose(
		fmt.Sprintf("Multiple descriptions found for %s.%s — pick one", resourceName, col.Name),
		labels,
	)
	if err != nil {
		return false, err
	}
	if choice >= len(options) {
		return false, nil
	}
	col.Description = options[choice].Description
	return true, nil
}

// readResource loads the resource's entry from its existing property
// document. Resources without a document (or whose document does not
// mention them) return a nil entry and are skipped, as are resources
// whose document cannot be parsed.
func (e *Engine) readResource(desc catalog.ResourceDescriptor) (*properties.Document, *properties.Resource, string, error) {
	path := desc.PropertyPath(e.ProjectPath)
	doc, err := properties.Read(path)
	if err != nil {
		var docErr *errors.DocumentError
		if errors.As(err, &docErr) {
			e.Logger.Warn().Str("document", path).
				Msg("Skipping malformed property document")
			return nil, nil, path, nil
		}
		return nil, nil, path, err
	}
	if doc == nil {
		return nil, nil, path, nil
	}
	return doc, doc.Resource(desc.Type, desc.Name), path, nil
}
