// Package builder coordinates property document builds across many
// resources with bounded parallelism. Each resource's build is isolated:
// one failure never cancels or blocks the others, and every outcome is
// reported in a deterministic end-of-run summary.
package builder

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/internal/prompt"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/introspect"
	"github.com/propsync/propsync/pkg/properties"
	"github.com/propsync/propsync/pkg/reconcile"
)

// IntrospectFunc resolves a resource's live column list. The default
// implementation asks the warehouse through dbt; tests substitute
// canned columns.
type IntrospectFunc func(ctx context.Context, desc catalog.ResourceDescriptor) ([]string, error)

// Coordinator runs the reconcile-and-write operation for a set of
// resources through a bounded worker pool.
type Coordinator struct {
	Runner   dbt.Runner
	Project  *catalog.Project
	Options  dbt.Options
	Prompter prompt.Prompter
	Logger   *zerolog.Logger

	// Threads is the worker budget. Values below 1 are treated as 1.
	Threads int

	// Introspect overrides warehouse introspection when non-nil.
	Introspect IntrospectFunc
}

// Result is the outcome of one resource's build, carrying its own
// metadata so no shared bookkeeping map is needed across workers.
type Result struct {
	// Index is the submission position, used to re-sort failure
	// diagnostics deterministically.
	Index    int
	Resource catalog.ResourceDescriptor
	Path     string
	Err      error
}

// Summary aggregates the outcome of a coordinator run. Results are in
// submission order regardless of completion order.
type Summary struct {
	Total     int
	Successes int
	Failures  int
	Results   []Result
}

// Run builds or updates the property document of every resource, with at
// most Threads concurrent introspection-and-write operations in flight.
// Per-resource errors are captured into the summary, never returned; the
// returned error covers only up-front failures such as a declined macro
// installation.
func (c *Coordinator) Run(ctx context.Context, resources []catalog.ResourceDescriptor) (*Summary, error) {
	summary := &Summary{
		Total:   len(resources),
		Results: make([]Result, len(resources)),
	}
	if len(resources) == 0 {
		return summary, nil
	}

	// The helper macro is checked once, up front, so the interactive
	// install flow never interleaves with concurrent work.
	if err := c.ensureMacro(ctx); err != nil {
		return nil, err
	}

	threads := c.Threads
	if threads < 1 {
		threads = 1
	}

	results := make(chan Result, len(resources))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, threads)

	for i, desc := range resources {
		wg.Add(1)
		go func(index int, desc catalog.ResourceDescriptor) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			path := desc.PropertyPath(c.Project.Path)
			c.Logger.Info().Msgf("Starting: %d/%d... %s", index+1, len(resources), desc.Name)

			err := c.buildOne(ctx, desc, path)
			results <- Result{Index: index, Resource: desc, Path: path, Err: err}
		}(i, desc)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Progress events arrive in completion order.
	done := 0
	for r := range results {
		done++
		summary.Results[r.Index] = r
		if r.Err != nil {
			summary.Failures++
			c.Logger.Error().Msgf("Failed: %d/%d... %s", r.Index+1, len(resources), r.Resource.Name)
		} else {
			summary.Successes++
			c.Logger.Info().Msgf("Completed: %d/%d... %s", r.Index+1, len(resources), r.Resource.Name)
		}
	}

	// Failure details are dumped after the pool drains, re-sorted into
	// submission order so operators get deterministic diagnostics.
	if summary.Failures > 0 {
		for _, r := range summary.Results {
			if r.Err != nil {
				c.Logger.Error().
					Str("resource", r.Resource.Name).
					Str("document", r.Path).
					Msg(r.Err.Error())
			}
		}
	}

	c.Logger.Info().
		Int("total", summary.Total).
		Int("successes", summary.Successes).
		Int("failures", summary.Failures).
		Msg("Build finished")
	return summary, nil
}

// buildOne reconciles and persists a single resource's document.
func (c *Coordinator) buildOne(ctx context.Context, desc catalog.ResourceDescriptor, path string) error {
	columns, err := c.introspect(ctx, desc)
	if err != nil {
		return err
	}

	doc, err := reconcile.Reconcile(path, desc, columns)
	if err != nil {
		return err
	}
	return properties.Write(path, doc)
}

// introspect resolves columns through the override or the warehouse.
func (c *Coordinator) introspect(ctx context.Context, desc catalog.ResourceDescriptor) ([]string, error) {
	if c.Introspect != nil {
		return c.Introspect(ctx, desc)
	}
	return introspect.Columns(ctx, c.Runner, c.Project, desc, c.Options)
}

// ensureMacro verifies the helper macro is installed, offering the
// interactive installation flow when it is not. Skipped entirely when
// introspection is overridden (nothing will call the macro).
func (c *Coordinator) ensureMacro(ctx context.Context) error {
	if c.Introspect != nil {
		return nil
	}

	exists, err := dbt.MacroExists(ctx, c.Runner, c.Options)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return dbt.InstallMacro(c.Prompter, c.Project.MacroPaths, c.Logger)
}
