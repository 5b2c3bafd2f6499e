package migrate

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// Summary aggregates the outcome of a migration run.
type Summary struct {
	// Migrated counts resources relocated into their own document.
	Migrated int

	// Failed counts resources whose migration was skipped on error.
	Failed int

	// SourcesRewritten counts source documents rewritten with their
	// remaining resources.
	SourcesRewritten int

	// SourcesDeleted counts source documents removed because only the
	// version marker remained.
	SourcesDeleted int
}

// Run executes the migration plan. Each source document group is
// processed independently: a failed target write is logged and skipped
// without blocking its siblings or the cleanup of successes.
func Run(plan *Plan, logger *zerolog.Logger) *Summary {
	summary := &Summary{}
	for _, sourcePath := range plan.Sources {
		migrateGroup(sourcePath, plan.Members[sourcePath], summary, logger)
	}

	logger.Info().
		Int("migrated", summary.Migrated).
		Int("failed", summary.Failed).
		Int("sources_rewritten", summary.SourcesRewritten).
		Int("sources_deleted", summary.SourcesDeleted).
		Msg("Migration finished")
	return summary
}

// migrateGroup splits the resources of one source document into
// per-resource documents and cleans up the source.
func migrateGroup(sourcePath string, members []Member, summary *Summary, logger *zerolog.Logger) {
	doc, err := properties.Read(sourcePath)
	if err != nil || doc == nil {
		logger.Error().Str("document", sourcePath).AnErr("error", err).
			Msg("Cannot parse source document, skipping group")
		summary.Failed += len(members)
		return
	}

	// Indices to remove from each section, collected first and deleted
	// in descending order afterwards so earlier removals don't shift
	// the later ones.
	removals := make(map[properties.ResourceType][]int)
	sourceChanged := false

	for _, member := range members {
		desc := member.Resource
		if member.TargetPath == sourcePath {
			// Already living in its per-resource document.
			continue
		}

		section := doc.Section(desc.Type)
		index := -1
		for i, r := range section {
			if r.Name == desc.Name {
				index = i
				break
			}
		}
		if index < 0 {
			logger.Warn().Str("resource", desc.Name).Str("document", sourcePath).
				Msg("Resource not found in its source document, skipping")
			summary.Failed++
			continue
		}

		// The sub-record moves verbatim so every manual field survives.
		target := &properties.Document{Version: doc.Version}
		target.SetSection(desc.Type, []*properties.Resource{section[index]})

		if err := properties.WriteNew(member.TargetPath, target); err != nil {
			logger.Error().Err(errors.NewMigrationError("write", desc.Name, member.TargetPath, err)).
				Msg("Target write failed, resource stays in source document")
			summary.Failed++
			continue
		}

		logger.Info().Str("resource", desc.Name).
			Str("from", sourcePath).Str("to", member.TargetPath).
			Msg("Migrated resource")
		removals[desc.Type] = append(removals[desc.Type], index)
		summary.Migrated++
		sourceChanged = true
	}

	if !sourceChanged {
		return
	}

	for rt, indices := range removals {
		section := doc.Section(rt)
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		for _, index := range indices {
			section = append(section[:index], section[index+1:]...)
		}
		doc.SetSection(rt, section)
	}

	if doc.Empty() {
		if err := properties.Delete(sourcePath); err != nil {
			logger.Error().Err(errors.NewMigrationError("delete", "", sourcePath, err)).
				Msg("Could not delete emptied source document")
			return
		}
		summary.SourcesDeleted++
		logger.Info().Str("document", sourcePath).Msg("Deleted emptied source document")
		return
	}

	if err := properties.Write(sourcePath, doc); err != nil {
		logger.Error().Err(errors.NewMigrationError("rewrite", "", sourcePath, err)).
			Msg("Could not rewrite source document")
		return
	}
	summary.SourcesRewritten++
}
