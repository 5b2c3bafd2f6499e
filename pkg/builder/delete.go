package builder

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/prompt"
	"github.com/propsync/propsync/pkg/catalog"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/properties"
)

// DeleteAll removes the property documents of the selected resources
// after listing them and getting explicit confirmation. Declining leaves
// everything in place.
func DeleteAll(resources []catalog.ResourceDescriptor, projectPath string, prompter prompt.Prompter, logger *zerolog.Logger) error {
	var paths []string
	for _, desc := range resources {
		path := desc.PropertyPath(projectPath)
		if properties.Exists(path) {
			paths = append(paths, path)
		}
	}

	logger.Info().Msgf("%d of %d resources have existing property files", len(paths), len(resources))
	if len(paths) == 0 {
		logger.Info().Msg("There are no files to delete")
		return nil
	}

	confirmed, err := prompter.Confirm(
		"The following files will be deleted:\n\n" + strings.Join(paths, "\n") +
			"\n\nDelete these " + strconv.Itoa(len(paths)) + " file(s)?")
	if err != nil {
		return err
	}
	if !confirmed {
		logger.Info().Msg("Deletion aborted")
		return nil
	}

	for _, path := range paths {
		if err := properties.Delete(path); err != nil {
			return errors.WrapIO("delete", path, err)
		}
	}
	logger.Info().Msgf("Deleted %d file(s)", len(paths))
	return nil
}
