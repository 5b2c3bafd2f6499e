package dbt

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/prompt"
	"github.com/propsync/propsync/pkg/errors"
)

// MacroName is the helper macro introspection depends on. It logs the
// column list of a query so this tool can read it back out of dbt's
// log stream.
const MacroName = "_log_columns_list"

// macroSource is the macro body installed into the user's project.
const macroSource = `
{# This macro is intended for use by propsync #}
{% macro _log_columns_list(sql=none, resource_name=none) %}
    {% if sql is none %}
        {% set sql = 'select * from ' ~ ref(resource_name) %}
    {% endif %}
    {% if execute %}
        {{ log(get_columns_in_query(sql), info=True) }}
    {% endif %}
{% endmacro %}
`

// MacroSource returns the helper macro body, for installation or for
// printing so users can install it by hand.
func MacroSource() string {
	return macroSource
}

// MacroExists probes the project for the helper macro by running it
// against a zero-row query. Only the macro-missing condition reports
// false; any other failure is returned as-is.
func MacroExists(ctx context.Context, runner Runner, opts Options) (bool, error) {
	probe := map[string]any{
		"sql": "SELECT 1 AS __propsync_check_macro_" + MacroName + " LIMIT 0",
	}
	_, err := RunOperation(ctx, runner, MacroName, probe, opts)
	if err != nil {
		if errors.IsMacroMissingErr(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InstallMacro adds the helper macro to the project after interactive
// confirmation. The default destination is the first configured macro
// path; the user may abort or supply an alternate .sql location inside
// one of the macro paths. Declining returns ErrAborted.
func InstallMacro(prompter prompt.Prompter, macroPaths []string, logger *zerolog.Logger) error {
	if len(macroPaths) == 0 {
		return errors.New("project has no macro paths configured")
	}
	location := filepath.Join(macroPaths[0], MacroName+".sql")

	logger.Warn().Msgf("This command requires the following macro:\n%s", MacroSource())
	choice, err := prompter.Choose(
		"Add the macro "+MacroName+" to "+location+"?",
		[]string{"yes, add it", "no, abort", "use an alternate location"},
	)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		logger.Info().Msg("Macro addition aborted")
		return errors.ErrAborted
	case 2:
		location, err = promptAlternateLocation(prompter, macroPaths, logger)
		if err != nil {
			return err
		}
	}

	return appendMacro(location, logger)
}

// promptAlternateLocation asks for a macro file path until it names a
// .sql file inside one of the project's macro paths.
func promptAlternateLocation(prompter prompt.Prompter, macroPaths []string, logger *zerolog.Logger) (string, error) {
	absPaths := make([]string, 0, len(macroPaths))
	for _, mp := range macroPaths {
		abs, err := filepath.Abs(mp)
		if err != nil {
			return "", errors.WrapIO("resolve", mp, err)
		}
		absPaths = append(absPaths, abs)
	}

	for {
		location, err := prompter.Input(
			"Enter a path (ending in .sql) to a new or existing macro file in one of your macro paths",
		)
		if err != nil {
			return "", err
		}

		parent, err := filepath.Abs(filepath.Dir(location))
		if err != nil {
			return "", errors.WrapIO("resolve", location, err)
		}

		inMacroPath := false
		for _, mp := range absPaths {
			if parent == mp {
				inMacroPath = true
				break
			}
		}
		if !inMacroPath {
			logger.Warn().Msgf("%s is not an existing macro path. Your macro paths are:\n%s",
				parent, strings.Join(absPaths, "\n"))
		}
		if strings.ToLower(filepath.Ext(location)) != ".sql" {
			logger.Warn().Msg(`File suffix must be ".sql"`)
		}
		if inMacroPath && strings.ToLower(filepath.Ext(location)) == ".sql" {
			return location, nil
		}
	}
}

// appendMacro appends the macro body to the chosen file, creating it if
// needed.
func appendMacro(location string, logger *zerolog.Logger) error {
	f, err := os.OpenFile(location, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WrapIO("open", location, err)
	}
	defer f.Close()

	if _, err := f.WriteString(MacroSource()); err != nil {
		return errors.WrapIO("write", location, err)
	}
	logger.Info().Str("location", location).Msgf("Macro %s installed", MacroName)
	return nil
}
