package dbt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsync/propsync/internal/prompt"
	"github.com/propsync/propsync/pkg/errors"
	"github.com/propsync/propsync/pkg/logging"
)

func TestMacroExists(t *testing.T) {
	runner := &fakeRunner{output: `{"code": "M011", "msg": "[]"}`}

	exists, err := MacroExists(context.Background(), runner, Options{})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMacroExistsMissing(t *testing.T) {
	runner := &fakeRunner{
		err: errors.New("Runtime Error: dbt could not find a macro with the name '" + MacroName + "'"),
	}

	exists, err := MacroExists(context.Background(), runner, Options{})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMacroExistsOtherFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("Database Error: permission denied")}

	_, err := MacroExists(context.Background(), runner, Options{})
	require.Error(t, err)
}

func TestInstallMacroDefaultLocation(t *testing.T) {
	macroDir := t.TempDir()
	prompter := &prompt.Script{Choices: []int{0}}

	err := InstallMacro(prompter, []string{macroDir}, logging.NewNopLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(macroDir, MacroName+".sql"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "{% macro "+MacroName)
}

func TestInstallMacroAborted(t *testing.T) {
	prompter := &prompt.Script{Choices: []int{1}}

	err := InstallMacro(prompter, []string{t.TempDir()}, logging.NewNopLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAborted)
}

func TestInstallMacroAlternateLocation(t *testing.T) {
	macroDir := t.TempDir()
	outside := filepath.Join(t.TempDir(), "helpers.sql")
	wrongSuffix := filepath.Join(macroDir, "helpers.txt")
	valid := filepath.Join(macroDir, "helpers.sql")

	// Invalid answers are re-asked until a .sql file inside a macro path
	// is named.
	prompter := &prompt.Script{
		Choices: []int{2},
		Inputs:  []string{outside, wrongSuffix, valid},
	}

	err := InstallMacro(prompter, []string{macroDir}, logging.NewNopLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(valid)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{% macro "+MacroName)
}

func TestInstallMacroAppendsToExistingFile(t *testing.T) {
	macroDir := t.TempDir()
	existing := filepath.Join(macroDir, MacroName+".sql")
	require.NoError(t, os.WriteFile(existing, []byte("{% macro mine() %}{% endmacro %}\n"), 0o644))

	prompter := &prompt.Script{Choices: []int{0}}
	require.NoError(t, InstallMacro(prompter, []string{macroDir}, logging.NewNopLogger()))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{% macro mine()")
	assert.Contains(t, string(data), "{% macro "+MacroName)
}
