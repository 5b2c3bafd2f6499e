package dbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLines(t *testing.T) {
	output := `{"code": "A001", "msg": "Running with dbt"}
plain text line

{"info": {"code": "I062"}}`

	lines := ParseLogLines(output)
	require.Len(t, lines, 3)

	assert.NotNil(t, lines[0].Record)
	assert.Equal(t, "A001", lines[0].Record["code"])

	assert.Nil(t, lines[1].Record)
	assert.Equal(t, "plain text line", lines[1].Raw)

	assert.NotNil(t, lines[2].Record)
}

func TestParseLogLinesEmpty(t *testing.T) {
	assert.Empty(t, ParseLogLines(""))
	assert.Empty(t, ParseLogLines("\n\n"))
}

func TestCLIArgs(t *testing.T) {
	opts := Options{
		ProjectDir: "/proj",
		Target:     "dev",
		Vars:       "{'key': 'value'}",
	}

	assert.Equal(t, []string{
		"--project-dir", "/proj",
		"--target", "dev",
		"--vars", "{'key': 'value'}",
	}, opts.CLIArgs())
}

func TestCLIArgsExcludesState(t *testing.T) {
	// --state is a selection argument; run-operation style commands built
	// from CLIArgs must not carry it.
	opts := Options{Target: "dev", State: "prod-artifacts"}

	assert.Equal(t, []string{"--target", "dev"}, opts.CLIArgs())
	assert.Equal(t, []string{"--state", "prod-artifacts"}, opts.SelectionArgs())
}

func TestCLIArgsEmpty(t *testing.T) {
	assert.Empty(t, Options{}.CLIArgs())
	assert.Empty(t, Options{}.SelectionArgs())
}
