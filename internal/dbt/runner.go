// Package dbt wraps invocations of the dbt CLI. It provides a small
// Runner abstraction for executing commands and capturing their output,
// helpers for building CLI arguments, the run-operation primitive used
// for warehouse introspection, and management of the helper macro the
// introspection depends on.
package dbt

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/propsync/propsync/pkg/errors"
)

// DefaultBinary is the dbt executable resolved from PATH.
const DefaultBinary = "dbt"

// Runner executes a dbt command and captures its stdout. The single
// implementation shells out to the dbt binary; tests substitute canned
// output.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs the dbt binary as a subprocess.
type ExecRunner struct {
	// Binary is the dbt executable. Empty means DefaultBinary.
	Binary string

	// Dir is the working directory for the subprocess. Empty means the
	// current directory.
	Dir string
}

// Run executes dbt with the given arguments and returns its stdout.
// A non-zero exit yields a ProcessError carrying the captured output,
// which downstream code inspects to classify the failure.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := stdout.String()
		if stderr.Len() > 0 {
			output += stderr.String()
		}
		return stdout.String(), errors.NewProcessError(
			"dbt invocation",
			binary+" "+strings.Join(args, " "),
			output,
			err,
		)
	}
	return stdout.String(), nil
}

// LogLine is one line of dbt output. With --log-format json most lines
// parse to a structured record; Record is nil for lines that are not
// valid JSON.
type LogLine struct {
	Raw    string
	Record map[string]any
}

// ParseLogLines splits raw dbt output into lines and decodes each JSON
// log record that it can.
func ParseLogLines(output string) []LogLine {
	var lines []LogLine
	for _, raw := range strings.Split(output, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := LogLine{Raw: raw}
		var record map[string]any
		if err := json.Unmarshal([]byte(raw), &record); err == nil {
			line.Record = record
		}
		lines = append(lines, line)
	}
	return lines
}
