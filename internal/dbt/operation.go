package dbt

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/propsync/propsync/pkg/errors"
)

// RunOperation invokes a dbt macro via "dbt run-operation" and returns
// the parsed log lines of its output. Macro arguments are passed as a
// JSON object via --args, which dbt accepts as YAML.
func RunOperation(ctx context.Context, runner Runner, macroName string, macroArgs map[string]any, opts Options) ([]LogLine, error) {
	encodedArgs, err := json.Marshal(macroArgs)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	args := append(globalArgs(), "run-operation")
	args = append(args, opts.CLIArgs()...)
	args = append(args, macroName, "--args", string(encodedArgs))

	output, err := runner.Run(ctx, args...)
	if err != nil {
		if IsMacroMissing(combinedText(output, err), macroName) {
			return nil, errors.ErrMacroMissing
		}
		return nil, err
	}
	return ParseLogLines(output), nil
}

// IsMacroMissing reports whether dbt output indicates the named macro is
// not installed in the project. dbt has no structured code for this
// condition, so the check is a substring heuristic over the error text.
// It is deliberately isolated here: if dbt ever reports a structured
// error for unknown macros, this one predicate is the only place to
// change.
func IsMacroMissing(text, macroName string) bool {
	lowered := strings.ToLower(text)
	for _, fragment := range []string{"runtime error", "not", "find", strings.ToLower(macroName)} {
		if !strings.Contains(lowered, fragment) {
			return false
		}
	}
	return true
}

// combinedText joins captured output and error text for classification.
func combinedText(output string, err error) string {
	if err == nil {
		return output
	}
	return output + "\n" + err.Error()
}
