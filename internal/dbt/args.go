package dbt

// Options carries connection and project arguments passed through to
// every dbt command. Empty fields are omitted from the command line so
// dbt falls back to its own defaults and profile resolution. State is a
// node-selection argument: only ls-style commands accept it, so CLIArgs
// leaves it out.
type Options struct {
	ProjectDir  string
	ProfilesDir string
	Profile     string
	Target      string
	Vars        string
	State       string
}

// globalArgs are prepended to every dbt command. The JSON log format is
// what makes dbt output machine-parseable across versions.
func globalArgs() []string {
	return []string{"--log-format", "json"}
}

// CLIArgs renders the options as dbt command-line flags, minus State.
func (o Options) CLIArgs() []string {
	var args []string
	args = appendFlag(args, "--project-dir", o.ProjectDir)
	args = appendFlag(args, "--profiles-dir", o.ProfilesDir)
	args = appendFlag(args, "--profile", o.Profile)
	args = appendFlag(args, "--target", o.Target)
	args = appendFlag(args, "--vars", o.Vars)
	return args
}

// SelectionArgs renders the selection-only options accepted by ls-style
// commands.
func (o Options) SelectionArgs() []string {
	return appendFlag(nil, "--state", o.State)
}

func appendFlag(args []string, flag, value string) []string {
	if value == "" {
		return args
	}
	return append(args, flag, value)
}
