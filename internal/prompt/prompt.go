// Package prompt defines the interactive confirmation capability used by
// destructive or ambiguous operations. Callers depend on the Prompter
// interface so commands stay testable and a non-interactive mode stays
// possible; the default implementation is terminal-based.
package prompt

// Prompter gates destructive or ambiguous actions behind user input.
type Prompter interface {
	// Confirm asks a yes/no question and returns the answer.
	Confirm(message string) (bool, error)

	// Choose presents options and returns the index of the selection.
	// Implementations re-prompt until a valid option is chosen.
	Choose(message string, options []string) (int, error)

	// Input asks for a free-form line of text.
	Input(message string) (string, error)
}
