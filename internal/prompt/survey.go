package prompt

import (
	"github.com/AlecAivazis/survey/v2"
)

// Terminal is a Prompter backed by interactive terminal prompts.
type Terminal struct{}

// NewTerminal creates a terminal-backed Prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Confirm asks a yes/no question on the terminal.
func (t *Terminal) Confirm(message string) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{Message: message}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// Choose presents a selection list on the terminal and returns the chosen
// index. Invalid input is handled by the prompt itself, which keeps asking
// until a listed option is picked.
func (t *Terminal) Choose(message string, options []string) (int, error) {
	var selected int
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return 0, err
	}
	return selected, nil
}

// Input asks for a line of text on the terminal.
func (t *Terminal) Input(message string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return answer, nil
}
