package prompt

// Script is a Prompter with pre-programmed answers, for tests and for
// non-interactive runs that auto-accept or auto-decline.
type Script struct {
	Confirms []bool
	Choices  []int
	Inputs   []string

	// Asked records every message shown, in order.
	Asked []string
}

// Confirm pops the next scripted yes/no answer. Running out of answers
// yields false.
func (s *Script) Confirm(message string) (bool, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Confirms) == 0 {
		return false, nil
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

// Choose pops the next scripted choice index. Running out of choices
// yields 0.
func (s *Script) Choose(message string, options []string) (int, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Choices) == 0 {
		return 0, nil
	}
	choice := s.Choices[0]
	s.Choices = s.Choices[1:]
	return choice, nil
}

// Input pops the next scripted text answer.
func (s *Script) Input(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Inputs) == 0 {
		return "", nil
	}
	answer := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return answer, nil
}
