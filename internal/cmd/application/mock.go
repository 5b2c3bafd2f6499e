package application

import (
	"github.com/rs/zerolog"

	"github.com/propsync/propsync/internal/dbt"
	"github.com/propsync/propsync/internal/prompt"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    RunnerFunc: func() dbt.Runner {
//	        return cannedRunner
//	    },
//	}
//	cmd := update.NewCommand(mock)
//	// ... test command
type Mock struct {
	LoggerFunc   func() *zerolog.Logger
	RunnerFunc   func() dbt.Runner
	PrompterFunc func() prompt.Prompter
	VersionFunc  func() string
	CommitFunc   func() string
	DateFunc     func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	nop := zerolog.Nop()
	return &nop
}

// Runner returns a runner using the mock function or nil.
func (m *Mock) Runner() dbt.Runner {
	if m.RunnerFunc != nil {
		return m.RunnerFunc()
	}
	return nil
}

// Prompter returns a prompter using the mock function or an empty script.
func (m *Mock) Prompter() prompt.Prompter {
	if m.PrompterFunc != nil {
		return m.PrompterFunc()
	}
	return &prompt.Script{}
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the build date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}
