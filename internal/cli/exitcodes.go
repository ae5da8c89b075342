// Package cli provides the Cobra command structure for gojslint.
package cli

// Exit codes returned by the CLI.
const (
	// ExitOK means no problems were found.
	ExitOK = 0

	// ExitProblems means lint problems were found.
	ExitProblems = 1

	// ExitFatal means the run itself failed: unreadable input, invalid
	// configuration, or a rule crash.
	ExitFatal = 2
)

// ExitCodeError carries an exit code through Cobra's error return.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return "exit"
}

// ExitCode extracts the process exit code from a command error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if coded, ok := err.(*ExitCodeError); ok {
		return coded.Code
	}
	return ExitFatal
}
