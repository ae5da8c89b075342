package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitProblems, ExitCode(&ExitCodeError{Code: ExitProblems}))
	assert.Equal(t, ExitFatal, ExitCode(errors.New("boom")))
}
