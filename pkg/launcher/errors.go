package launcher

import (
	"errors"
	"fmt"
)

var ErrWorkingDirectory = errors.New("cannot establish working directory")

var ErrUnsupportedPlatform = errors.New("unsupported platform")
var ErrPlatformNotImplemented = fmt.Errorf("%w: platform is recognized but not implemented", ErrUnsupportedPlatform)
var ErrPlatformUnknown = fmt.Errorf("%w: platform is unknown", ErrUnsupportedPlatform)

var ErrProjectNotFound = errors.New("source project not found")
var ErrCleanupFailure = errors.New("output directory could not be cleared")
var ErrDelegatedBuild = errors.New("delegated build failed")
var ErrToolNotFound = errors.New("build tool not found")

// Exit statuses reported by the launcher itself. Delegated build failures
// report the exit status of the build tool instead.
const (
	ExitOK               = 0
	ExitUnsupported      = 1
	ExitProjectNotFound  = 1
	ExitWorkingDirectory = 2
	ExitCleanupFailure   = 3
	ExitToolNotStarted   = 127
)

type Step string

const (
	StepWorkingDirectory Step = "establish working directory"
	StepResolvePlatform  Step = "resolve platform"
	StepLocateProject    Step = "locate source project"
	StepPrepareOutput    Step = "prepare output directory"
	StepInvokeBuild      Step = "invoke build"
)

// StepError is the terminal error of a failed run.
type StepError struct {
	Step Step
	Err  error
	Code int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	switch {
	case errors.Is(err, ErrWorkingDirectory):
		return ExitWorkingDirectory
	case errors.Is(err, ErrUnsupportedPlatform):
		return ExitUnsupported
	case errors.Is(err, ErrProjectNotFound):
		return ExitProjectNotFound
	case errors.Is(err, ErrCleanupFailure):
		return ExitCleanupFailure
	}
	return 1
}

func IsUnsupportedPlatform(err error) bool {
	return errors.Is(err, ErrUnsupportedPlatform)
}

func IsProjectNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}

func IsCleanupFailure(err error) bool {
	return errors.Is(err, ErrCleanupFailure)
}

func IsDelegatedBuildFailure(err error) bool {
	return errors.Is(err, ErrDelegatedBuild)
}
