package launcher

import (
	"errors"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

type State int

const (
	StateStart State = iota
	StatePlatformResolved
	StateProjectLocated
	StateOutputCleared
	StateBuildInvoked
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlatformResolved:
		return "platform resolved"
	case StateProjectLocated:
		return "project located"
	case StateOutputCleared:
		return "output cleared"
	case StateBuildInvoked:
		return "build invoked"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Request is the build request assembled during a run.
type Request struct {
	HostOS            string
	Target            Target
	SourceProjectPath string
	OutputPath        string
}

// Launcher moves through the build steps in order. Nothing on disk is
// touched until both the platform and the source project have resolved.
type Launcher struct {
	Config  *Config
	Builder Builder
	// Clean empties the output directory. Defaults to PrepareOutputDirectory.
	Clean func(outputPath string) error

	State   State
	Request Request
	Err     *StepError
}

func New(conf *Config, builder Builder) *Launcher {
	if builder == nil {
		builder = NewDotnetBuilder(conf)
	}
	return &Launcher{
		Config:  conf,
		Builder: builder,
		Clean:   PrepareOutputDirectory,
		State:   StateStart,
	}
}

func (l *Launcher) fail(step Step, err error, code int) error {
	l.State = StateFailed
	l.Err = &StepError{Step: step, Err: err, Code: code}
	return l.Err
}

// Run executes one build. The returned error, if any, is a *StepError; use
// ExitCode to turn it into a process exit status.
func (l *Launcher) Run() error {
	if l.State != StateStart {
		return fmt.Errorf("launcher already used (state: %s)", l.State)
	}
	conf := l.Config
	l.Request = Request{
		HostOS: conf.HostOS,
		Target: TargetUnsupported,
	}

	target, err := ResolveTarget(conf.HostOS)
	if err != nil {
		return l.fail(StepResolvePlatform, err, ExitUnsupported)
	}
	l.Request.Target = target
	l.State = StatePlatformResolved
	log.Infof("Building for %s (%s)", target, conf.HostOS)

	project, err := LocateSourceProject(conf.SourceProjectPathOverride, conf.DefaultSourceProjectPath)
	if err != nil {
		return l.fail(StepLocateProject, err, ExitProjectNotFound)
	}
	l.Request.SourceProjectPath = project
	l.State = StateProjectLocated
	log.Infof("Using source project at %s", project)

	output, err := filepath.Abs(conf.OutputPath)
	if err != nil {
		return l.fail(StepWorkingDirectory, fmt.Errorf("%w: %v", ErrWorkingDirectory, err), ExitWorkingDirectory)
	}
	l.Request.OutputPath = output

	log.Infof("Clearing %s", output)
	clean := l.Clean
	if clean == nil {
		clean = PrepareOutputDirectory
	}
	if err := clean(output); err != nil {
		if !errors.Is(err, ErrCleanupFailure) {
			err = fmt.Errorf("%w: %v", ErrCleanupFailure, err)
		}
		return l.fail(StepPrepareOutput, err, ExitCleanupFailure)
	}
	l.State = StateOutputCleared

	log.Info("Running build")
	code, err := l.Builder.Build(l.Request)
	if err != nil {
		if code == 0 {
			code = ExitToolNotStarted
		}
		return l.fail(StepInvokeBuild, err, code)
	}
	l.State = StateBuildInvoked
	if code != 0 {
		return l.fail(StepInvokeBuild, fmt.Errorf("%w: exited with status %d", ErrDelegatedBuild, code), code)
	}

	l.State = StateDone
	log.Infof("Build output written to %s", output)
	return nil
}
