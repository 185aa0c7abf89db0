package launcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
	log "github.com/sirupsen/logrus"
)

// Builder runs the external build for a resolved request. The returned code
// is the exit status of the build process; err is set only when the process
// could not be run at all.
type Builder interface {
	Build(req Request) (code int, err error)
}

// DotnetBuilder publishes a self-contained binary with `dotnet publish`.
type DotnetBuilder struct {
	Tool          string
	Project       string
	Configuration string
	Env           map[string]string
	Stdout        io.Writer
	Stderr        io.Writer
}

func NewDotnetBuilder(conf *Config) *DotnetBuilder {
	return &DotnetBuilder{
		Tool:          conf.Tool,
		Project:       conf.Project,
		Configuration: conf.Configuration,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

func (b *DotnetBuilder) Args(req Request) []string {
	args := []string{"publish"}
	if b.Project != "" {
		args = append(args, b.Project)
	}
	if b.Configuration != "" {
		args = append(args, "-c", b.Configuration)
	}
	return append(args,
		"--self-contained",
		"--runtime", string(req.Target),
		"--output", req.OutputPath,
	)
}

// Build runs the tool with the source project as its working directory.
// Arguments are passed through verbatim.
func (b *DotnetBuilder) Build(req Request) (int, error) {
	tool, err := b.lookupTool()
	if err != nil {
		return ExitToolNotStarted, err
	}
	if info, err := os.Stat(req.SourceProjectPath); err != nil {
		return ExitWorkingDirectory, fmt.Errorf("%w: %v", ErrWorkingDirectory, err)
	} else if !info.IsDir() {
		return ExitWorkingDirectory, fmt.Errorf("%w: %s is not a directory", ErrWorkingDirectory, req.SourceProjectPath)
	}

	args := b.Args(req)
	log.Debugf("Running %s %s in %s", tool, strings.Join(args, " "), req.SourceProjectPath)
	cmd := exec.Command(tool, args...)
	cmd.Dir = req.SourceProjectPath
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if len(b.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range b.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}
	err = cmd.Run()
	if !sh.CmdRan(err) {
		return ExitToolNotStarted, fmt.Errorf("%w: %s: %v", ErrToolNotFound, b.Tool, err)
	}
	return sh.ExitStatus(err), nil
}

func (b *DotnetBuilder) lookupTool() (string, error) {
	tool, err := exec.LookPath(b.Tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, b.Tool)
	}
	// Relative paths would resolve against the source project directory.
	if strings.ContainsRune(tool, filepath.Separator) && !filepath.IsAbs(tool) {
		if abs, err := filepath.Abs(tool); err == nil {
			tool = abs
		}
	}
	return tool, nil
}
