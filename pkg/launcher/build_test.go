package launcher_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kralicky/papyrusctl/pkg/launcher"
)

var _ = Describe("DotnetBuilder", func() {
	var (
		root   string
		source string
		req    launcher.Request
	)
	BeforeEach(func() {
		root = tempDir()
		source = filepath.Join(root, "papyruscs")
		Expect(os.Mkdir(source, 0755)).To(Succeed())
		req = launcher.Request{
			HostOS:            "linux-gnu",
			Target:            launcher.TargetLinuxX64,
			SourceProjectPath: source,
			OutputPath:        filepath.Join(root, "papyrusbin"),
		}
	})
	AfterEach(func() {
		os.RemoveAll(root)
	})

	fakeTool := func(body string) string {
		if runtime.GOOS == "windows" {
			Skip("shell scripts are not executable on windows")
		}
		path := filepath.Join(root, "fake-dotnet")
		Expect(os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755)).To(Succeed())
		return path
	}

	It("should pass the target and output path to dotnet publish", func() {
		b := launcher.NewDotnetBuilder(&launcher.Config{
			Tool:          "dotnet",
			Project:       "PapyrusCs",
			Configuration: "Release",
		})
		Expect(b.Args(req)).To(Equal([]string{
			"publish", "PapyrusCs",
			"-c", "Release",
			"--self-contained",
			"--runtime", "linux-x64",
			"--output", req.OutputPath,
		}))
	})
	It("should run inside the source project and restore the working directory", func() {
		var stdout bytes.Buffer
		b := &launcher.DotnetBuilder{
			Tool:   fakeTool(`pwd; echo "$@"`),
			Stdout: &stdout,
			Stderr: &stdout,
		}
		before, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		code, err := b.Build(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(0))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(Equal(source))
		Expect(lines[1]).To(ContainSubstring("--runtime linux-x64"))
		after, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
	})
	It("should pass paths containing $ through unexpanded", func() {
		var stdout bytes.Buffer
		b := &launcher.DotnetBuilder{
			Tool:   fakeTool(`for a in "$@"; do echo "$a"; done`),
			Stdout: &stdout,
			Stderr: &stdout,
		}
		req.OutputPath = filepath.Join(root, "bin$HOME")
		code, err := b.Build(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(0))
		Expect(strings.Split(strings.TrimSpace(stdout.String()), "\n")).To(ContainElement(req.OutputPath))
	})
	It("should report the exit status of the tool", func() {
		b := &launcher.DotnetBuilder{
			Tool:   fakeTool("exit 7"),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}
		code, err := b.Build(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(7))
	})
	It("should fail when the tool is not installed", func() {
		b := &launcher.DotnetBuilder{Tool: "papyrusctl-no-such-tool"}
		code, err := b.Build(req)
		Expect(errors.Is(err, launcher.ErrToolNotFound)).To(BeTrue())
		Expect(code).To(Equal(launcher.ExitToolNotStarted))
	})
	It("should fail when the source project cannot be entered", func() {
		b := &launcher.DotnetBuilder{Tool: fakeTool("exit 0")}
		req.SourceProjectPath = filepath.Join(root, "gone")
		code, err := b.Build(req)
		Expect(errors.Is(err, launcher.ErrWorkingDirectory)).To(BeTrue())
		Expect(code).To(Equal(launcher.ExitWorkingDirectory))
	})
})
