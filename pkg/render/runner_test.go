package render_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kralicky/papyrusctl/pkg/markers"
	"github.com/kralicky/papyrusctl/pkg/remote"
	"github.com/kralicky/papyrusctl/pkg/render"
	"github.com/kralicky/papyrusctl/pkg/webhook"
)

type fakeSource struct {
	calls int
}

func (f *fakeSource) PlayerMarkers() ([]markers.PlayerMarker, error) {
	f.calls++
	m := markers.NewPlayerMarker()
	m.Name = "Steve"
	m.SetUUIDFromName()
	m.SetColor("")
	return []markers.PlayerMarker{*m}, nil
}

type fakeUploader struct {
	full    []string
	players []string
}

func (f *fakeUploader) Upload(dest string) error {
	f.full = append(f.full, dest)
	return nil
}

func (f *fakeUploader) UploadPlayersData(dest string) error {
	f.players = append(f.players, dest)
	return nil
}

type fakeNotifier struct {
	pushed []string
}

func (f *fakeNotifier) Push(dest string) error {
	f.pushed = append(f.pushed, dest)
	return nil
}

var _ = Describe("Runner", func() {
	var (
		root     string
		argsLog  string
		papyrus  string
		def      *render.Definition
		source   *fakeSource
		uploader *fakeUploader
		notifier *fakeNotifier
		runner   *render.Runner
	)

	BeforeEach(func() {
		if runtime.GOOS == "windows" {
			Skip("shell scripts are not executable on windows")
		}
		var err error
		root, err = os.MkdirTemp("", "papyrusctl-runner")
		Expect(err).NotTo(HaveOccurred())
		argsLog = filepath.Join(root, "papyrus.log")
		papyrus = filepath.Join(root, "PapyrusCs")
		script := "#!/bin/sh\necho \"$@\" >> " + argsLog + "\nexit ${PAPYRUS_STUB_STATUS:-0}\n"
		Expect(os.WriteFile(papyrus, []byte(script), 0755)).To(Succeed())

		def = &render.Definition{
			Name:        "Survival",
			World:       filepath.Join(root, "world"),
			Dest:        filepath.Join(root, "dest"),
			Tasks:       []render.Options{{"--dim", "0"}, {"--dim", "1"}},
			Spreadsheet: &markers.SheetSpec{Type: markers.TypeGoogleSheet, ID: "sheet"},
			Remote:      &remote.RsyncSpec{Type: remote.TypeRsync, IP: "host", Path: "maps"},
			Webhook:     &webhook.DiscordSpec{Type: webhook.TypeDiscord, URL: "https://discord.invalid"},
			File:        filepath.Join(root, "survival.yaml"),
		}
		source = &fakeSource{}
		uploader = &fakeUploader{}
		notifier = &fakeNotifier{}
		runner = &render.Runner{
			Flags: render.Flags{Papyrus: papyrus},
			NewMarkerSource: func(*markers.SheetSpec) (markers.Source, error) {
				return source, nil
			},
			NewUploader: func(*remote.RsyncSpec) (render.Uploader, error) {
				return uploader, nil
			},
			NewNotifier: func(*webhook.DiscordSpec) (render.Notifier, error) {
				return notifier, nil
			},
		}
	})
	AfterEach(func() {
		os.Unsetenv("PAPYRUS_STUB_STATUS")
		os.RemoveAll(root)
	})

	papyrusCalls := func() []string {
		data, err := os.ReadFile(argsLog)
		if os.IsNotExist(err) {
			return nil
		}
		Expect(err).NotTo(HaveOccurred())
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	It("should run every stage in order", func() {
		Expect(runner.Run([]*render.Definition{def})).To(Succeed())
		Expect(papyrusCalls()).To(Equal([]string{
			"--world " + def.World + " --output " + def.Dest + " --dim 0",
			"--world " + def.World + " --output " + def.Dest + " --dim 1",
		}))
		Expect(source.calls).To(Equal(1))
		Expect(markers.PlayersDataPath(def.Dest)).To(BeARegularFile())
		Expect(uploader.full).To(Equal([]string{def.Dest}))
		Expect(uploader.players).To(BeEmpty())
		Expect(notifier.pushed).To(Equal([]string{def.Dest}))
	})
	It("should only write and upload markers with --sheet-only", func() {
		runner.Flags.SheetOnly = true
		Expect(runner.Run([]*render.Definition{def})).To(Succeed())
		Expect(papyrusCalls()).To(BeEmpty())
		Expect(source.calls).To(Equal(1))
		Expect(uploader.full).To(BeEmpty())
		Expect(uploader.players).To(Equal([]string{def.Dest}))
		Expect(notifier.pushed).To(BeEmpty())
	})
	It("should reject --sheet-only with --skip-sheet", func() {
		runner.Flags.SheetOnly = true
		runner.Flags.SkipSheet = true
		err := runner.Run([]*render.Definition{def})
		Expect(errors.Is(err, render.ErrConflictingFlags)).To(BeTrue())
	})
	It("should honor the skip flags", func() {
		runner.Flags.SkipMap = true
		runner.Flags.SkipRemote = true
		Expect(runner.Run([]*render.Definition{def})).To(Succeed())
		Expect(papyrusCalls()).To(BeEmpty())
		Expect(source.calls).To(Equal(1))
		Expect(uploader.full).To(BeEmpty())
		Expect(notifier.pushed).To(HaveLen(1))
	})
	It("should not change anything in a dry run", func() {
		runner.Flags.DryRun = true
		Expect(runner.Run([]*render.Definition{def})).To(Succeed())
		Expect(papyrusCalls()).To(BeEmpty())
		Expect(source.calls).To(BeZero())
		Expect(markers.PlayersDataPath(def.Dest)).NotTo(BeAnExistingFile())
		Expect(uploader.full).To(BeEmpty())
		Expect(notifier.pushed).To(BeEmpty())
	})
	It("should stop when PapyrusCs fails", func() {
		os.Setenv("PAPYRUS_STUB_STATUS", "3")
		err := runner.Run([]*render.Definition{def})
		Expect(errors.Is(err, render.ErrPapyrusFailed)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("status 3"))
		Expect(papyrusCalls()).To(HaveLen(1))
		Expect(source.calls).To(BeZero())
		Expect(notifier.pushed).To(BeEmpty())
	})
	It("should pass definition paths to PapyrusCs verbatim", func() {
		def.Dest = filepath.Join(root, "dest$HOME")
		def.Spreadsheet = nil
		def.Remote = nil
		def.Webhook = nil
		def.Tasks = def.Tasks[:1]
		Expect(runner.Run([]*render.Definition{def})).To(Succeed())
		Expect(papyrusCalls()).To(Equal([]string{
			"--world " + def.World + " --output " + def.Dest + " --dim 0",
		}))
	})
	It("should report a PapyrusCs binary that cannot start", func() {
		runner.Flags.Papyrus = filepath.Join(root, "missing-PapyrusCs")
		err := runner.Run([]*render.Definition{def})
		Expect(errors.Is(err, render.ErrPapyrusNotStarted)).To(BeTrue())
		Expect(errors.Is(err, render.ErrPapyrusFailed)).To(BeFalse())
		Expect(source.calls).To(BeZero())
	})
	It("should prepare every definition before rendering", func() {
		broken := *def
		broken.Name = "Broken"
		runner.NewNotifier = func(spec *webhook.DiscordSpec) (render.Notifier, error) {
			if spec == broken.Webhook {
				return nil, errors.New("bad webhook")
			}
			return notifier, nil
		}
		broken.Webhook = &webhook.DiscordSpec{Type: webhook.TypeDiscord, URL: "vault:nowhere#url"}
		err := runner.Run([]*render.Definition{def, &broken})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Broken"))
		Expect(papyrusCalls()).To(BeEmpty())
	})
	It("should require an api key for the default sheet source", func() {
		runner.NewMarkerSource = nil
		os.Setenv(markers.EnvGoogleAPIKey, "")
		defer os.Unsetenv(markers.EnvGoogleAPIKey)
		err := runner.Run([]*render.Definition{def})
		Expect(errors.Is(err, markers.ErrNoAPIKey)).To(BeTrue())
	})
})

var _ = Describe("Flags", func() {
	It("should enable debug output for dry runs", func() {
		f := render.Flags{DryRun: true}
		Expect(f.LogVerbosity()).To(Equal(1))
		f.Verbosity = 2
		Expect(f.LogVerbosity()).To(Equal(2))
		f.Quiet = true
		Expect(f.LogVerbosity()).To(Equal(-1))
	})
})
