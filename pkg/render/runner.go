package render

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
	log "github.com/sirupsen/logrus"

	"github.com/kralicky/papyrusctl/pkg/console"
	"github.com/kralicky/papyrusctl/pkg/markers"
	"github.com/kralicky/papyrusctl/pkg/remote"
	"github.com/kralicky/papyrusctl/pkg/secrets"
	"github.com/kralicky/papyrusctl/pkg/webhook"
)

type Uploader interface {
	Upload(dest string) error
	UploadPlayersData(dest string) error
}

type Notifier interface {
	Push(dest string) error
}

// Runner renders a list of definitions with PapyrusCs and runs their
// post-render stages.
type Runner struct {
	Flags   Flags
	Secrets *secrets.Resolver

	// Constructors for the optional stages. Nil fields use the defaults.
	NewMarkerSource func(spec *markers.SheetSpec) (markers.Source, error)
	NewUploader     func(spec *remote.RsyncSpec) (Uploader, error)
	NewNotifier     func(spec *webhook.DiscordSpec) (Notifier, error)
}

func NewRunner(flags Flags, vaultAddr string) *Runner {
	return &Runner{
		Flags:   flags,
		Secrets: secrets.NewResolver(vaultAddr),
	}
}

type stages struct {
	def      *Definition
	source   markers.Source
	uploader Uploader
	notifier Notifier
}

// Run prepares every definition before rendering any of them, so that a bad
// spreadsheet key or webhook url fails before hours of rendering.
func (r *Runner) Run(defs []*Definition) error {
	if err := r.Flags.Resolve(); err != nil {
		return err
	}
	all := make([]*stages, 0, len(defs))
	for _, def := range defs {
		s, err := r.prepare(def)
		if err != nil {
			return fmt.Errorf("%s: %w", def.DisplayName(), err)
		}
		all = append(all, s)
	}
	for _, s := range all {
		if err := r.runDefinition(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) prepare(def *Definition) (*stages, error) {
	s := &stages{def: def}
	var err error
	if def.Spreadsheet != nil && !r.Flags.SkipSheet {
		if s.source, err = r.markerSource(def.Spreadsheet); err != nil {
			return nil, err
		}
	}
	if def.Remote != nil && !r.Flags.SkipRemote {
		if s.uploader, err = r.uploader(def.Remote); err != nil {
			return nil, err
		}
	}
	if def.Webhook != nil && !r.Flags.SkipWebhook {
		if s.notifier, err = r.notifier(def.Webhook); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *Runner) markerSource(spec *markers.SheetSpec) (markers.Source, error) {
	if r.NewMarkerSource != nil {
		return r.NewMarkerSource(spec)
	}
	key := spec.Key
	if key == "" {
		key = os.Getenv(markers.EnvGoogleAPIKey)
	}
	key, err := r.resolve(key)
	if err != nil {
		return nil, err
	}
	return markers.NewGoogleSheet(spec, key)
}

func (r *Runner) uploader(spec *remote.RsyncSpec) (Uploader, error) {
	if r.NewUploader != nil {
		return r.NewUploader(spec)
	}
	return remote.NewRsync(spec)
}

func (r *Runner) notifier(spec *webhook.DiscordSpec) (Notifier, error) {
	if r.NewNotifier != nil {
		return r.NewNotifier(spec)
	}
	url, err := r.resolve(spec.URL)
	if err != nil {
		return nil, err
	}
	return webhook.NewDiscord(url, spec.Link), nil
}

func (r *Runner) resolve(value string) (string, error) {
	if r.Secrets == nil {
		r.Secrets = secrets.NewResolver("")
	}
	return r.Secrets.Resolve(value)
}

func (r *Runner) runDefinition(s *stages) error {
	def := s.def
	log.Infof("Current definition: %s", def.DisplayName())

	if !r.Flags.SkipMap {
		commands := def.Commands()
		if len(commands) == 0 {
			log.Warn("No tasks listed!")
		}
		for _, args := range commands {
			if err := r.papyrus(args); err != nil {
				return err
			}
		}
	}

	if s.source != nil {
		err := console.DoingDone("Writing player markers", func() error {
			if r.Flags.DryRun {
				return nil
			}
			list, err := s.source.PlayerMarkers()
			if err != nil {
				return err
			}
			return markers.WritePlayersData(def.Dest, list)
		})
		if err != nil {
			return err
		}
	}

	if s.uploader != nil {
		msg := "Uploading map"
		upload := s.uploader.Upload
		if r.Flags.SheetOnly {
			msg = "Uploading player markers"
			upload = s.uploader.UploadPlayersData
		}
		if err := r.stage(msg, s.uploader, func() error { return upload(def.Dest) }); err != nil {
			return err
		}
	}

	if s.notifier != nil {
		if err := r.stage("Pushing webhook", s.notifier, func() error { return s.notifier.Push(def.Dest) }); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) stage(msg string, target interface{}, fn func() error) error {
	return console.DoingDone(msg, func() error {
		if r.Flags.DryRun {
			log.Debugf("  - %v", target)
			return nil
		}
		return fn()
	})
}

func (r *Runner) papyrus(args []string) error {
	log.Infof("  - papyruscs %s", strings.Join(args, " "))
	if r.Flags.DryRun {
		return nil
	}
	cmd := exec.Command(r.Flags.Papyrus, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if !sh.CmdRan(err) {
		return fmt.Errorf("%w: %v", ErrPapyrusNotStarted, err)
	}
	return fmt.Errorf("%w with status %d", ErrPapyrusFailed, sh.ExitStatus(err))
}
