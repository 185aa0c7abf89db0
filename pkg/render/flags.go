package render

import (
	log "github.com/sirupsen/logrus"
)

// Flags are the command-line switches of the render command.
type Flags struct {
	Papyrus     string
	DryRun      bool
	SheetOnly   bool
	SkipMap     bool
	SkipSheet   bool
	SkipRemote  bool
	SkipWebhook bool
	Verbosity   int
	Quiet       bool
}

// Resolve applies the implications of --sheet-only and --dry-run.
func (f *Flags) Resolve() error {
	if f.SheetOnly {
		if f.SkipSheet {
			return ErrConflictingFlags
		}
		if f.SkipMap {
			log.Warn("--skip-map is implied by --sheet-only")
		}
		if f.SkipWebhook {
			log.Warn("--skip-webhook is implied by --sheet-only")
		}
		if f.SkipRemote {
			log.Warn("--skip-remote with --sheet-only only writes the players file locally")
		}
		f.SkipMap = true
		f.SkipWebhook = true
	}
	return nil
}

// LogVerbosity is the verbosity to pass to console.SetVerbosity.
func (f *Flags) LogVerbosity() int {
	if f.Quiet {
		return -1
	}
	if f.DryRun && f.Verbosity < 1 {
		return 1
	}
	return f.Verbosity
}
