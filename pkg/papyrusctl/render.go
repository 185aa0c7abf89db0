/*
Copyright © 2021 Joe Kralicky

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package papyrusctl

import (
	"path/filepath"
	"runtime"

	"github.com/kralicky/papyrusctl/pkg/console"
	"github.com/kralicky/papyrusctl/pkg/launcher"
	"github.com/kralicky/papyrusctl/pkg/render"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var renderFlags render.Flags

var RenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render maps with PapyrusCs and publish them",
	Run: func(cmd *cobra.Command, args []string) {
		console.SetVerbosity(renderFlags.LogVerbosity())

		settings, err := launcher.LoadSettings()
		if err != nil {
			log.Fatal(err)
		}
		if renderFlags.Papyrus == "" {
			path, err := DefaultPapyrusPath(settings)
			if err != nil {
				log.Fatal(err)
			}
			renderFlags.Papyrus = path
		}

		files, err := cmd.Flags().GetStringArray("file")
		if err != nil {
			log.Fatal(err)
		}
		defs := make([]*render.Definition, 0, len(files))
		for _, f := range files {
			def, err := render.LoadDefinition(f)
			if err != nil {
				log.Fatal(err)
			}
			defs = append(defs, def)
		}

		if err := render.NewRunner(renderFlags, settings.VaultAddr).Run(defs); err != nil {
			log.Fatal(err)
		}
	},
}

// DefaultPapyrusPath is the binary written by the build command.
func DefaultPapyrusPath(settings *launcher.Settings) (string, error) {
	conf, err := launcher.NewConfig(settings)
	if err != nil {
		return "", err
	}
	name := launcher.DefaultProject
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(conf.OutputPath, name), nil
}

func init() {
	flags := RenderCmd.Flags()
	flags.StringArrayP("file", "f", nil, "Render definition file (repeatable)")
	flags.StringVarP(&renderFlags.Papyrus, "papyrus", "p", "", "Path to the PapyrusCs executable")
	flags.BoolVar(&renderFlags.DryRun, "dry-run", false, "Print what would be done without doing it")
	flags.BoolVar(&renderFlags.SheetOnly, "sheet-only", false, "Only update player markers")
	flags.BoolVar(&renderFlags.SkipMap, "skip-map", false, "Do not run PapyrusCs")
	flags.BoolVar(&renderFlags.SkipSheet, "skip-sheet", false, "Do not write player markers")
	flags.BoolVar(&renderFlags.SkipRemote, "skip-remote", false, "Do not upload")
	flags.BoolVar(&renderFlags.SkipWebhook, "skip-webhook", false, "Do not push the webhook")
	flags.CountVarP(&renderFlags.Verbosity, "verbose", "v", "Increase verbosity")
	flags.BoolVarP(&renderFlags.Quiet, "quiet", "q", false, "Only print errors")
	if err := RenderCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}
