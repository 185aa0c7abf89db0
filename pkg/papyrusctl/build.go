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
	"os"

	"github.com/kralicky/papyrusctl/pkg/launcher"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a self-contained PapyrusCs for this host",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := launcher.LoadSettings()
		if err != nil {
			log.Fatal(err)
		}
		conf, err := launcher.NewConfig(settings)
		if err != nil {
			log.Error(err)
			os.Exit(launcher.ExitCode(err))
		}
		if err := launcher.New(conf, nil).Run(); err != nil {
			log.Error(err)
			os.Exit(launcher.ExitCode(err))
		}
	},
}
