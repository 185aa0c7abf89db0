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
	"github.com/kralicky/papyrusctl/pkg/secrets"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write papyrusctl settings to ~/.papyrusctl/config.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := launcher.LoadSettings()
		if err != nil {
			log.Fatal(err)
		}
		if v := cmd.Flag("source").Value.String(); v != "" {
			settings.SourceProjectPath = v
		}
		if v := cmd.Flag("output").Value.String(); v != "" {
			settings.OutputPath = v
		}
		settings.VaultAddr = cmd.Flag("remote").Value.String()

		if settings.VaultAddr != "" {
			log.Info("Checking remote connection")
			client, err := secrets.NewVaultClient(settings.VaultAddr)
			if err != nil {
				log.Fatal(err)
			}
			if err := client.CheckConnection(); err != nil {
				log.Fatal(err)
			}
			log.Info("Remote connection success!")
		}

		if err := settings.WriteToDisk(); err != nil {
			log.Fatal(err)
		}
		log.Infof("Settings written to %s", launcher.SettingsPath())
	},
}

func init() {
	InitCmd.Flags().String("source", "", "PapyrusCs source project directory")
	InitCmd.Flags().String("output", "", "Build output directory")
	InitCmd.Flags().String("remote", "", "Vault remote URL")
	if vaultAddr, ok := os.LookupEnv("VAULT_ADDR"); ok {
		f := InitCmd.Flag("remote")
		if err := f.Value.Set(vaultAddr); err != nil {
			panic(err)
		}
		f.DefValue = vaultAddr
	}
}
