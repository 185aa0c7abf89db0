package main

import (
	"os"

	"github.com/kralicky/papyrusctl/pkg/console"
	"github.com/kralicky/papyrusctl/pkg/papyrusctl"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "papyrusctl",
		Short: "Build PapyrusCs and render Minecraft Bedrock maps",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			console.Setup(os.Stderr)
		},
	}
	rootCmd.AddCommand(papyrusctl.BuildCmd, papyrusctl.RenderCmd, papyrusctl.InitCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
