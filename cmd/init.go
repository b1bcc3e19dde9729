package cmd

import (
	"github.com/spf13/cobra"

	"github.com/techimbue/website/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a website configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the blog renderer and writes the config file (website.yml unless --config says otherwise).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
