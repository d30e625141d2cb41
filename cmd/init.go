package cmd

import (
	"fmt"

	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		err = config.InitConfig(getConfigFile())
		if err != nil {
			return err
		}

		path := getConfigFile()
		if path == "" {
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nSet groq_api_key (or GROQ_API_KEY) to enable the remote judge.\n", path)
		return err
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}
