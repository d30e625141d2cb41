package cmd

import (
	"encoding/json"

	"github.com/nikogura/storyboard-scorer/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Print the validation criteria in effect after config overrides",
	Args:  cobra.NoArgs,
	RunE:  runCriteria,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(criteriaCmd)
}

func runCriteria(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	err = enc.Encode(cfg.Criteria())
	return err
}
