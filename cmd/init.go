package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dnlab/dncheck"
)

// initCmd: dncheck init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = dncheck.DefaultConfigFile
		}
		if err := initConfigurationFile(path); err != nil {
			logger.Error("error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("configuration file created: %s\n", path)
	},
}

func initConfigurationFile(path string) error {
	d, err := yaml.Marshal(dncheck.DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
