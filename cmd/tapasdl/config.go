package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tapas-dl/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented sample config",
	Long:  "Write a commented sample configuration to the default location, or to --config when set",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			var err error
			path, err = config.DefaultConfigPath()
			cobra.CheckErr(err)
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("⚠️  Config already exists at %s\n", path)
			return
		}

		cobra.CheckErr(config.CreateSample(path))
		fmt.Printf("📝 Sample config written to %s\n", path)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
