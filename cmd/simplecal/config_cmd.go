package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fmizzell/simplecal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run:   initConfig,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	Run:   showConfig,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func initConfig(cmd *cobra.Command, args []string) {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		fatal("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefault(path); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
}

func showConfig(cmd *cobra.Command, args []string) {
	shown := *cfg
	shown.Gemini.APIKey = mask(shown.Gemini.APIKey)
	shown.Server.APIKey = mask(shown.Server.APIKey)

	out, err := yaml.Marshal(&shown)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Print(string(out))
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
