package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
)

var flagConfigPath bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a play session would use, after the config
file search and the difficulty preset are applied. Redirect the output to
the user config path to start customizing.

Examples:
  maze config
  maze config --difficulty hard
  maze config --path
  maze config > "$(maze config --path)"`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagConfigPath, "path", false, "Print the user config path instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigPath {
		fmt.Println(config.UserConfigPath())
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.MarshalPacman(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
