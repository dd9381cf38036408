package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"droplet/internal/core/model"
	"droplet/internal/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the settings file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Long: `Print the settings the timer would use: values from the file, defaults
for missing keys, and out of range values clamped.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing settings file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		return err
	}
	data, err := storage.MarshalSettings(settings)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check settings file: %w", err)
	}
	if err := storage.SaveSettings(path, model.DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
