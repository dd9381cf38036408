package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"droplet/internal/platform"
	"droplet/internal/storage"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage launching droplet at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start droplet when you log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setAutostart(cmd, true)
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting droplet at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setAutostart(cmd, false)
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether droplet starts at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		enabled, err := newService().AutostartEnabled(appName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), enabledLabel(enabled))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autostartCmd)
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
}

// setAutostart updates the login item and records the choice in the settings
// file so the desktop app does not revert it on next start.
func setAutostart(cmd *cobra.Command, enabled bool) error {
	if err := platform.SyncAutostart(newService(), appName, enabled); err != nil {
		return err
	}

	path, err := settingsPath()
	if err != nil {
		return err
	}
	store, err := storage.OpenStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings := store.Settings()
	settings.LaunchAtLogin = enabled
	if err := store.Update(settings); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "launch at login %s\n", enabledLabel(enabled))
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
