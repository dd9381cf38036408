package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
	"droplet/internal/storage"
	"droplet/internal/ui/terminal"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the timer in the terminal",
	Long: `Run the timer as a full screen terminal program.

Logs go to droplet.log in the droplet config directory because the
terminal is owned by the timer view.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	guard, err := acquireInstance()
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := openStore(logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := storage.Watch(ctx, store); err != nil {
		logger.Warn("settings hot reload disabled", "error", err)
	}

	notifier := &terminal.Notifier{}
	engine := timer.New(store, notifier, timer.Config{Logger: logger})
	store.OnChange(func(model.Settings) {
		engine.ApplySettings()
	})

	program := tea.NewProgram(
		terminal.New(engine, store, engine.Subscribe(8)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	notifier.Attach(program)

	engine.Start()
	defer engine.Stop()

	logger.Info("terminal timer started")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
