package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Sessions driving.SessionFactory
	Settings driving.SettingsService
	History  driving.HistoryService
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// runApp runs the TUI. Tests replace it to avoid taking over the terminal.
var runApp = func(app *tui.App) error { return app.Run() }

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive order form wizard.

The TUI walks through the Customer, Terms and Products steps, can import a
deal summary on the first step and saves the finished form to the output
directory.

Controls:
  tab / shift+tab  - Next / previous field
  ctrl+n / ctrl+p  - Next / previous step
  ctrl+o           - Import a document
  ctrl+g           - Generate the form
  Esc              - Back
  ctrl+c           - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI crashed")
		}
	}()

	ports := tui.NewPorts(sessionFactory, settingsService)
	ports.History = historyService
	if tuiConfig != nil {
		if tuiConfig.Sessions != nil {
			ports.Sessions = tuiConfig.Sessions
		}
		if tuiConfig.Settings != nil {
			ports.Settings = tuiConfig.Settings
		}
		if tuiConfig.History != nil {
			ports.History = tuiConfig.History
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
