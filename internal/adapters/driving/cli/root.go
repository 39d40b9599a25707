// Package cli provides the command-line interface for repoviz.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repoviz-cli/internal/logger"
)

// version is the build version, overridable via ldflags.
var version = "0.1.0-dev"

// Config holds the services the CLI commands depend on.
type Config struct {
	SessionService    driving.SessionService
	VisualizerService driving.VisualizerService
	ContentService    driving.ContentService
	AssistantService  driving.AssistantService
}

// config holds the current CLI configuration.
var config *Config

var verbose bool

// rootCmd is the base command; running it without a subcommand launches
// the interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "repoviz",
	Short: "Visualize GitHub repositories from your terminal",
	Long: `repoviz fetches a GitHub repository's tree, issues, pull requests,
workflows and commit activity, and presents them as an interactive
terminal dashboard with an optional AI assistant.

Run without arguments to launch the interactive UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// SetConfig sets the services used by the CLI commands.
func SetConfig(c *Config) {
	config = c
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a TUI crash leaves a usable stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{}
	if config != nil {
		ports.Session = config.SessionService
		ports.Visualizer = config.VisualizerService
		ports.Content = config.ContentService
		ports.Assistant = config.AssistantService
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
