package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/settings"
	"github.com/matzehuels/chartkit/pkg/textmeasure"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartkit"

	// configFile is the settings file looked up in the config directory.
	configFile = "settings.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chartkit lays out hierarchical chart axes and legends",
		Long:         `chartkit builds category hierarchies from pivot tables and decides how their axis labels and legend fit a fixed canvas: rotation, label skipping, truncation and legend placement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/chartkit/settings.toml if present)")

	// Register all subcommands
	root.AddCommand(c.hierarchyCommand())
	root.AddCommand(c.labelsCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.truncateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newMeasurer creates the text measurer shared by a command.
func (c *CLI) newMeasurer() *textmeasure.Measurer {
	return textmeasure.New(textmeasure.WithLogger(c.Logger))
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.newMeasurer(), c.Logger)
}

// =============================================================================
// Settings
// =============================================================================

// loadSettings reads --config, falling back to the user config file and
// then to the defaults.
func (c *CLI) loadSettings() (*settings.Settings, error) {
	path := c.configPath
	if path == "" {
		path = userConfigFile()
	}
	if path == "" {
		return settings.Default(), nil
	}
	c.Logger.Debug("loading settings", "path", path)
	return settings.Load(path)
}

// userConfigFile returns the user settings file when it exists.
func userConfigFile() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// configDir returns the config directory using XDG standard (~/.config/chartkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
