// Package cli implements the floormap command-line interface.
//
// The default command opens the live terminal view; snapshot renders a single
// frame to PNG. Both read the same TOML config (--config) and log through
// charmbracelet/log. The terminal view owns the screen, so it only logs when
// --log-file is given.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"floormap/internal/config"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// annotation marking commands that take over the terminal.
const ownsTerminal = "owns-terminal"

// CLI holds flags and state shared by all commands.
type CLI struct {
	stderr io.Writer

	verbose    bool
	configPath string
	logFile    string
	scale      float64
	interval   time.Duration

	logCloser io.Closer
}

func New(stderr io.Writer) *CLI {
	return &CLI{stderr: stderr}
}

// RootCommand builds the command tree. Without a subcommand it runs view.
func (c *CLI) RootCommand() *cobra.Command {
	var opts viewOpts
	root := &cobra.Command{
		Use:          "floormap",
		Short:        "floormap renders an indoor floorplan around a moving device",
		Long:         `floormap draws floorplan polygons (walls, space, furniture) in a top-down view that follows the device pose, either live in the terminal or as a PNG snapshot.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Annotations:  map[string]string{ownsTerminal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), opts)
		},
		PersistentPreRunE:  c.setupLogging,
		PersistentPostRunE: c.closeLog,
	}
	root.SetVersionTemplate(fmt.Sprintf("floormap %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&c.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&c.logFile, "log-file", "", "append logs to this file")
	pf.Float64Var(&c.scale, "scale", 0, "pixels per meter (overrides config)")
	pf.DurationVar(&c.interval, "interval", 0, "redraw period (overrides config)")
	addViewFlags(root, &opts)

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.snapshotCommand())
	return root
}

// setupLogging attaches a logger to the command context. Commands that own
// the terminal log to --log-file or nowhere; the rest log to stderr.
func (c *CLI) setupLogging(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.verbose {
		level = LogDebug
	}
	var w io.Writer = c.stderr
	if cmd.Annotations[ownsTerminal] == "true" {
		w = io.Discard
	}
	if c.logFile != "" {
		f, err := openLogFile(c.logFile)
		if err != nil {
			return err
		}
		c.logCloser = f
		w = f
	}
	cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
	return nil
}

func (c *CLI) closeLog(cmd *cobra.Command, args []string) error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// loadConfig reads --config and applies flag overrides on top.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.scale != 0 {
		cfg.Scale = c.scale
	}
	if c.interval != 0 {
		cfg.Interval = config.Duration{Duration: c.interval}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
