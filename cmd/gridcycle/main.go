package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridcycle/internal/config"
	"github.com/yourusername/gridcycle/internal/cycle"
	"github.com/yourusername/gridcycle/internal/logging"
	"github.com/yourusername/gridcycle/internal/output"
	"github.com/yourusername/gridcycle/internal/state"
	"github.com/yourusername/gridcycle/internal/types"
	"github.com/yourusername/gridcycle/internal/window"
	"github.com/yourusername/gridcycle/internal/yabai"
)

var (
	configPath string
	gridFlag   string
	statePath  string
	yabaiPath  string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool
	dryRun     bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd cycles the focused window when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "gridcycle",
	Short: "Cycle the focused window through grid cells with yabai",
	Long: `gridcycle moves the focused window to the next cell of a rows x columns
grid each time it runs. The cell a window was last placed in is remembered,
so binding gridcycle to a hotkey walks a window across the screen.

A window that was moved or resized by something else, or a change of grid
shape, starts the cycle again from the top-left cell.`,
	Version:       "0.1.0",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCycle,
}

// settings is the resolved view of flags, config file and defaults
type settings struct {
	Grid      types.GridConfig
	StatePath string
	YabaiPath string
	Timeout   time.Duration
}

// resolveSettings merges the config file with any flags set on cmd.
// Flags win over the file, the file wins over defaults.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	s := cfg.Settings
	flags := cmd.Flags()
	if flags.Changed("grid") {
		s.Grid = gridFlag
	}
	if flags.Changed("tmp-file-path") {
		s.StateFile = statePath
	}
	if flags.Changed("yabai") {
		s.YabaiPath = yabaiPath
	}

	grid, err := config.ParseGrid(s.Grid)
	if err != nil {
		return settings{}, err
	}

	d := cfg.TimeoutDuration()
	if flags.Changed("timeout") {
		if timeout < 0 {
			return settings{}, fmt.Errorf("timeout must not be negative: %v", timeout)
		}
		d = timeout
	}

	return settings{
		Grid:      grid,
		StatePath: s.StateFile,
		YabaiPath: s.YabaiPath,
		Timeout:   d,
	}, nil
}

func newClient(s settings) *yabai.Client {
	return yabai.NewClient(s.YabaiPath, s.Timeout)
}

func runCycle(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	logging.Debug().
		Str("grid", s.Grid.String()).
		Str("stateFile", s.StatePath).
		Str("yabai", s.YabaiPath).
		Dur("timeout", s.Timeout).
		Msg("settings resolved")

	result, err := window.CycleWindow(context.Background(), newClient(s), window.CycleOpts{
		Grid:      s.Grid,
		StatePath: s.StatePath,
		DryRun:    dryRun,
	})
	if err != nil {
		logging.Error().Err(err).Msg("cycle failed")
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	if result.DryRun {
		infoColor.Printf("Would move window %d to cell %s of %s", result.WindowID, result.Cell, result.Grid)
		fmt.Printf(" (%s)\n", result.Reason)
		return nil
	}

	successColor.Printf("✓ Window %d", result.WindowID)
	fmt.Printf(" → cell %s of %s\n", result.Cell, result.Grid)
	return nil
}

// MARK: - State Commands

// stateCmd is the parent command for state subcommands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or edit remembered window positions",
	Long:  `Commands for showing, resetting and pruning the state file.`,
}

// stateShowCmd lists every tracked window
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show tracked windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		// Unlike a cycle, a broken file is reported here
		store, err := state.ReadFrom(s.StatePath)
		if err != nil {
			return err
		}

		records := store.Records()
		if jsonOutput {
			return printJSON(records)
		}

		keyColor.Print("State file: ")
		fmt.Println(s.StatePath)
		if len(records) == 0 {
			infoColor.Println("No windows tracked")
			return nil
		}

		output.PrintRecordsTable(os.Stdout, records)
		return nil
	},
}

// stateResetCmd forgets every window
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all tracked windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		if err := state.Reset(s.StatePath); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}

		logging.Info().Str("path", s.StatePath).Msg("state reset")
		successColor.Println("✓ State has been reset")
		return nil
	},
}

// stateForgetCmd removes one window so its next cycle starts at (0, 0)
var stateForgetCmd = &cobra.Command{
	Use:   "forget <window-id>",
	Short: "Forget one tracked window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid window ID %q: %w", args[0], err)
		}

		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		store := state.LoadFrom(s.StatePath)
		if !store.Delete(uint32(id)) {
			return fmt.Errorf("window %d is not tracked", id)
		}

		if err := state.SaveTo(s.StatePath, store); err != nil {
			return err
		}

		logging.Info().Uint64("windowId", id).Msg("window forgotten")
		successColor.Printf("✓ Forgot window %d\n", id)
		return nil
	},
}

// MARK: - List Commands

// listCmd is the parent command for list subcommands
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List window manager objects",
}

// listWindowsCmd lists yabai windows with their tracked cells
var listWindowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows",
	Long: `Lists the windows yabai reports. The focused window is marked with *,
and windows with a remembered position show their last grid cell.

By default invisible and very small windows are hidden; use --all to show them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		windows, err := newClient(s).QueryWindows(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list windows: %w", err)
		}

		showAll, _ := cmd.Flags().GetBool("all")
		if !showAll {
			windows = filterWindows(windows)
		}

		if jsonOutput {
			return printJSON(windows)
		}

		if len(windows) == 0 {
			infoColor.Println("No windows found")
			return nil
		}

		output.PrintWindowsTable(os.Stdout, windows, state.LoadFrom(s.StatePath))
		return nil
	},
}

// MARK: - Show Command

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showWidth   int
	showHeight  int
)

// showCmd draws the grid with the focused window's current and next cell
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Visualize the grid for the focused window",
	Long: `Draws the configured grid. The cell the focused window was last placed
in is shown as [x,y] and the cell the next run would move it to is shaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		focused, err := newClient(s).FocusedWindow(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get focused window: %w", err)
		}

		store := state.LoadFrom(s.StatePath)
		geom := focused.Geometry()

		var prior *state.Record
		if r, ok := store.Get(geom.ID); ok {
			prior = &r
		}
		decision := cycle.Decide(prior, geom, s.Grid)

		var current *types.Cell
		if decision.Continues() {
			c := prior.Cell()
			current = &c
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"window":  focused,
				"grid":    s.Grid.String(),
				"current": current,
				"next":    decision.Cell,
				"reason":  decision.Reason,
			})
		}

		opts := output.DefaultGridOptions()
		if showASCII {
			opts.UseUnicode = false
		}
		if showUnicode {
			opts.UseUnicode = true
		}
		if showWidth > 0 {
			opts.MaxWidth = showWidth
		}
		if showHeight > 0 {
			opts.MaxHeight = showHeight
		}

		keyColor.Print("Window: ")
		fmt.Printf("%d %s (%s)\n", focused.ID, focused.App, geom)
		keyColor.Print("Next: ")
		fmt.Printf("%s (%s)\n\n", decision.Cell, decision.Reason)

		next := decision.Cell
		output.PrintGrid(os.Stdout, s.Grid, output.GridMarks{Current: current, Next: &next}, opts)
		return nil
	},
}

// MARK: - Config Commands

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing, validating and creating the configuration file.`,
}

// configShowCmd shows the effective config file contents
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if jsonOutput {
			return printJSON(cfg)
		}

		format, _ := cmd.Flags().GetString("format")
		data, err := cfg.Marshal(format)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configValidateCmd validates a config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Grid: %s\n", cfg.Settings.Grid)
		fmt.Printf("  State file: %s\n", cfg.Settings.StateFile)
		fmt.Printf("  yabai: %s\n", cfg.Settings.YabaiPath)
		if d := cfg.TimeoutDuration(); d > 0 {
			fmt.Printf("  Timeout: %v\n", d)
		}

		return nil
	},
}

// configInitCmd creates the default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		format := "yaml"
		switch filepath.Ext(path) {
		case ".json":
			format = "json"
		case ".toml":
			format = "toml"
		}

		data, err := config.Default().Marshal(format)
		if err != nil {
			return err
		}
		if format == "yaml" {
			data = append([]byte("# gridcycle configuration\n"), data...)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		successColor.Printf("✓ Created default config at: %s\n", path)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&gridFlag, "grid", "g", config.DefaultGrid, "Grid shape as RxC (rows x columns)")
	rootCmd.PersistentFlags().StringVarP(&statePath, "tmp-file-path", "t", state.DefaultPath, "State file path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/gridcycle/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&yabaiPath, "yabai", config.DefaultYabaiPath, "yabai binary")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", yabai.DefaultTimeout, "Timeout per yabai call (0 for none)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the next cell without moving the window or saving state")

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
	stateCmd.AddCommand(stateForgetCmd)

	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listWindowsCmd)
	listWindowsCmd.Flags().Bool("all", false, "Show all windows including invisible and tiny ones")

	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	configShowCmd.Flags().String("format", "yaml", "Output format: yaml, json or toml")

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// A log file that cannot be opened must not stop the window from moving
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		logging.Close()
		os.Exit(1)
	}
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// minWindowSize is the smallest frame listed without --all
const minWindowSize = 100

// filterWindows drops invisible windows and tiny utility panels
func filterWindows(windows []yabai.Window) []yabai.Window {
	filtered := make([]yabai.Window, 0, len(windows))
	for _, w := range windows {
		if shouldIncludeWindow(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// shouldIncludeWindow keeps the focused window regardless of the other rules
func shouldIncludeWindow(w yabai.Window) bool {
	if w.HasFocus {
		return true
	}
	if !w.IsVisible {
		return false
	}
	return w.Frame.W >= minWindowSize && w.Frame.H >= minWindowSize
}
