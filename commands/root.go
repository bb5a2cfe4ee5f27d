package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-lineup-timeline/internal/analyzer"
	"github.com/penwyp/go-lineup-timeline/internal/config"
	"github.com/penwyp/go-lineup-timeline/internal/data/cache"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Configuration file
	configPath string

	// Output related
	outputFormat string
	layoutStyle  string
	width        int
	timezone     string

	// Parsing
	bandYears   string
	concurrency int
	strict      bool

	// Cache
	cacheDir string
	reset    bool

	rootCmd = &cobra.Command{
		Use:   "go-lineup-timeline [paths...]",
		Short: "Band lineup timeline tool",
		Long: `go-lineup-timeline turns free-text band membership records into per-year role timelines.

Lineup files (.json, .jsonl, .yaml, .yml) are read from the given files and directories.
Each member carries a role history such as "Bass (1992-1995, 2003-present), drums (1995-2003)".

Examples:
  go-lineup-timeline bands/                          # Render every lineup below bands/
  go-lineup-timeline maiden.yaml --output summary    # Role legend and members
  go-lineup-timeline bands/ -o json                  # Timelines as JSON
  go-lineup-timeline bands/ --band-years 1975-present
  go-lineup-timeline parse "Guitar (rhythm) (1990-?)"
  go-lineup-timeline watch bands/                    # Re-render on change`,
		Args:          cobra.ArbitraryArgs,
		RunE:          runRender,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", config.DefaultOutput,
		"Output format (table, json, csv, summary)")
	rootCmd.PersistentFlags().StringVar(&layoutStyle, "layout", config.DefaultLayout,
		"Table layout (full, minimal)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0,
		"Table width in columns (0 = terminal width)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", config.DefaultTimezone,
		"Timezone deciding the current year (e.g., Europe/London, UTC)")

	rootCmd.PersistentFlags().StringVar(&bandYears, "band-years", "",
		`Override the active years of every band (e.g., "1981-present")`)
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0,
		"Parallel member parsing (0 = number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false,
		"Fail on the first unreadable role string or lineup file")

	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"Keep parsed lineups in this directory between runs")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear the cache directory before rendering")
}

// loadConfig reads the configuration file and applies command-line flags
// and positional paths on top of it. It also sets up logging and the
// time provider.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path := configPath
	if path != "" {
		path = expandPath(path)
	}
	cfg, err := config.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = outputFormat
	}
	if flags.Changed("layout") {
		cfg.Layout = layoutStyle
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("band-years") {
		cfg.BandYears = bandYears
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = cacheDir
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	if len(args) > 0 {
		cfg.Paths = args
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.CacheDir != "" {
		cfg.CacheDir = expandPath(cfg.CacheDir)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logFile := cfg.Log.File
	if logFile != "" {
		logFile = expandPath(logFile)
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := util.InitLogger(cfg.Log.Level, logFile, util.LogFormat(cfg.Log.Format), debug); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}

	return cfg, nil
}

func analyzerConfig(cfg *config.Config) *analyzer.Config {
	return &analyzer.Config{
		Paths:       cfg.Paths,
		CacheDir:    cfg.CacheDir,
		Output:      cfg.Output,
		Layout:      cfg.Layout,
		Timezone:    cfg.Timezone,
		BandYears:   cfg.BandYears,
		Width:       cfg.Width,
		Concurrency: cfg.Concurrency,
		Strict:      cfg.Strict,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if reset && cfg.CacheDir != "" {
		if err := clearCache(cfg.CacheDir); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		util.LogInfo("Cache cleared")
	}

	a, err := analyzer.New(analyzerConfig(cfg))
	if err != nil {
		return err
	}
	return a.Run(cmd.Context(), cmd.OutOrStdout())
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func clearCache(dir string) error {
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	return fc.Clear()
}
