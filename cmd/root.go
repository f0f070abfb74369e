package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/app"
	"github.com/zhubert/kavosh/internal/clipboard"
	"github.com/zhubert/kavosh/internal/config"
	"github.com/zhubert/kavosh/internal/logger"
	"github.com/zhubert/kavosh/internal/theme"
)

var (
	debugMode             bool
	quietMode             bool
	apiURL                string
	logFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "kavosh",
	Short: "Terminal client for the Kavosh Persian search service",
	Long: `Kavosh (کاوش) is a terminal client for a Persian retrieval-augmented
search backend. Ask a question, optionally let the backend search the web,
and read the answer with its sources. The admin screen manages the model
credentials and adds web pages to the knowledge base.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides "+config.EnvAPIURL+" and the config file)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default "+logger.DefaultLogPath+")")
}

func initConfig() {
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
	config.LoadEnv()
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("kavosh %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("kavosh %s\n", version)
}

// loadEnvironment reads the config file and builds the backend client
func loadEnvironment() (*config.Config, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	url := config.ResolveAPIURL(apiURL, cfg)
	logger.Debug("cmd: using backend %s", url)
	return cfg, api.NewClient(url), nil
}

// loadTheme builds the theme controller and reads the persisted mode
func loadTheme(cfg *config.Config) (*theme.Controller, error) {
	ctl := theme.New(cfg)
	if err := ctl.Initialize(); err != nil {
		return nil, fmt.Errorf("error loading theme: %w", err)
	}
	return ctl, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadEnvironment()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	themeCtl, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	// The fallback writer still works without the native clipboard
	_ = clipboard.Init()

	// Create and run the app
	m := app.New(cfg, client, themeCtl, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
