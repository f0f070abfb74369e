package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/config"
	"github.com/zhubert/kavosh/internal/logger"
	"github.com/zhubert/kavosh/internal/markdown"
)

var (
	setAPIKey        string
	setBaseURL       string
	setNotifications bool
	setWebDefault    bool
	setDefaultAPIURL string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the backend model settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the local client settings and the backend model settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the backend's model settings or the local client settings",
	Long: `With --api-key and --base-url, updates the model credentials stored by the
backend. The other flags change the local config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

func init() {
	configSetCmd.Flags().StringVar(&setAPIKey, "api-key", "", "Model provider API key")
	configSetCmd.Flags().StringVar(&setBaseURL, "base-url", "", "Model provider base URL")
	configSetCmd.Flags().BoolVar(&setNotifications, "notifications", false, "Notify on the desktop when an answer arrives")
	configSetCmd.Flags().BoolVar(&setWebDefault, "web-default", false, "Start with web search enabled")
	configSetCmd.Flags().StringVar(&setDefaultAPIURL, "default-api-url", "", "Backend URL saved in the config file")
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadEnvironment()
	if err != nil {
		return err
	}
	return showConfig(cmd.OutOrStdout(), cfg, client.BaseURL(), admin.New(client))
}

func showConfig(w io.Writer, cfg *config.Config, backendURL string, form *admin.Form) error {
	label := color.New(color.Bold)

	label.Fprintln(w, "Client")
	fmt.Fprintf(w, "  config file:  %s\n", cfg.FilePath())
	fmt.Fprintf(w, "  backend:      %s\n", backendURL)
	fmt.Fprintf(w, "  theme:        %s\n", orDash(cfg.GetTheme()))
	fmt.Fprintf(w, "  web default:  %v\n", cfg.GetWebSearchDefault())
	fmt.Fprintf(w, "  notify:       %v\n", cfg.GetNotificationsEnabled())
	fmt.Fprintf(w, "  log file:     %s\n", orDash(logger.Path()))

	runAdmin(form, form.LoadConfig())
	current := form.Current()
	fmt.Fprintln(w)
	label.Fprintln(w, "Backend")
	if current == nil {
		color.New(color.FgYellow).Fprintln(w, "  unavailable (see the log for details)")
		return nil
	}
	fmt.Fprintf(w, "  api key:      %s\n", orDash(markdown.Sanitize(current.APIKeyMasked)))
	fmt.Fprintf(w, "  base url:     %s\n", orDash(markdown.Sanitize(current.BaseURL)))
	fmt.Fprintf(w, "  model:        %s\n", orDash(markdown.Sanitize(current.Model)))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadEnvironment()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var local localSettings
	if flags.Changed("notifications") {
		local.Notifications = &setNotifications
	}
	if flags.Changed("web-default") {
		local.WebDefault = &setWebDefault
	}
	if flags.Changed("default-api-url") {
		local.APIURL = &setDefaultAPIURL
	}
	backend := flags.Changed("api-key") || flags.Changed("base-url")

	if local.empty() && !backend {
		return fmt.Errorf("nothing to set: pass --api-key and --base-url, or a local setting")
	}
	if !local.empty() {
		if err := saveLocal(cmd.OutOrStdout(), cfg, local); err != nil {
			return err
		}
	}
	if !backend {
		return nil
	}

	form := admin.New(client)
	form.APIKey = setAPIKey
	form.BaseURL = setBaseURL
	return saveConfig(cmd.OutOrStdout(), form)
}

// localSettings holds the config file values given on the command line;
// nil fields are left alone
type localSettings struct {
	Notifications *bool
	WebDefault    *bool
	APIURL        *string
}

func (s localSettings) empty() bool {
	return s.Notifications == nil && s.WebDefault == nil && s.APIURL == nil
}

// saveLocal applies s to cfg, validates and writes the config file. An
// invalid value leaves the file untouched.
func saveLocal(w io.Writer, cfg *config.Config, s localSettings) error {
	prevNotify, prevWeb, prevURL := cfg.GetNotificationsEnabled(), cfg.GetWebSearchDefault(), cfg.GetAPIURL()

	if s.Notifications != nil {
		cfg.SetNotificationsEnabled(*s.Notifications)
	}
	if s.WebDefault != nil {
		cfg.SetWebSearchDefault(*s.WebDefault)
	}
	if s.APIURL != nil {
		cfg.SetAPIURL(strings.TrimSpace(*s.APIURL))
	}

	if err := cfg.Validate(); err != nil {
		cfg.SetNotificationsEnabled(prevNotify)
		cfg.SetWebSearchDefault(prevWeb)
		cfg.SetAPIURL(prevURL)
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	color.New(color.FgGreen).Fprintf(w, "✓ saved %s\n", cfg.FilePath())
	return nil
}

func saveConfig(w io.Writer, form *admin.Form) error {
	c, err := form.SaveConfig()
	if err != nil {
		return reportBanner(w, form)
	}
	runAdmin(form, c)
	return reportBanner(w, form)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
