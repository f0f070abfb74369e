package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/config"
	"github.com/zhubert/kavosh/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle]",
	Short:     "Print or toggle the persisted light/dark theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	ctl, err := loadTheme(cfg)
	if err != nil {
		return err
	}
	return themeCommand(cmd.OutOrStdout(), ctl, len(args) == 1)
}

func themeCommand(w io.Writer, ctl *theme.Controller, toggle bool) error {
	if !toggle {
		fmt.Fprintln(w, ctl.Mode())
		return nil
	}
	mode, err := ctl.Toggle()
	if err != nil {
		return fmt.Errorf("error saving theme: %w", err)
	}
	color.New(color.FgGreen).Fprintf(w, "theme: %s\n", mode)
	return nil
}
