package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the debug log and its rotated backups",
	Long: `Removes ` + logger.DefaultLogPath + ` and the backups rotated next to it.
It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	// Release the file before removing it
	logger.Close()
	return clean(cmd.OutOrStdout(), os.Stdin, skipConfirm, logger.ClearLogs)
}

// clean asks for confirmation on input unless yes is set, then removes
// the logs through clearLogs
func clean(w io.Writer, input io.Reader, yes bool, clearLogs func() (int, error)) error {
	if !yes {
		fmt.Fprintf(w, "Remove %s and its backups? [y/N] ", logger.DefaultLogPath)
		line, _ := bufio.NewReader(input).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(w, "Aborted.")
			return nil
		}
	}

	count, err := clearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}
	color.New(color.FgGreen).Fprintf(w, "✓ removed %d log file(s)\n", count)
	return nil
}
