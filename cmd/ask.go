package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/export"
	"github.com/zhubert/kavosh/internal/markdown"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/theme"
	"github.com/zhubert/kavosh/internal/ui"
)

var (
	askWeb   bool
	askHTML  string
	askWidth int
)

var askCmd = &cobra.Command{
	Use:   "ask QUERY...",
	Short: "Ask a single question and print the answer",
	Long: `Sends one question to the backend and prints the rendered answer with its
sources. With --html the answer is written as a standalone HTML page instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askWeb, "web", "w", false, "Let the backend search the web if needed")
	askCmd.Flags().StringVar(&askHTML, "html", "", "Write the answer as HTML to `FILE`")
	askCmd.Flags().IntVar(&askWidth, "width", ui.DefaultWrapWidth, "Wrap width for terminal output")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, client, err := loadEnvironment()
	if err != nil {
		return err
	}
	themeCtl, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	opts := askOptions{
		Query:  strings.Join(args, " "),
		Web:    askWeb,
		HTML:   askHTML,
		Width:  askWidth,
		Mode:   themeCtl.Mode(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	return ask(search.NewController(client), opts)
}

type askOptions struct {
	Query  string
	Web    bool
	HTML   string
	Width  int
	Mode   theme.Mode
	Stdout io.Writer
	Stderr io.Writer
}

// ask runs one search through ctl and prints or exports the result. A
// failed search is still exported when --html is set, then reported as
// an error.
func ask(ctl *search.Controller, opts askOptions) error {
	s, err := ctl.Run(opts.Query, opts.Web)
	if err != nil {
		return err
	}

	if opts.HTML != "" {
		if err := writeHTML(opts.HTML, s, opts.Mode); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(opts.Stderr, "✓ wrote %s\n", opts.HTML)
	} else if s.Status == search.StatusSucceeded {
		printAnswer(opts.Stdout, s, opts.Mode, opts.Width)
	}

	if s.Status == search.StatusFailed {
		return fmt.Errorf("search failed: %s", s.ErrorMessage)
	}
	return nil
}

func writeHTML(path string, s search.Session, mode theme.Mode) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := export.RenderHTML(f, s, mode); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}

func printAnswer(w io.Writer, s search.Session, mode theme.Mode, width int) {
	ui.ApplyMode(mode)

	fmt.Fprintln(w, ui.RenderMarkdown(s.Answer, width))

	if len(s.Sources) > 0 {
		fmt.Fprintln(w)
		color.New(color.Bold).Fprintf(w, "منابع (%d)\n", len(s.Sources))
		for i, src := range s.Sources {
			fmt.Fprintf(w, "  %d. %s\n", i+1, markdown.Sanitize(src))
		}
	}

	if len(s.Passages) > 0 {
		color.New(color.Faint).Fprintf(w, "\n%d passages retrieved\n", len(s.Passages))
	}
}
