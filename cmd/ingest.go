package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/kavosh/internal/admin"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest URL",
	Short: "Add a web page to the knowledge base",
	Long: `Asks the backend to fetch URL, split it into passages and index them so
later questions can be answered from it.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	_, client, err := loadEnvironment()
	if err != nil {
		return err
	}
	form := admin.New(client)
	form.IngestURL = args[0]
	return ingest(cmd.OutOrStdout(), form)
}

func ingest(w io.Writer, form *admin.Form) error {
	c, err := form.Ingest()
	if err != nil {
		return reportBanner(w, form)
	}
	runAdmin(form, c)
	return reportBanner(w, form)
}
