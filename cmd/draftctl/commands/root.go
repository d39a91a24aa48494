// cmd/draftctl/commands/root.go
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/draft-backend/internal/config"
	"github.com/javajoker/draft-backend/internal/services"
	"github.com/javajoker/draft-backend/internal/store"
)

var (
	cfg          *config.Config
	draftService *services.DraftService
	closeStore   = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "draftctl",
	Short: "draftctl inspects and manages product drafts in the configured store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)

		draftStore, closeFn, err := store.Open(cfg, log)
		if err != nil {
			return err
		}
		closeStore = closeFn
		draftService = services.NewDraftService(draftStore, log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeStore()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
