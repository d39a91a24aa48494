// cmd/draftctl/commands/get.go
package commands

import (
	"github.com/spf13/cobra"

	"github.com/javajoker/draft-backend/internal/utils"
)

var (
	getUser    string
	getSummary bool

	exportUser   string
	exportFormat string
)

func init() {
	getCmd.Flags().StringVar(&getUser, "user", "", "caller user id for the ownership check")
	getCmd.Flags().BoolVar(&getSummary, "summary", false, "print the summary view")
	rootCmd.AddCommand(getCmd)

	exportCmd.Flags().StringVar(&exportUser, "user", "", "caller user id for the ownership check")
	exportCmd.Flags().StringVar(&exportFormat, "format", utils.ExportFormatForestMarket, "export format: forest_market or json")
	rootCmd.AddCommand(exportCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <draft-id>",
	Short: "Prints one draft as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if getSummary {
			summary, err := draftService.GetDraftSummary(args[0], getUser)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		}

		draft, err := draftService.GetDraft(args[0], getUser)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), draft)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <draft-id>",
	Short: "Prints the listing export of a draft.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := draftService.ExportDraft(args[0], exportUser, exportFormat)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}
