// cmd/draftctl/commands/delete.go
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteUser string

func init() {
	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "caller user id for the ownership check")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <draft-id>...",
	Short: "Deletes drafts permanently.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			result, err := draftService.DeleteDraft(id, deleteUser)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.Status, result.DraftID)
		}
		return nil
	},
}
