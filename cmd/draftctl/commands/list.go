// cmd/draftctl/commands/list.go
package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/services"
	"github.com/javajoker/draft-backend/internal/utils"
)

var listFlags struct {
	user     string
	query    string
	category string
	limit    int
	stats    bool
}

func init() {
	listCmd.Flags().StringVar(&listFlags.user, "user", "", "only drafts owned by this user id")
	listCmd.Flags().StringVar(&listFlags.query, "query", "", "free-text search over title, description, tags, and specifications")
	listCmd.Flags().StringVar(&listFlags.category, "category", "", "only drafts in this category")
	listCmd.Flags().IntVar(&listFlags.limit, "limit", 0, "maximum number of drafts to show")
	listCmd.Flags().BoolVar(&listFlags.stats, "stats", false, "print inventory statistics (requires --user)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists drafts as a table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := draftService.ListDrafts(&services.ListDraftsParams{
			UserID:       listFlags.user,
			Query:        listFlags.query,
			Category:     models.Category(listFlags.category),
			WithStats:    listFlags.stats,
			OffsetParams: utils.OffsetParams{Limit: listFlags.limit},
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		t := newTable(out)
		header := table.Row{"Draft ID", "Owner", "Title", "Category", "Price", "Qty", "Version", "Updated"}
		if listFlags.query != "" {
			header = append(header, "Score")
		}
		t.AppendHeader(header)

		for _, d := range result.Drafts {
			row := table.Row{
				d.DraftID,
				d.UserID,
				d.Title,
				d.Category,
				fmt.Sprintf("%.2f", d.Price),
				d.Quantity,
				d.Version,
				d.UpdatedAt.Format("2006-01-02 15:04"),
			}
			if d.SearchScore != nil {
				row = append(row, *d.SearchScore)
			}
			t.AppendRow(row)
		}
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d of %d", result.ReturnedCount, result.TotalCount)})
		t.Render()

		if result.Statistics != nil {
			st := newTable(out)
			st.AppendHeader(table.Row{"Statistic", "Value"})
			st.AppendRow(table.Row{"Total inventory value", fmt.Sprintf("%.2f", result.Statistics.TotalInventoryValue)})
			st.AppendRow(table.Row{"Average unit price", fmt.Sprintf("%.2f", result.Statistics.AvgPrice)})
			for category, count := range result.Statistics.Categories {
				st.AppendRow(table.Row{"Category " + category, count})
			}
			for condition, count := range result.Statistics.Conditions {
				st.AppendRow(table.Row{"Condition " + condition, count})
			}
			st.SortBy([]table.SortBy{{Number: 1, Mode: table.Asc}})
			st.Render()
		}
		return nil
	},
}
