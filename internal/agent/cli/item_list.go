package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/api"
)

// ItemList создаёт CLI-команду списка элементов с фильтрами и сортировкой.
//
// Пример использования:
//
//	readlist list --status planned --tag go --sort-by priority --sort-order desc
func ItemList(app *App) *cobra.Command {
	var q api.ListItemsQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список элементов с фильтрами",
		Long: `Выводит список элементов текущего пользователя.

Пример:
  readlist list --status planned --tag go --sort-by priority --sort-order desc --limit 50
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.ListItems(app.Creds.AccessToken, q)
			if err != nil {
				return err
			}

			if len(resp.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no items")
				return nil
			}
			for _, it := range resp.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s/%s/%s]  %s  tags=%s\n",
					it.ID, it.Kind, it.Status, it.Priority, it.Title, strings.Join(it.Tags, ","))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d\n", len(resp.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Status, "status", "", "filter by status (planned|reading|done)")
	cmd.Flags().StringVar(&q.Kind, "kind", "", "filter by kind (book|article)")
	cmd.Flags().StringVar(&q.Priority, "priority", "", "filter by priority (low|normal|high)")
	cmd.Flags().StringArrayVar(&q.Tags, "tag", nil, "filter by tag (repeatable, AND)")
	cmd.Flags().StringVar(&q.Title, "title", "", "filter by title substring")
	cmd.Flags().StringVar(&q.SortBy, "sort-by", "", "sort column (created_at|updated_at|title|priority)")
	cmd.Flags().StringVar(&q.SortOrder, "sort-order", "", "sort order (asc|desc)")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "page offset")

	return cmd
}
