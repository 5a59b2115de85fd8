package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ItemGet создаёт CLI-команду получения одного элемента по идентификатору.
//
// Пример использования:
//
//	readlist get bbbbbbbb-0000-0000-0000-000000000001
func ItemGet(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Получить элемент по id",
		Args:  cobra.ExactArgs(1),
		Long: `Получает элемент списка чтения по идентификатору.

Пример:
  readlist get bbbbbbbb-0000-0000-0000-000000000001
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			item, err := c.GetItem(app.Creds.AccessToken, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"id=%s\ntitle=%s\nkind=%s\nstatus=%s\npriority=%s\ntags=%s\nnotes=%s\nupdated=%s\n",
				item.ID, item.Title, item.Kind, item.Status, item.Priority,
				strings.Join(item.Tags, ","), item.Notes,
				item.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	return cmd
}
