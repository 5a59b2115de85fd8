package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ItemDelete создаёт CLI-команду удаления элемента.
//
// Сервер выполняет мягкое удаление и возвращает финальный снимок
// элемента. Локальный кеш чистится от удалённого элемента.
//
// Пример использования:
//
//	readlist delete bbbbbbbb-0000-0000-0000-000000000001
func ItemDelete(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить элемент (мягкое удаление)",
		Args:  cobra.ExactArgs(1),
		Long: `Удаляет элемент списка чтения.

Пример:
  readlist delete bbbbbbbb-0000-0000-0000-000000000001
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			item, err := c.DeleteItem(app.Creds.AccessToken, args[0])
			if err != nil {
				return err
			}

			// элемента больше нет на сервере, убираем его из кеша
			app.Items.Delete(item.ID)
			if err := SaveItemsToFile(app.ItemsPath, app.Items); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "item deleted: %s (%s)\n", item.ID, item.Title)
			return nil
		},
	}

	return cmd
}
