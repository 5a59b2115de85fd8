package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/api"
	"github.com/mvoronkova/readlist/internal/agent/memory"
)

// ItemSync создаёт CLI-команду полной синхронизации списка чтения.
//
// Команда постранично выкачивает все элементы пользователя с сервера,
// полностью заменяет локальное состояние и сохраняет его в файл.
//
// Пример использования:
//
//	readlist sync
func ItemSync(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Синхронизировать локальную копию списка с сервером",
		Long: `Полная синхронизация: скачивает все элементы пользователя с сервера
и заменяет локальное состояние.

Пример:
  readlist sync
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)

			const pageSize = 100
			var all []memory.Item
			for offset := 0; ; offset += pageSize {
				resp, err := c.ListItems(app.Creds.AccessToken, api.ListItemsQuery{
					Limit:  pageSize,
					Offset: offset,
				})
				if err != nil {
					return err
				}
				for _, it := range resp.Items {
					all = append(all, memory.Item{
						ID:        it.ID,
						Title:     it.Title,
						Kind:      it.Kind,
						Status:    it.Status,
						Priority:  it.Priority,
						Notes:     it.Notes,
						Tags:      it.Tags,
						CreatedAt: it.CreatedAt,
						UpdatedAt: it.UpdatedAt,
					})
				}
				if len(resp.Items) < pageSize {
					break
				}
			}

			// локальное состояние строго равно серверному
			app.Items.ReplaceAll(all)
			if err := SaveItemsToFile(app.ItemsPath, app.Items); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "synced %d items\n", len(all))
			return nil
		},
	}

	return cmd
}
