package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/memory"
	sharedModels "github.com/mvoronkova/readlist/internal/shared/models"
)

// ItemAdd создаёт CLI-команду добавления элемента в список чтения.
//
// Команда отправляет новый элемент на сервер и сохраняет созданный
// элемент в локальное хранилище.
//
// Пример использования:
//
//	readlist add --title "The Go Programming Language" --kind book --priority high --tag go
func ItemAdd(app *App) *cobra.Command {
	var (
		title    string
		kind     string
		status   string
		priority string
		notes    string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить элемент в список чтения",
		Long: `Добавляет новый элемент в список чтения.

Пример:
  readlist add --title "The Go Programming Language" --kind book --priority high --tag go --tag книги
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			req := sharedModels.CreateItemRequest{
				Title:    title,
				Kind:     kind,
				Status:   status,
				Priority: priority,
				Notes:    notes,
				Tags:     tags,
			}

			c := NewAPIClient(app.ServerURL)
			item, err := c.CreateItem(app.Creds.AccessToken, req)
			if err != nil {
				return err
			}

			// кешируем созданный элемент локально
			app.Items.Upsert(memory.Item{
				ID:        item.ID,
				Title:     item.Title,
				Kind:      item.Kind,
				Status:    item.Status,
				Priority:  item.Priority,
				Notes:     item.Notes,
				Tags:      item.Tags,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			})
			if err := SaveItemsToFile(app.ItemsPath, app.Items); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "item created: %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "item title")
	cmd.Flags().StringVar(&kind, "kind", "", "item kind (book|article)")
	cmd.Flags().StringVar(&status, "status", "", "item status (planned|reading|done)")
	cmd.Flags().StringVar(&priority, "priority", "", "item priority (low|normal|high)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("kind")

	return cmd
}
