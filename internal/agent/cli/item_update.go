package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/memory"
	sharedModels "github.com/mvoronkova/readlist/internal/shared/models"
)

// ItemUpdate создаёт CLI-команду частичного обновления элемента.
//
// В запрос попадают только явно переданные флаги, остальные поля
// элемента не изменяются.
//
// Пример использования:
//
//	readlist update bbbbbbbb-0000-0000-0000-000000000001 --status done --notes "Дочитал"
func ItemUpdate(app *App) *cobra.Command {
	var (
		title    string
		kind     string
		status   string
		priority string
		notes    string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Частично обновить элемент",
		Args:  cobra.ExactArgs(1),
		Long: `Частично обновляет элемент: меняются только переданные флаги.

Пример:
  readlist update bbbbbbbb-0000-0000-0000-000000000001 --status done --notes "Дочитал"
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			var req sharedModels.UpdateItemRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("kind") {
				req.Kind = &kind
			}
			if cmd.Flags().Changed("status") {
				req.Status = &status
			}
			if cmd.Flags().Changed("priority") {
				req.Priority = &priority
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if cmd.Flags().Changed("tag") {
				req.Tags = &tags
			}

			c := NewAPIClient(app.ServerURL)
			item, err := c.UpdateItem(app.Creds.AccessToken, args[0], req)
			if err != nil {
				return err
			}

			// обновляем локальный кеш актуальным состоянием с сервера
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

			fmt.Fprintf(cmd.OutOrStdout(), "item updated: %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&kind, "kind", "", "new kind (book|article)")
	cmd.Flags().StringVar(&status, "status", "", "new status (planned|reading|done)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (low|normal|high)")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "replace tags (repeatable; pass none to clear)")

	return cmd
}
