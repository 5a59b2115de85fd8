package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/config"
)

// NewLogoutCmd создаёт CLI-команду выхода.
//
// Команда отзывает все refresh-сессии пользователя на сервере
// и очищает локально сохранённые токены.
//
// Пример использования:
//
//	readlist logout
func NewLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Отозвать все сессии и удалить локальные токены",
		Long: `Выход: отзывает все refresh-сессии на сервере и чистит локальные токены.

Пример:
  readlist logout
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			if err := c.Logout(app.Creds.AccessToken); err != nil {
				return err
			}

			// токены больше не действительны, чистим локальный конфиг
			app.Creds.AccessToken = ""
			app.Creds.RefreshToken = ""
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logout ok (sessions revoked)")
			return nil
		},
	}

	return cmd
}
