package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMeCmd создаёт CLI-команду показа профиля текущего пользователя.
//
// Пример использования:
//
//	readlist me
func NewMeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Профиль текущего пользователя",
		Long: `Показывает профиль пользователя, которому принадлежит access токен.

Пример:
  readlist me
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Me(app.Creds.AccessToken)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id=%s\nemail=%s\nname=%s\nregistered=%s\n",
				resp.ID, resp.Email, resp.DisplayName, resp.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}

	return cmd
}
