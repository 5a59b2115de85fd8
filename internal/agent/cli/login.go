package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда выполняет аутентификацию пользователя на сервере readlist,
// получает пару access/refresh токенов и сохраняет их в локальный
// конфигурационный файл.
//
// Пароль можно передать флагом --password, прочитать из STDIN
// (--password-stdin) или ввести интерактивно со скрытым вводом.
//
// Пример использования:
//
//	readlist login --email test@example.com --password StrongPass123
//
// В случае успешного выполнения токены сохраняются локально, а пользователю
// выводится сообщение об успешном входе.
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email             string
		password          string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access/refresh токены)",
		Long: `Логин пользователя.

Пример:
  readlist login --email test@example.com --password StrongPass123
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := password
			if pw == "" {
				var err error
				pw, err = ReadPassword(cmd, passwordFromStdin)
				if err != nil {
					return err
				}
			}

			// создаём API-клиент для общения с сервером
			c := NewAPIClient(app.ServerURL)
			// выполняем логин пользователя
			resp, err := c.Login(email, pw)
			if err != nil {
				return err
			}

			// сохраняем полученные токены в состоянии приложения
			app.Creds.AccessToken = resp.AccessToken
			app.Creds.RefreshToken = resp.RefreshToken

			// сохраняем токены в локальный конфигурационный файл
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (tokens saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password for login (omit to enter interactively)")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}
