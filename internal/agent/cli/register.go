package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Команда выполняет регистрацию пользователя на сервере readlist
// с использованием email, пароля и отображаемого имени. Обязательны
// флаги --email и --name. Пароль можно передать флагом --password,
// прочитать из STDIN (--password-stdin) или ввести интерактивно.
//
// Пример использования:
//
//	readlist register --email test@example.com --password StrongPass123 --name "Иван"
//
// В случае успешной регистрации пользователю выводится сообщение
// об успешном завершении операции.
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		email             string
		password          string
		displayName       string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  readlist register --email test@example.com --password StrongPass123 --name "Иван"

Для скриптов пароль можно прочитать из STDIN:
  echo "StrongPass123" | readlist register --email test@example.com --name "Иван" --password-stdin
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

			c := NewAPIClient(app.ServerURL)
			// выполняет добавление нового пользователя в бд
			_, err := c.Register(email, pw, displayName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "registration successful")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password for registration (omit to enter interactively)")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}
