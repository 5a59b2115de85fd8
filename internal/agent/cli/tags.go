package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTagsCmd создаёт CLI-команду списка тегов пользователя.
//
// Пример использования:
//
//	readlist tags
func NewTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Список тегов текущего пользователя",
		Long: `Выводит все теги, использованные в элементах пользователя.

Пример:
  readlist tags
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.AccessToken == "" {
				return fmt.Errorf("no access_token, run: readlist login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.ListTags(app.Creds.AccessToken)
			if err != nil {
				return err
			}

			if len(resp.Tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tags")
				return nil
			}
			for _, t := range resp.Tags {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	return cmd
}
