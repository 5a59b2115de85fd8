// Package cli реализует командный интерфейс (CLI) клиентского приложения readlist.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных (access/refresh токены) из конфигурационного файла;
//   - загрузку локальной копии списка чтения;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/config"
	"github.com/mvoronkova/readlist/internal/agent/memory"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
//
// В структуре хранятся параметры подключения к серверу, загруженные учётные
// данные и локальная копия списка чтения.
// Экземпляр App создаётся при построении root-команды и передаётся в подкоманды.
type App struct {
	// ServerURL — базовый URL сервера readlist (например, "http://127.0.0.1:8080").
	ServerURL string

	// CredsPath — путь к файлу с сохранёнными учётными данными (access/refresh токены).
	CredsPath string
	// Creds — загруженные учётные данные из файла конфигурации.
	// Может быть nil, если загрузка не выполнялась или завершилась ошибкой.
	Creds *config.Credentials

	// ItemsPath — путь к файлу с локальной копией списка чтения.
	ItemsPath string
	// Items — локальная копия списка чтения (заполняется командой sync).
	Items *memory.ItemsStore
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE выполняется инициализация состояния приложения:
// определяются пути к локальным файлам и загружаются сохранённые токены и элементы.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ServerURL: "http://127.0.0.1:8080",
		Items:     memory.NewItems(),
	}

	cmd := &cobra.Command{
		Use:   "readlist",
		Short: "Readlist CLI — личный список чтения (книги и статьи)",
		Long: `Readlist CLI.

Команды:
  register  Регистрация нового пользователя
  login     Логин (получить access/refresh)
  refresh   Обновить access по refresh токену
  logout    Отозвать все сессии на сервере
  me        Профиль текущего пользователя
  add       Добавить книгу или статью
  get       Показать элемент по id
  list      Список с фильтрами
  update    Частичное обновление элемента
  delete    Удалить элемент (soft delete)
  tags      Все метки пользователя
  sync      Скачать список локально
  version   Версия и дата сборки

Примеры:

Регистрация:
  readlist register --email test@example.com --password StrongPass123 --name "Иван"

Логин:
  readlist login --email test@example.com --password StrongPass123
  (сохраняет access и refresh токены в локальном конфиге)

Добавление книги:
  readlist add --title "The Go Programming Language" --kind book --priority high --tag go

Список непрочитанного:
  readlist list --status planned --sort-by priority --sort-order desc
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds

			ip, err := memory.DefaultItemsPath()
			if err != nil {
				return err
			}
			app.ItemsPath = ip

			return memory.LoadFromFile(app.ItemsPath, app.Items)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "http://127.0.0.1:8080", "server base URL")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewRefreshCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))
	cmd.AddCommand(ItemAdd(app))
	cmd.AddCommand(ItemGet(app))
	cmd.AddCommand(ItemList(app))
	cmd.AddCommand(ItemUpdate(app))
	cmd.AddCommand(ItemDelete(app))
	cmd.AddCommand(NewTagsCmd(app))
	cmd.AddCommand(ItemSync(app))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
