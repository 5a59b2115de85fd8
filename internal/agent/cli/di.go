package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvoronkova/readlist/internal/agent/api"
	"github.com/mvoronkova/readlist/internal/agent/memory"
)

// для тестов
var (
	NewAPIClient    = api.NewClient
	SaveItemsToFile = memory.SaveToFile
	ReadPassword    = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
)
