package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// create or update the keeper tables registered by the stores
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate keeper tables (markets, ledger, prices, reports, events)",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate keeper tables:", err)
			return
		}

		cmd.Println("keeper tables migrated")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
