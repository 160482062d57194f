package cmd

import (
	"encoding/json"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var liquidateCmd = &cobra.Command{
	Use:   "liquidate",
	Short: "run one liquidation cycle",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		db := provideDatabase()
		defer db.Close()

		liquidations, err := provideLiquidationService(db, dryRun).Run(ctx)
		if err != nil {
			log.WithError(err).Errorln("liquidate failed")
			return
		}

		data, _ := json.MarshalIndent(liquidations, "", "  ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(liquidateCmd)
	liquidateCmd.Flags().Bool("dry-run", false, "plan and log liquidations without submitting")
}
