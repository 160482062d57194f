package cmd

import (
	"encoding/json"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage markets",
}

var addMarketCmd = &cobra.Command{
	Use:     "add <currency>",
	Aliases: []string{"am"},
	Short:   "list a market",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		db := provideDatabase()
		defer db.Close()

		collateralFactor, _ := cmd.Flags().GetString("collateral-factor")
		reserveFactor, _ := cmd.Flags().GetString("reserve-factor")

		market := &core.Market{
			Currency:         args[0],
			BorrowIndex:      fixed.One(),
			CollateralFactor: fixed.MustFromString(collateralFactor),
			ReserveFactor:    fixed.MustFromString(reserveFactor),
		}

		if err := provideMarketStore(db).Create(ctx, market); err != nil {
			cmd.PrintErrln("create market", err)
			return
		}

		cmd.Println("market listed:", market.Currency)
	},
}

var rateModelCmd = &cobra.Command{
	Use:   "ratemodel <currency> <base_rate> <multiplier> <jump_multiplier> <kink>",
	Short: "update the jump rate model, rates are per year",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		params := make([]fixed.Number, 0, 4)
		for _, arg := range args[1:] {
			n, err := fixed.NewFromString(arg)
			if err != nil {
				cmd.PrintErrln("invalid rate", arg, err)
				return
			}

			params = append(params, n)
		}

		db := provideDatabase()
		defer db.Close()

		markets := provideMarketStore(db)
		rates := provideRateService(markets, provideEventStore(db))
		if err := rates.UpdateJumpRateModel(ctx, args[0], params[0], params[1], params[2], params[3]); err != nil {
			cmd.PrintErrln("update rate model", err)
			return
		}

		cmd.Println("rate model updated:", args[0])
	},
}

var listMarketsCmd = &cobra.Command{
	Use:   "list",
	Short: "list markets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		db := provideDatabase()
		defer db.Close()

		markets, err := provideMarketStore(db).All(ctx)
		if err != nil {
			cmd.PrintErrln("list markets", err)
			return
		}

		data, _ := json.MarshalIndent(markets, "", "  ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(addMarketCmd, rateModelCmd, listMarketsCmd)

	addMarketCmd.Flags().String("collateral-factor", "0.75", "collateral factor")
	addMarketCmd.Flags().String("reserve-factor", "0.1", "reserve factor")
}
