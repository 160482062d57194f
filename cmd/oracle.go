package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var oracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "manage price oracle",
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "manage oracle providers",
}

var addProviderCmd = &cobra.Command{
	Use:   "add <account>",
	Short: "add oracle provider",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := provideDatabase()
		defer db.Close()

		if err := provideOracleProviderStore(db).Save(cmd.Context(), args[0]); err != nil {
			cmd.PrintErrln("save provider", err)
			return
		}

		cmd.Println("provider added:", args[0])
	},
}

var removeProviderCmd = &cobra.Command{
	Use:     "rm <account>",
	Aliases: []string{"remove"},
	Short:   "remove oracle provider",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db := provideDatabase()
		defer db.Close()

		if err := provideOracleProviderStore(db).Delete(cmd.Context(), args[0]); err != nil {
			cmd.PrintErrln("delete provider", err)
			return
		}

		cmd.Println("provider removed:", args[0])
	},
}

var listProvidersCmd = &cobra.Command{
	Use:   "list",
	Short: "list oracle providers",
	Run: func(cmd *cobra.Command, args []string) {
		db := provideDatabase()
		defer db.Close()

		providers, err := provideOracleProviderStore(db).FindAll(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list providers", err)
			return
		}

		for _, p := range providers {
			cmd.Println(p.Account)
		}
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <currency> [round]",
	Short: "aggregate the price of a round without storing it",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		db := provideDatabase()
		defer db.Close()

		round, err := provideBlockService().GetBlock(ctx, time.Now())
		if err != nil {
			cmd.PrintErrln("current round", err)
			return
		}

		if len(args) > 1 {
			if round, err = cast.ToInt64E(args[1]); err != nil {
				cmd.PrintErrln("invalid round", args[1])
				return
			}
		}

		providers, err := provideOracleProviderStore(db).FindAll(ctx)
		if err != nil {
			cmd.PrintErrln("list providers", err)
			return
		}

		accounts := make([]string, 0, len(providers))
		for _, p := range providers {
			accounts = append(accounts, p.Account)
		}

		price, err := providePriceAggregator(providePriceReportStore(db)).Aggregate(ctx, round, accounts, args[0])
		if err != nil {
			cmd.PrintErrln("aggregate", err)
			return
		}

		data, _ := json.MarshalIndent(price, "", "  ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(oracleCmd)
	oracleCmd.AddCommand(providerCmd, aggregateCmd)
	providerCmd.AddCommand(addProviderCmd, removeProviderCmd, listProvidersCmd)
}
