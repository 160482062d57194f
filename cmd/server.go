package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"keeper/handler"
	"keeper/handler/hc"
	"keeper/handler/rest"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run keeper api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		db := provideDatabase()
		defer db.Close()

		stores := rest.Stores{
			Markets:  provideMarketStore(db),
			Borrows:  provideBorrowStore(db),
			Deposits: provideDepositStore(db),
			Prices:   providePriceStore(db),
			Events:   provideEventStore(db),
		}

		svr := handler.New(stores, provideLiquidationService(db, true))

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, provideBlockService()))
		}

		{
			//restful api
			mux.Mount("/api", svr.HandleRestAPI())
		}

		{
			//metrics
			mux.Handle("/metrics", promhttp.Handler())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
