package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := api.NewApp(log)
		log.Info().Str("addr", serveAddr).Msg("starting http server")
		return app.Listen(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
