package main

import (
	"github.com/spf13/cobra"

	"github.com/mathieu/applyassist/internal/server"
)

var (
	serveConfigPath string
	serveAddr       string
	serveOffersPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Starts an HTTP server exposing offer ranking, letter generation, and CV parsing endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to config listen_addr)")
	serveCmd.Flags().StringVar(&serveOffersPath, "offers", "", "Path to a JSON offer catalog (defaults to offers_path or the database)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, serveConfigPath)
	if err != nil {
		return err
	}
	defer a.close()

	var source server.OfferSource
	var store server.ApplicationStore
	if a.database != nil {
		source = a.database
		store = a.database
	}
	// A file catalog takes precedence; it is loaded once at startup.
	if path := firstNonEmpty(serveOffersPath, a.cfg.OffersPath); path != "" {
		catalog, err := a.loadCatalog(ctx, path)
		if err != nil {
			return err
		}
		source = server.StaticOffers(catalog)
	}

	addr := firstNonEmpty(serveAddr, a.cfg.ListenAddr)
	srv := server.New(server.Config{ListenAddr: addr, TopN: a.cfg.TopN}, a.coordinator, source, store, a.log)
	return srv.Start()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
