package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/fetch"
	"github.com/mathieu/applyassist/internal/offers"
)

var (
	fetchConfigPath string
	fetchURL        string
	fetchSave       bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a job posting from a URL into a catalog offer",
	Long: `Downloads a job posting page, strips navigation and application-form
noise, and prints the resulting offer as JSON. Greenhouse, Lever and Workday
postings get platform-specific extraction. With --save the offer is stored in
the database catalog.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchConfigPath, "config", "", "Path to config.json file")
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "URL of the job posting")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "Store the fetched offer in the database")
	_ = fetchCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, fetchConfigPath)
	if err != nil {
		return err
	}
	defer a.close()

	offer, err := fetch.Offer(ctx, fetchURL, nil)
	if err != nil {
		return err
	}
	a.log.Info("posting fetched",
		zap.String("url", fetchURL),
		zap.String("platform", string(fetch.DetectPlatform(fetchURL))),
		zap.String("title", offers.Resolve(offer, offers.FieldTitle)))

	if fetchSave {
		if a.database == nil {
			return fmt.Errorf("--save requires DATABASE_URL to be configured")
		}
		offerID := offers.Resolve(offer, offers.FieldID)
		if err := a.database.SaveOffer(ctx, offerID, offer); err != nil {
			return err
		}
		a.log.Info("offer saved", zap.String("offer_id", offerID))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(offer); err != nil {
		return fmt.Errorf("failed to encode offer: %w", err)
	}
	return nil
}
