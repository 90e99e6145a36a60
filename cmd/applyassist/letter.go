package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/fetch"
	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/types"
)

var (
	letterConfigPath  string
	letterCVPath      string
	letterProfilePath string
	letterOffersPath  string
	letterOutPath     string
	letterOfferID     string
	letterOfferURL    string
	letterNote        string
	letterTextOnly    bool
	letterSave        bool
)

var letterCmd = &cobra.Command{
	Use:     "letter",
	Aliases: []string{"generate"},
	Short:   "Generate a cover letter for one offer",
	Long: `Generates a cover letter for the selected offer through the configured
provider chain. The chain always terminates in a deterministic template, so a
letter is produced even when every remote provider is down.`,
	RunE: runLetter,
}

func init() {
	letterCmd.Flags().StringVar(&letterConfigPath, "config", "", "Path to config.json file")
	letterCmd.Flags().StringVar(&letterCVPath, "cv", "", "Path to the CV document (.pdf, .docx, .txt)")
	letterCmd.Flags().StringVar(&letterProfilePath, "profile", "", "Path to an already parsed profile JSON")
	letterCmd.Flags().StringVar(&letterOffersPath, "offers", "", "Path to a JSON offer catalog (defaults to offers_path or the database)")
	letterCmd.Flags().StringVar(&letterOfferID, "offer-id", "", "ID of the offer to apply to")
	letterCmd.Flags().StringVar(&letterOfferURL, "offer-url", "", "URL of a job posting to fetch and apply to")
	letterCmd.Flags().StringVar(&letterNote, "note", "", "Custom message to include in the letter")
	letterCmd.Flags().BoolVar(&letterTextOnly, "text", false, "Print only the letter text instead of JSON")
	letterCmd.Flags().BoolVar(&letterSave, "save", false, "Record the application in the database")
	letterCmd.Flags().StringVar(&letterOutPath, "out", "", "Write the result to a file instead of stdout")
	letterCmd.MarkFlagsOneRequired("cv", "profile")
	letterCmd.MarkFlagsMutuallyExclusive("cv", "profile")
	letterCmd.MarkFlagsOneRequired("offer-id", "offer-url")
	letterCmd.MarkFlagsMutuallyExclusive("offer-id", "offer-url")
	rootCmd.AddCommand(letterCmd)
}

func runLetter(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, letterConfigPath)
	if err != nil {
		return err
	}
	defer a.close()

	candidate, err := a.resolveProfile(letterCVPath, letterProfilePath)
	if err != nil {
		return err
	}

	var rawOffer types.RawOffer
	if letterOfferURL != "" {
		rawOffer, err = fetch.Offer(ctx, letterOfferURL, nil)
		if err != nil {
			return err
		}
	} else {
		catalog, err := a.loadCatalog(ctx, letterOffersPath)
		if err != nil {
			return err
		}
		for _, record := range catalog {
			if offers.Resolve(record, offers.FieldID) == letterOfferID {
				rawOffer = record
				break
			}
		}
		if rawOffer == nil {
			return fmt.Errorf("offer not found in catalog: %s", letterOfferID)
		}
	}

	letter := a.coordinator.GenerateLetter(ctx, candidate, rawOffer, letterNote)

	if letterSave {
		if a.database == nil {
			return fmt.Errorf("--save requires DATABASE_URL to be configured")
		}
		id, err := a.database.SaveApplication(ctx, candidate.Name, offers.Resolve(rawOffer, offers.FieldID), letter)
		if err != nil {
			return err
		}
		a.log.Info("application recorded", zap.String("application_id", id.String()))
	}

	if letterTextOnly {
		fmt.Println(letter.Text)
		return nil
	}
	return writeJSON(letterOutPath, letter)
}
