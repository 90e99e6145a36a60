package main

import (
	"github.com/spf13/cobra"

	"github.com/mathieu/applyassist/internal/ranking"
)

var (
	rankConfigPath  string
	rankCVPath      string
	rankProfilePath string
	rankOffersPath  string
	rankOutPath     string
	rankTopN        int
	rankType        string
	rankLocation    string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank job offers against a CV",
	Long:  "Scores every offer in the catalog against the candidate CV and prints the best matches with explanations as JSON.",
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankConfigPath, "config", "", "Path to config.json file")
	rankCmd.Flags().StringVar(&rankCVPath, "cv", "", "Path to the CV document (.pdf, .docx, .txt)")
	rankCmd.Flags().StringVar(&rankProfilePath, "profile", "", "Path to an already parsed profile JSON")
	rankCmd.Flags().StringVar(&rankOffersPath, "offers", "", "Path to a JSON offer catalog (defaults to offers_path or the database)")
	rankCmd.Flags().StringVar(&rankOutPath, "out", "", "Write results to a file instead of stdout")
	rankCmd.Flags().IntVar(&rankTopN, "top", 0, "Maximum number of results (defaults to config top_n)")
	rankCmd.Flags().StringVar(&rankType, "type", "", "Filter by employment type")
	rankCmd.Flags().StringVar(&rankLocation, "location", "", "Filter by location substring")
	rankCmd.MarkFlagsOneRequired("cv", "profile")
	rankCmd.MarkFlagsMutuallyExclusive("cv", "profile")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, rankConfigPath)
	if err != nil {
		return err
	}
	defer a.close()

	candidate, err := a.resolveProfile(rankCVPath, rankProfilePath)
	if err != nil {
		return err
	}
	catalog, err := a.loadCatalog(ctx, rankOffersPath)
	if err != nil {
		return err
	}

	topN := rankTopN
	if topN <= 0 {
		topN = a.cfg.TopN
	}
	results := a.coordinator.RankOffers(ctx, candidate, catalog, topN, ranking.Filters{
		EmploymentType: rankType,
		Location:       rankLocation,
	})

	return writeJSON(rankOutPath, results)
}
