package cmd

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evgrid/evdemand/core/weighting"
)

var (
	weightsYear int
	weightsArea string
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the daily weighting factors for a model year",
	RunE:  runWeights,
}

func init() {
	weightsCmd.Flags().IntVar(&weightsYear, "year", 2017, "model year")
	weightsCmd.Flags().StringVar(&weightsArea, "area", "urban", "area type: urban or rural")
	rootCmd.AddCommand(weightsCmd)
}

func runWeights(cmd *cobra.Command, args []string) error {
	values, err := weighting.Daily(weightsYear, weighting.AreaType(weightsArea))
	if err != nil {
		return err
	}
	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"day", "weight"}); err != nil {
		return err
	}
	for i, v := range values {
		rec := []string{strconv.Itoa(i + 1), strconv.FormatFloat(v, 'g', -1, 64)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
