package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evgrid/evdemand/core/assets"
)

var (
	assetsDataset string
	assetsIn      string
	assetsOut     string
	assetsYears   []int
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Clean a public grid-asset table and write it as CSV",
	RunE:  runAssets,
}

func init() {
	assetsCmd.Flags().StringVar(&assetsDataset, "dataset", "", "one of: powerplants, units, substations, eia860, crosswalk, needs, airmarkets, lines")
	assetsCmd.Flags().StringVar(&assetsIn, "in", "", "input file (or directory for airmarkets)")
	assetsCmd.Flags().StringVar(&assetsOut, "out", "", "output CSV file")
	assetsCmd.Flags().IntSliceVar(&assetsYears, "years", []int{2019}, "years to read (airmarkets)")
	if err := assetsCmd.MarkFlagRequired("dataset"); err != nil {
		panic(err)
	}
	if err := assetsCmd.MarkFlagRequired("in"); err != nil {
		panic(err)
	}
	if err := assetsCmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	if assetsDataset == "lines" {
		return writeLines(assetsIn, assetsOut)
	}

	var (
		t   *assets.Table
		err error
	)
	switch assetsDataset {
	case "powerplants":
		t, err = assets.PowerPlants(assetsIn)
	case "units":
		t, err = assets.GeneratingUnits(assetsIn)
	case "substations":
		t, err = assets.Substations(assetsIn)
	case "eia860":
		t, err = assets.EIAForm860(assetsIn)
	case "crosswalk":
		t, err = assets.Crosswalk(assetsIn)
	case "needs":
		t, err = assets.EPANeeds(assetsIn)
	case "airmarkets":
		t, err = assets.AirMarketsReadings(assetsIn, assetsYears)
	default:
		return fmt.Errorf("unknown dataset %q", assetsDataset)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(assetsOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteCSV(f)
}

func writeLines(in, out string) error {
	lines, err := assets.TransmissionLines(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	t := &assets.Table{Columns: []string{"id", "type", "status", "owner", "voltage_kv", "points"}}
	for _, l := range lines {
		voltage := ""
		if !math.IsNaN(l.VoltageKV) {
			voltage = strconv.FormatFloat(l.VoltageKV, 'f', -1, 64)
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(l.ID, 10),
			l.Type,
			l.Status,
			l.Owner,
			voltage,
			strconv.Itoa(len(l.Line)),
		})
	}
	return t.WriteCSV(f)
}
