package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/JonMunkholm/eventdeck/internal/catalog"
	"github.com/JonMunkholm/eventdeck/internal/csv"
	"github.com/spf13/cobra"
)

var (
	filterSearch string
	filterFrom   string
	filterTo     string
	filterFormat string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file-or-url>",
	Short: "Filter a source document and print the matching records",
	Long: `Filter applies the catalog filter to a source document: an optional
case-insensitive title substring and an optional inclusive date range.
Matching records are printed in source order as CSV or JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fields, err := loadFieldMap()
		if err != nil {
			return err
		}

		criteria := catalog.Criteria{Search: filterSearch}
		if filterFrom != "" {
			t, ok := catalog.ParseWhen(filterFrom)
			if !ok {
				return fmt.Errorf("invalid date %q for --from", filterFrom)
			}
			criteria.From = &t
		}
		if filterTo != "" {
			t, ok := catalog.ParseWhen(filterTo)
			if !ok {
				return fmt.Errorf("invalid date %q for --to", filterTo)
			}
			criteria.To = &t
		}

		matched := catalog.Filter(ds.Records, fields, criteria)

		switch filterFormat {
		case "csv":
			return csv.Write(os.Stdout, ds.Headers, matched)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(matched)
		default:
			return fmt.Errorf("unknown format %q, expected csv or json", filterFormat)
		}
	},
}

func init() {
	filterCmd.Flags().StringVarP(&filterSearch, "search", "s", "",
		"case-insensitive title substring")
	filterCmd.Flags().StringVar(&filterFrom, "from", "",
		"earliest start date, inclusive")
	filterCmd.Flags().StringVar(&filterTo, "to", "",
		"latest start date, inclusive of the whole day")
	filterCmd.Flags().StringVarP(&filterFormat, "format", "f", "csv",
		"output format: csv or json")

	rootCmd.AddCommand(filterCmd)
}
