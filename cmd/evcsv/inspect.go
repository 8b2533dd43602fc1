package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file-or-url>",
	Short: "Summarize a source document",
	Long: `Inspect decodes a source document and reports its headers, record count,
and how many records resolve to a title and a start date under the current
field mapping. Use it to check a document before serving it.`,
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

		var titled, dated int
		for _, rec := range ds.Records {
			if fields.Title(rec) != "" {
				titled++
			}
			if _, ok := fields.Start(rec); ok {
				dated++
			}
		}

		fmt.Printf("Source:  %s\n", ds.SourceName)
		fmt.Printf("Records: %d\n", len(ds.Records))
		fmt.Printf("Headers: %d\n", len(ds.Headers))
		for _, h := range ds.Headers {
			fmt.Printf("  - %s\n", h)
		}
		fmt.Printf("With title: %d/%d\n", titled, len(ds.Records))
		fmt.Printf("With start date: %d/%d\n", dated, len(ds.Records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
