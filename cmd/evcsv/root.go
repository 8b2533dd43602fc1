package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/catalog"
	"github.com/JonMunkholm/eventdeck/internal/source"
	"github.com/spf13/cobra"
)

// fieldsFile optionally overrides the candidate header names used to
// resolve event titles and start dates.
var fieldsFile string

var rootCmd = &cobra.Command{
	Use:   "evcsv",
	Short: "Inspect and filter event CSV/XLSX documents",
	Long: `evcsv decodes event source documents the same way the catalog server does:
local CSV or XLSX files as well as HTTP(S) URLs are accepted, malformed CSV
never fails, and filtering matches the server's /api/events semantics.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fieldsFile, "fields", "",
		"YAML file overriding title/start candidate header names")
}

// loadDocument fetches and projects the document named by arg, which may be
// a local path or an HTTP(S) URL.
func loadDocument(ctx context.Context, arg string) (catalog.Dataset, error) {
	loader := &source.Loader{FetchTimeout: 30 * time.Second}
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		loader.URL = arg
	} else {
		loader.Path = arg
	}
	return loader.Load(ctx)
}

// loadFieldMap resolves the field mapping from the --fields flag, falling
// back to the built-in candidates.
func loadFieldMap() (catalog.FieldMap, error) {
	if fieldsFile == "" {
		return catalog.DefaultFields(), nil
	}
	return catalog.LoadFields(fieldsFile)
}
