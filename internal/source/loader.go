// Package source fetches the event document and projects it into records.
//
// The decoder itself never fails; this package owns every failure mode of
// getting bytes to it (missing files, unreachable hosts, non-success status
// codes, unreadable workbooks). Errors here are recoverable: the caller's
// snapshot store keeps serving the previous dataset.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/eventdeck/internal/catalog"
	"github.com/JonMunkholm/eventdeck/internal/csv"
	"github.com/xuri/excelize/v2"
)

// maxDocumentSize caps how much of a source document is read (32MB). The
// whole document is decoded at once, so an unbounded upstream response could
// exhaust memory.
const maxDocumentSize = 32 << 20

// Loader fetches one configured source document. It implements
// catalog.Loader.
type Loader struct {
	// Path is a local file; .xlsx is read as a workbook, anything else as
	// CSV text. Ignored when URL is set.
	Path string

	// URL is an HTTP(S) location serving CSV text.
	URL string

	// FetchTimeout bounds a URL fetch. Zero means the client default.
	FetchTimeout time.Duration

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// Load fetches the document and projects it into records.
func (l *Loader) Load(ctx context.Context) (catalog.Dataset, error) {
	switch {
	case l.URL != "":
		return l.loadURL(ctx)
	case strings.EqualFold(filepath.Ext(l.Path), ".xlsx"):
		return l.loadWorkbook()
	case l.Path != "":
		return l.loadFile()
	default:
		return catalog.Dataset{}, fmt.Errorf("no source configured: set a path or URL")
	}
}

// Name describes the configured source for logs and status reporting.
func (l *Loader) Name() string {
	if l.URL != "" {
		return l.URL
	}
	return filepath.Base(l.Path)
}

func (l *Loader) loadFile() (catalog.Dataset, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("reading source file: %w", err)
	}
	return l.project(string(data)), nil
}

func (l *Loader) loadURL(ctx context.Context) (catalog.Dataset, error) {
	if l.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.FetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("building source request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("fetching source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return catalog.Dataset{}, fmt.Errorf("fetching source: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("reading source response: %w", err)
	}

	return l.project(string(data)), nil
}

// loadWorkbook reads the first sheet of an xlsx file. Sheet rows go through
// the same record projection as decoded CSV rows, so both inputs behave
// identically downstream.
func (l *Loader) loadWorkbook() (catalog.Dataset, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return catalog.Dataset{}, fmt.Errorf("workbook %s has no sheets", filepath.Base(l.Path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	headers, records := csv.Records(rows)
	return catalog.Dataset{
		SourceName: l.Name(),
		Headers:    headers,
		Records:    records,
	}, nil
}

func (l *Loader) project(text string) catalog.Dataset {
	headers, records := csv.DecodeRecords(text)
	return catalog.Dataset{
		SourceName: l.Name(),
		Headers:    headers,
		Records:    records,
	}
}
