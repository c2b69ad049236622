package receipts

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/kvittoapp/kvitto-api/internal/config"
	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// Source identifies one receipt document. Location is an HTTP(S) URL
// or a local file path.
type Source struct {
	Name     string
	Location string
}

func sourcesFromLocations(locations []string) []Source {
	sources := make([]Source, 0, len(locations))
	for _, loc := range locations {
		name := loc
		if i := strings.LastIndexByte(loc, '/'); i >= 0 && i < len(loc)-1 {
			name = loc[i+1:]
		}
		sources = append(sources, Source{Name: name, Location: loc})
	}
	return sources
}

// Fetcher loads and decodes the configured receipt documents. An
// unavailable or unreadable document is skipped with a warning; the
// remaining documents still contribute records.
type Fetcher struct {
	lineItemSources []Source
	receiptSources  []Source
	client          *http.Client
}

// NewFetcher creates a fetcher from the receipts configuration. The
// fetch timeout bounds each document individually and fails open.
func NewFetcher(cfg *config.ReceiptsConfig) *Fetcher {
	return &Fetcher{
		lineItemSources: sourcesFromLocations(cfg.LineItemSources),
		receiptSources:  sourcesFromLocations(cfg.ReceiptSources),
		client:          &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// FetchLineItems loads every configured line-item document and
// concatenates their records. Warnings name the skipped documents.
func (f *Fetcher) FetchLineItems(ctx context.Context) ([]entity.RawLineItem, []string) {
	var items []entity.RawLineItem
	var warnings []string

	for _, src := range f.lineItemSources {
		data, err := f.fetch(ctx, src)
		if err != nil {
			warnings = append(warnings, skipWarning(src, err))
			continue
		}
		decoded, err := DecodeLineItems(data)
		if err != nil {
			warnings = append(warnings, skipWarning(src, err))
			continue
		}
		items = append(items, decoded...)
	}

	return items, warnings
}

// FetchReceiptHeaders loads every configured receipt document and
// concatenates their header records.
func (f *Fetcher) FetchReceiptHeaders(ctx context.Context) ([]entity.RawReceiptHeader, []string) {
	var headers []entity.RawReceiptHeader
	var warnings []string

	for _, src := range f.receiptSources {
		data, err := f.fetch(ctx, src)
		if err != nil {
			warnings = append(warnings, skipWarning(src, err))
			continue
		}
		decoded, err := DecodeReceiptHeaders(data)
		if err != nil {
			warnings = append(warnings, skipWarning(src, err))
			continue
		}
		headers = append(headers, decoded...)
	}

	return headers, warnings
}

func (f *Fetcher) fetch(ctx context.Context, src Source) ([]byte, error) {
	if strings.HasPrefix(src.Location, "http://") || strings.HasPrefix(src.Location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(src.Location)
}

func skipWarning(src Source, err error) string {
	msg := fmt.Sprintf("skipped document %s: %v", src.Name, err)
	log.Printf("Warning: %s", msg)
	return msg
}
