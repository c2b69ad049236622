package service

import (
	"context"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
)

// ReceiptFetcher loads the raw receipt documents. Implemented by the
// receipts infrastructure; faked in tests.
type ReceiptFetcher interface {
	FetchLineItems(ctx context.Context) ([]entity.RawLineItem, []string)
	FetchReceiptHeaders(ctx context.Context) ([]entity.RawReceiptHeader, []string)
}

// loadPurchases fetches both document classes and joins them into
// normalized purchases. Everything is re-derived on every call; the
// pipeline keeps no state between requests. Warnings from skipped
// documents are passed through so responses can degrade gracefully.
func loadPurchases(ctx context.Context, fetcher ReceiptFetcher, now time.Time) ([]entity.NormalizedPurchase, []entity.RawReceiptHeader, []string) {
	items, itemWarnings := fetcher.FetchLineItems(ctx)
	headers, headerWarnings := fetcher.FetchReceiptHeaders(ctx)

	warnings := append(itemWarnings, headerWarnings...)
	purchases := aggregate.Normalize(items, headers, now)
	return purchases, headers, warnings
}
