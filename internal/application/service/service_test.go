package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
)

// fakeFetcher serves canned documents to the services under test.
type fakeFetcher struct {
	items    []entity.RawLineItem
	headers  []entity.RawReceiptHeader
	warnings []string
}

func (f *fakeFetcher) FetchLineItems(ctx context.Context) ([]entity.RawLineItem, []string) {
	return f.items, f.warnings
}

func (f *fakeFetcher) FetchReceiptHeaders(ctx context.Context) ([]entity.RawReceiptHeader, []string) {
	return f.headers, nil
}

var fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

// fixtureFetcher covers three receipts at two stores plus an orphan
// line item whose transaction has no header.
func fixtureFetcher() *fakeFetcher {
	return &fakeFetcher{
		items: []entity.RawLineItem{
			{ItemDescription: "Mellanmjölk", Quantity: 1, Price: 10, TransactionID: "txn-a"},
			{ItemDescription: "Bananer", Quantity: 2, Price: 30, TransactionID: "txn-a"},
			{ItemDescription: "Mellanmjölk", Quantity: 2, Price: 18, TransactionID: "txn-b"},
			{ItemDescription: "Mellanmjölk", Quantity: 1, Price: 8, TransactionID: "txn-c"},
			{ItemDescription: "Bananer", Quantity: 1, Price: 12, TransactionID: "txn-c"},
			{ItemDescription: "Kaffe", Quantity: 1, Price: 45, TransactionID: "txn-x"},
			{ItemDescription: "Pant", Quantity: 0, Price: 2, TransactionID: "txn-a"},
		},
		headers: []entity.RawReceiptHeader{
			{TransactionID: "txn-a", StoreName: "ICA Maxi", Timestamp: "2024-01-01 10:00:00", TotalAmount: 40, TotalDiscount: 2, VATAmount: 4.3, PaymentType: "Card", ReceiptType: "Purchase"},
			{TransactionID: "txn-b", StoreName: "ICA Maxi", Timestamp: "2024-01-05 18:30:00", TotalAmount: 28},
			{TransactionID: "txn-c", StoreName: "Willys", Timestamp: "2024-01-08 12:00:00", TotalAmount: 20},
		},
	}
}

func wantStatus(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected status %d, got %d (%s)", code, appErr.Code, appErr.Message)
	}
}
