package aggregate

import (
	"strings"
	"time"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// DateFormat is the canonical calendar-date layout used throughout the
// aggregation pipeline.
const DateFormat = "2006-01-02"

// permissive read layout: source timestamps occasionally carry
// single-digit month/day or inconsistent separators
const readDateFormat = "2006-1-2"

// Normalize joins line items to their receipt headers and produces one
// NormalizedPurchase per surviving line item. The header scan builds a
// transactionId lookup first; each line item then resolves its store
// and date through it. A line item whose transaction has no header is
// kept with the UnknownStore sentinel and now's date rather than
// dropped. now is injected so tests are deterministic.
func Normalize(items []entity.RawLineItem, headers []entity.RawReceiptHeader, now time.Time) []entity.NormalizedPurchase {
	type headerInfo struct {
		store string
		date  string
	}

	lookup := make(map[string]headerInfo, len(headers))
	for _, h := range headers {
		store := strings.TrimSpace(h.StoreName)
		if store == "" {
			store = entity.UnknownStore
		}
		lookup[h.TransactionID] = headerInfo{
			store: store,
			date:  NormalizeDate(h.Timestamp),
		}
	}

	fallbackDate := now.Format(DateFormat)

	purchases := make([]entity.NormalizedPurchase, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || it.Price <= 0 {
			continue
		}

		desc := strings.TrimSpace(it.ItemDescription)
		if desc == "" {
			desc = entity.UnknownItem
		}

		info, ok := lookup[it.TransactionID]
		if !ok {
			info = headerInfo{store: entity.UnknownStore, date: fallbackDate}
		}
		if info.date == "" {
			info.date = fallbackDate
		}

		purchases = append(purchases, entity.NormalizedPurchase{
			Date:            info.date,
			Store:           info.store,
			ItemDescription: desc,
			Quantity:        it.Quantity,
			UnitPrice:       it.Price / it.Quantity,
			DiscountValue:   it.DiscountValue,
			VoucherValue:    it.VoucherValue,
			TransactionID:   it.TransactionID,
		})
	}

	return purchases
}

// NormalizeDate truncates a "YYYY-MM-DD HH:MM:SS" timestamp to its date
// part and reformats it to the canonical layout. An unparseable input
// yields the empty string so the caller can apply its fallback.
func NormalizeDate(timestamp string) string {
	datePart, _, _ := strings.Cut(strings.TrimSpace(timestamp), " ")
	if datePart == "" {
		return ""
	}
	t, err := time.Parse(readDateFormat, datePart)
	if err != nil {
		return ""
	}
	return t.Format(DateFormat)
}
