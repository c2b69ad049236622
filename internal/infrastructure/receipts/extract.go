package receipts

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// lineItemNode mirrors one <transactions> node of a line-item
// document. All fields are read as text so that missing or malformed
// values can default instead of failing the whole node.
type lineItemNode struct {
	Quantity        string `xml:"quantity"`
	Price           string `xml:"price"`
	ItemDesc        string `xml:"itemDesc"`
	TransactionID   string `xml:"transactionId"`
	DiscountValue   string `xml:"discountValue"`
	PersonalOfferID string `xml:"personalOfferId"`
	VoucherValue    string `xml:"voucherValue"`
}

// receiptNode mirrors one <transactions> node of a receipt document.
type receiptNode struct {
	TransactionID        string `xml:"transactionId"`
	MarketingName        string `xml:"marketingName"`
	TransactionTimestamp string `xml:"transactionTimestamp"`
	TransactionValue     string `xml:"transactionValue"`
	TotalDiscount        string `xml:"totalDiscount"`
	VATAmount            string `xml:"vatAmount"`
	PaymentType          string `xml:"paymentType"`
	ReceiptType          string `xml:"receiptType"`
}

// DecodeLineItems extracts the raw line-item records from a line-item
// document. Records with non-positive quantity or price are discarded;
// other missing fields default to zero values.
func DecodeLineItems(data []byte) ([]entity.RawLineItem, error) {
	var items []entity.RawLineItem
	err := forEachTransactionNode(data, func(dec *xml.Decoder, start xml.StartElement) error {
		var node lineItemNode
		if err := dec.DecodeElement(&node, &start); err != nil {
			return err
		}

		quantity := parseFloat(node.Quantity)
		price := parseFloat(node.Price)
		if quantity <= 0 || price <= 0 {
			return nil
		}

		items = append(items, entity.RawLineItem{
			ItemDescription: strings.TrimSpace(node.ItemDesc),
			Quantity:        quantity,
			Price:           price,
			TransactionID:   strings.TrimSpace(node.TransactionID),
			DiscountValue:   parseFloat(node.DiscountValue),
			PersonalOfferID: strings.TrimSpace(node.PersonalOfferID),
			VoucherValue:    parseFloat(node.VoucherValue),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DecodeReceiptHeaders extracts the receipt/header records from a
// receipt document. Missing fields default to 0 or the empty string.
func DecodeReceiptHeaders(data []byte) ([]entity.RawReceiptHeader, error) {
	var headers []entity.RawReceiptHeader
	err := forEachTransactionNode(data, func(dec *xml.Decoder, start xml.StartElement) error {
		var node receiptNode
		if err := dec.DecodeElement(&node, &start); err != nil {
			return err
		}

		headers = append(headers, entity.RawReceiptHeader{
			TransactionID: strings.TrimSpace(node.TransactionID),
			StoreName:     strings.TrimSpace(node.MarketingName),
			Timestamp:     strings.TrimSpace(node.TransactionTimestamp),
			TotalAmount:   parseFloat(node.TransactionValue),
			TotalDiscount: parseFloat(node.TotalDiscount),
			VATAmount:     parseFloat(node.VATAmount),
			PaymentType:   strings.TrimSpace(node.PaymentType),
			ReceiptType:   strings.TrimSpace(node.ReceiptType),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// forEachTransactionNode walks the document and invokes fn for every
// <transactions> element, whatever the surrounding root looks like.
func forEachTransactionNode(data []byte, fn func(*xml.Decoder, xml.StartElement) error) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "transactions" {
			continue
		}
		if err := fn(dec, start); err != nil {
			return err
		}
	}
}

// parseFloat is the lenient numeric read used for document fields:
// anything unparseable counts as 0.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
