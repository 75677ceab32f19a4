package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/domain/money"
)

// 日付はタイムゾーンなしの秒精度。
const invoiceDateLayout = "2006-01-02T15:04:05"

// 請求書のフラットファイル保存。
// 1行1請求書、`id|date|customer|items|subtotal|tax|total`。
// itemsは `productID@qty@unitPrice` を `;` で連結。
type InvoiceFileStore struct {
	path string
}

func NewInvoiceFileStore(path string) *InvoiceFileStore {
	return &InvoiceFileStore{path: path}
}

func (s *InvoiceFileStore) Load(ctx context.Context) ([]model.Invoice, error) {
	lines, err := readRecordLines(s.path)
	if err != nil {
		return nil, err
	}

	invoices := make([]model.Invoice, 0, len(lines))
	for _, ln := range lines {
		f, err := parseInvoiceRecord(ln)
		if err != nil {
			config.GetLogger().WithField("record", ln).Warnf("skipping invalid invoice record: %v", err)
			continue
		}
		invoices = append(invoices, f)
	}
	return invoices, nil
}

func (s *InvoiceFileStore) Save(ctx context.Context, invoices []model.Invoice) error {
	lines := make([]string, 0, len(invoices))
	for _, f := range invoices {
		lines = append(lines, strings.Join([]string{
			f.ID,
			f.Date.Format(invoiceDateLayout),
			f.Customer,
			formatItems(f.Lines),
			money.Format(f.Subtotal),
			money.Format(f.Tax),
			money.Format(f.Total),
		}, "|"))
	}
	return writeRecordLines(s.path, lines)
}

func parseInvoiceRecord(ln string) (model.Invoice, error) {
	parts := strings.Split(ln, "|")
	if len(parts) != 7 {
		return model.Invoice{}, fmt.Errorf("want 7 fields, got %d", len(parts))
	}

	date, err := time.Parse(invoiceDateLayout, parts[1])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("bad date %q", parts[1])
	}

	subtotal, err := money.Parse(parts[4])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("bad subtotal %q", parts[4])
	}
	tax, err := money.Parse(parts[5])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("bad tax %q", parts[5])
	}
	total, err := money.Parse(parts[6])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("bad total %q", parts[6])
	}

	return model.Invoice{
		ID:       parts[0],
		Date:     date,
		Customer: parts[2],
		Lines:    parseItems(parts[3]),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}, nil
}

// 壊れたitemチャンクは黙って読み飛ばす。
func parseItems(s string) []model.InvoiceLine {
	var lines []model.InvoiceLine
	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		parts := strings.Split(chunk, "@")
		if len(parts) != 3 {
			continue
		}
		qty, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		price, err := money.Parse(parts[2])
		if err != nil {
			continue
		}

		lines = append(lines, model.InvoiceLine{
			ProductID: parts[0],
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return lines
}

func formatItems(lines []model.InvoiceLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s@%d@%s", l.ProductID, l.Quantity, money.Format(l.UnitPrice)))
	}
	return strings.Join(parts, ";")
}
