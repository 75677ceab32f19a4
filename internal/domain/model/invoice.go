package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine の単価は行を追加した時点の商品価格のスナップショット。
// 後から商品価格を変えても過去の請求書は変わらない。
type InvoiceLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Amount は行の金額（数量×単価、2桁丸め）。
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
}

type Invoice struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Customer string          `json:"customer"`
	Lines    []InvoiceLine   `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
