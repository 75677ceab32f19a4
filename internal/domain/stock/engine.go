// Package stock は在庫と請求書の整合性を保つトランザクションエンジン。
// インメモリのコレクションだけを操作し、I/Oは一切行わない。
// 永続化のタイミングは呼び出し側（usecase）が持つ。
package stock

import (
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/money"

	"github.com/shopspring/decimal"
)

// NewLine は請求書の行を組み立てる。
// 単価はその時点の商品価格のスナップショット（以後変更しない）。
func NewLine(inv *model.Inventory, productID string, quantity int64) (model.InvoiceLine, error) {
	if quantity <= 0 {
		return model.InvoiceLine{}, NewInvalidQuantity(strconv.FormatInt(quantity, 10))
	}

	p, ok := inv.Get(productID)
	if !ok {
		return model.InvoiceLine{}, NewUnknownProduct(productID)
	}

	return model.InvoiceLine{
		ProductID: p.ID,
		Quantity:  quantity,
		UnitPrice: money.Round2(p.Price),
	}, nil
}

// ValidateAndReserve は全行を検証してから全行の在庫を引き当てる。
// 検証は引当の前に全行に対して行う。途中の行で弾いたとき
// 在庫が部分的に減っていることはない。
func ValidateAndReserve(inv *model.Inventory, lines []model.InvoiceLine) error {
	for _, l := range lines {
		p, ok := inv.Get(l.ProductID)
		if !ok {
			return NewUnknownProduct(l.ProductID)
		}
		if p.Stock < l.Quantity {
			return NewInsufficientStock(p.ID, p.Stock, l.Quantity)
		}
	}

	for _, l := range lines {
		p, _ := inv.Get(l.ProductID)
		p.Stock -= l.Quantity
	}
	return nil
}

// Release は行の数量を無条件に在庫へ戻す。
// 商品が既に削除されていたら黙ってスキップする。失敗しない。
func Release(inv *model.Inventory, lines []model.InvoiceLine) {
	for _, l := range lines {
		if p, ok := inv.Get(l.ProductID); ok {
			p.Stock += l.Quantity
		}
	}
}

// reapply はReleaseの厳密な逆操作。ロールバック専用で検証しない。
// Releaseと同じく消えた商品はスキップするので、release→reapplyは
// 在庫をビット単位で元に戻す。
func reapply(inv *model.Inventory, lines []model.InvoiceLine) {
	for _, l := range lines {
		if p, ok := inv.Get(l.ProductID); ok {
			p.Stock -= l.Quantity
		}
	}
}

// ComputeTotals は純粋関数。副作用なし。
func ComputeTotals(lines []model.InvoiceLine) (subtotal, tax, total decimal.Decimal) {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}

	subtotal = money.Round2(sum)
	tax = money.Round2(subtotal.Mul(money.TaxRate))
	total = money.Round2(subtotal.Add(tax))
	return subtotal, tax, total
}

// CreateInvoice は1つの論理トランザクション。
// 請求書の作成と在庫の引当は両方成立するか、両方とも起きない。
func CreateInvoice(inv *model.Inventory, book *model.InvoiceBook, id string, customer string, lines []model.InvoiceLine, now time.Time) (*model.Invoice, error) {
	if _, ok := book.Find(id); ok {
		return nil, NewDuplicateInvoiceID(id)
	}
	if len(lines) == 0 {
		return nil, NewEmptyInvoice()
	}

	if err := ValidateAndReserve(inv, lines); err != nil {
		return nil, err
	}

	ls := make([]model.InvoiceLine, len(lines))
	copy(ls, lines)

	subtotal, tax, total := ComputeTotals(ls)
	f := &model.Invoice{
		ID:       id,
		Date:     now,
		Customer: customer,
		Lines:    ls,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}
	book.Append(f)
	return f, nil
}

// ReplaceInvoiceLines は行の入れ替え。
// 旧行を解放→新行を引当、失敗したら旧行を引き当て直して元の状態に戻す。
// 新行が空のときは編集のキャンセル扱い（旧行を戻してEmptyInvoiceを返す）。
// ID・日付・顧客は変えない。
func ReplaceInvoiceLines(inv *model.Inventory, book *model.InvoiceBook, id string, newLines []model.InvoiceLine) (*model.Invoice, error) {
	f, ok := book.Find(id)
	if !ok {
		return nil, NewInvoiceNotFound(id)
	}

	Release(inv, f.Lines)

	if len(newLines) == 0 {
		reapply(inv, f.Lines)
		return nil, NewEmptyInvoice()
	}

	if err := ValidateAndReserve(inv, newLines); err != nil {
		reapply(inv, f.Lines)
		return nil, err
	}

	ls := make([]model.InvoiceLine, len(newLines))
	copy(ls, newLines)

	f.Lines = ls
	f.Subtotal, f.Tax, f.Total = ComputeTotals(ls)
	return f, nil
}

// DeleteInvoice は在庫を戻してから請求書を取り除く。部分的に失敗しない。
func DeleteInvoice(inv *model.Inventory, book *model.InvoiceBook, id string) error {
	f, ok := book.Find(id)
	if !ok {
		return NewInvoiceNotFound(id)
	}

	Release(inv, f.Lines)
	book.Remove(id)
	return nil
}
