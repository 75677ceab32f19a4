package model

// InvoiceBook は請求書のインメモリコレクション（作成順）。
type InvoiceBook struct {
	invoices []*Invoice
}

func NewInvoiceBook(invoices []Invoice) *InvoiceBook {
	b := &InvoiceBook{invoices: make([]*Invoice, 0, len(invoices))}
	for _, f := range invoices {
		cp := f
		b.invoices = append(b.invoices, &cp)
	}
	return b
}

func (b *InvoiceBook) Find(id string) (*Invoice, bool) {
	for _, f := range b.invoices {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

func (b *InvoiceBook) Append(f *Invoice) {
	b.invoices = append(b.invoices, f)
}

// Remove は請求書を取り除く。存在しなければfalse。
func (b *InvoiceBook) Remove(id string) bool {
	for i, f := range b.invoices {
		if f.ID == id {
			b.invoices = append(b.invoices[:i], b.invoices[i+1:]...)
			return true
		}
	}
	return false
}

// Invoices は作成順のコピーを返す（保存用）。
func (b *InvoiceBook) Invoices() []Invoice {
	out := make([]Invoice, 0, len(b.invoices))
	for _, f := range b.invoices {
		out = append(out, *f)
	}
	return out
}

func (b *InvoiceBook) Len() int {
	return len(b.invoices)
}
