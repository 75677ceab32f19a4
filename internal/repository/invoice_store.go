package repository

import (
	"context"

	"app/internal/domain/model"
)

// 請求書コレクションの永続化の約束。ProductStoreと同じ規約。
type InvoiceStore interface {
	Load(ctx context.Context) ([]model.Invoice, error)
	Save(ctx context.Context, invoices []model.Invoice) error
}
