package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRecord struct {
	ID       string          `gorm:"primaryKey;type:varchar(64)"`
	Date     time.Time       `gorm:"not null"`
	Customer string          `gorm:"type:varchar(255);not null"`
	Subtotal decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Tax      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Total    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Position int             `gorm:"not null"` // 作成順を保つ
}

func (invoiceRecord) TableName() string {
	return "invoices"
}

type invoiceLineRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID string          `gorm:"type:varchar(64);not null;index"`
	Position  int             `gorm:"not null"` // 請求書内の行順
	ProductID string          `gorm:"type:varchar(64);not null"` // 参照のみ（商品削除には追従しない）
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,2);not null"`
}

func (invoiceLineRecord) TableName() string {
	return "invoice_lines"
}

type InvoiceGormStore struct {
	db *gorm.DB
}

// DI
func NewInvoiceGormStore(db *gorm.DB) *InvoiceGormStore {
	return &InvoiceGormStore{db: db}
}

// AutoMigrate は両ストアのテーブルを作る。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRecord{}, &invoiceRecord{}, &invoiceLineRecord{})
}

func (s *InvoiceGormStore) Load(ctx context.Context) ([]model.Invoice, error) {
	var records []invoiceRecord
	if err := s.db.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, err
	}

	var lineRecords []invoiceLineRecord
	if err := s.db.WithContext(ctx).Order("invoice_id asc").Order("position asc").Find(&lineRecords).Error; err != nil {
		return nil, err
	}

	linesByInvoice := make(map[string][]model.InvoiceLine)
	for _, lr := range lineRecords {
		linesByInvoice[lr.InvoiceID] = append(linesByInvoice[lr.InvoiceID], model.InvoiceLine{
			ProductID: lr.ProductID,
			Quantity:  lr.Quantity,
			UnitPrice: money.Round2(lr.UnitPrice),
		})
	}

	invoices := make([]model.Invoice, 0, len(records))
	for _, r := range records {
		invoices = append(invoices, model.Invoice{
			ID:       r.ID,
			Date:     r.Date,
			Customer: r.Customer,
			Lines:    linesByInvoice[r.ID],
			Subtotal: money.Round2(r.Subtotal),
			Tax:      money.Round2(r.Tax),
			Total:    money.Round2(r.Total),
		})
	}
	return invoices, nil
}

func (s *InvoiceGormStore) Save(ctx context.Context, invoices []model.Invoice) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&invoiceLineRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&invoiceRecord{}).Error; err != nil {
			return err
		}
		if len(invoices) == 0 {
			return nil
		}

		records := make([]invoiceRecord, 0, len(invoices))
		var lineRecords []invoiceLineRecord
		for i, f := range invoices {
			records = append(records, invoiceRecord{
				ID:       f.ID,
				Date:     f.Date,
				Customer: f.Customer,
				Subtotal: money.Round2(f.Subtotal),
				Tax:      money.Round2(f.Tax),
				Total:    money.Round2(f.Total),
				Position: i,
			})
			for j, l := range f.Lines {
				lineRecords = append(lineRecords, invoiceLineRecord{
					InvoiceID: f.ID,
					Position:  j,
					ProductID: l.ProductID,
					Quantity:  l.Quantity,
					UnitPrice: money.Round2(l.UnitPrice),
				})
			}
		}

		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		if len(lineRecords) == 0 {
			return nil
		}
		return tx.Create(&lineRecords).Error
	})
}
