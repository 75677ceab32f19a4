package repository

import (
	"context"

	"app/internal/domain/model"
	"app/internal/domain/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 永続化専用のレコード型。ドメイン側はバックエンドを知らない。
type productRecord struct {
	ID       string          `gorm:"primaryKey;type:varchar(64)"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Stock    int64           `gorm:"not null"`
	Position int             `gorm:"not null"` // 追加順を保つ
}

func (productRecord) TableName() string {
	return "products"
}

type ProductGormStore struct {
	db *gorm.DB
}

// DI
func NewProductGormStore(db *gorm.DB) *ProductGormStore {
	return &ProductGormStore{db: db}
}

func (s *ProductGormStore) Load(ctx context.Context) ([]model.Product, error) {
	var records []productRecord
	if err := s.db.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(records))
	for _, r := range records {
		products = append(products, model.Product{
			ID:    r.ID,
			Name:  r.Name,
			Price: money.Round2(r.Price),
			Stock: r.Stock,
		})
	}
	return products, nil
}

// Save はコレクション全体で前の状態を上書きする（1トランザクション）。
func (s *ProductGormStore) Save(ctx context.Context, products []model.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&productRecord{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		records := make([]productRecord, 0, len(products))
		for i, p := range products {
			records = append(records, productRecord{
				ID:       p.ID,
				Name:     p.Name,
				Price:    money.Round2(p.Price),
				Stock:    p.Stock,
				Position: i,
			})
		}
		return tx.Create(&records).Error
	})
}
