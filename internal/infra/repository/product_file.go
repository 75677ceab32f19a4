package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/domain/money"
)

// 在庫のフラットファイル保存。1行1商品、`id|name|price|stock`。
// 金額は常に2桁固定のテキスト（バイナリ浮動小数は書かない）。
type ProductFileStore struct {
	path string
}

func NewProductFileStore(path string) *ProductFileStore {
	return &ProductFileStore{path: path}
}

func (s *ProductFileStore) Load(ctx context.Context) ([]model.Product, error) {
	lines, err := readRecordLines(s.path)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(lines))
	for _, ln := range lines {
		p, err := parseProductRecord(ln)
		if err != nil {
			// 壊れた行は読み飛ばす（致命エラーにしない）
			config.GetLogger().WithField("record", ln).Warnf("skipping invalid product record: %v", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *ProductFileStore) Save(ctx context.Context, products []model.Product) error {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%d", p.ID, p.Name, money.Format(p.Price), p.Stock))
	}
	return writeRecordLines(s.path, lines)
}

func parseProductRecord(ln string) (model.Product, error) {
	parts := strings.Split(ln, "|")
	if len(parts) != 4 {
		return model.Product{}, fmt.Errorf("want 4 fields, got %d", len(parts))
	}

	price, err := money.Parse(parts[2])
	if err != nil || price.IsNegative() {
		return model.Product{}, fmt.Errorf("bad price %q", parts[2])
	}

	stock, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	if err != nil || stock < 0 {
		return model.Product{}, fmt.Errorf("bad stock %q", parts[3])
	}

	return model.Product{
		ID:    parts[0],
		Name:  parts[1],
		Price: price,
		Stock: stock,
	}, nil
}
