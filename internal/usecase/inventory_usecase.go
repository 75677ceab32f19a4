package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"app/internal/domain/model"
	"app/internal/domain/money"
	"app/internal/domain/stock"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type InventoryUsecase struct {
	products repo.ProductStore
}

// DI
func NewInventoryUsecase(products repo.ProductStore) *InventoryUsecase {
	return &InventoryUsecase{products: products}
}

type ProductOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int64  `json:"stock"`
}

// 価格・在庫は生の文字列で受けて境界で検証する
// （数値でない・負の入力はInvalidPrice/InvalidStockで弾く）。
type AddProductInput struct {
	ID    string
	Name  string
	Price string
	Stock string
}

func (u *InventoryUsecase) ListProducts(ctx context.Context) ([]ProductOutput, error) {
	inv, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return toProductOutputs(inv.Products()), nil
}

// SearchProducts はID完全一致（大文字小文字無視）か名前の部分一致で探す。
func (u *InventoryUsecase) SearchProducts(ctx context.Context, query string) ([]ProductOutput, error) {
	inv, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var found []model.Product
	for _, p := range inv.Products() {
		if strings.ToLower(p.ID) == q || strings.Contains(strings.ToLower(p.Name), q) {
			found = append(found, p)
		}
	}
	return toProductOutputs(found), nil
}

func (u *InventoryUsecase) GetProduct(ctx context.Context, id string) (ProductOutput, error) {
	inv, err := u.load(ctx)
	if err != nil {
		return ProductOutput{}, err
	}

	p, ok := inv.Get(id)
	if !ok {
		return ProductOutput{}, stock.NewUnknownProduct(id)
	}
	return toProductOutput(*p), nil
}

func (u *InventoryUsecase) AddProduct(ctx context.Context, in AddProductInput) (ProductOutput, error) {
	price, err := parsePrice(in.Price)
	if err != nil {
		return ProductOutput{}, err
	}
	st, err := parseStock(in.Stock)
	if err != nil {
		return ProductOutput{}, err
	}

	inv, err := u.load(ctx)
	if err != nil {
		return ProductOutput{}, err
	}

	p := model.Product{ID: strings.TrimSpace(in.ID), Name: strings.TrimSpace(in.Name), Price: price, Stock: st}
	if !inv.Add(p) {
		return ProductOutput{}, stock.NewDuplicateProduct(p.ID)
	}

	if err := u.save(ctx, inv); err != nil {
		return ProductOutput{}, err
	}
	return toProductOutput(p), nil
}

func (u *InventoryUsecase) UpdatePrice(ctx context.Context, id string, price string) error {
	newPrice, err := parsePrice(price)
	if err != nil {
		return err
	}

	inv, err := u.load(ctx)
	if err != nil {
		return err
	}

	p, ok := inv.Get(id)
	if !ok {
		return stock.NewUnknownProduct(id)
	}
	p.Price = newPrice

	return u.save(ctx, inv)
}

func (u *InventoryUsecase) UpdateStock(ctx context.Context, id string, newStock string) error {
	st, err := parseStock(newStock)
	if err != nil {
		return err
	}

	inv, err := u.load(ctx)
	if err != nil {
		return err
	}

	p, ok := inv.Get(id)
	if !ok {
		return stock.NewUnknownProduct(id)
	}
	p.Stock = st

	return u.save(ctx, inv)
}

// DeleteProduct は請求書側に波及しない。
// 既存の請求書行の商品IDは宙に浮くが、それは許容（履歴なので）。
func (u *InventoryUsecase) DeleteProduct(ctx context.Context, id string) error {
	inv, err := u.load(ctx)
	if err != nil {
		return err
	}

	if !inv.Remove(id) {
		return stock.NewUnknownProduct(id)
	}

	return u.save(ctx, inv)
}

func (u *InventoryUsecase) load(ctx context.Context) (*model.Inventory, error) {
	products, err := u.products.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return model.NewInventory(products), nil
}

func (u *InventoryUsecase) save(ctx context.Context, inv *model.Inventory) error {
	if err := u.products.Save(ctx, inv.Products()); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	d, err := money.Parse(value)
	if err != nil || d.IsNegative() {
		return decimal.Zero, stock.NewInvalidPrice(value)
	}
	return d, nil
}

func parseStock(value string) (int64, error) {
	n, perr := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if perr != nil || n < 0 {
		return 0, stock.NewInvalidStock(value)
	}
	return n, nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:    p.ID,
		Name:  p.Name,
		Price: money.Format(p.Price),
		Stock: p.Stock,
	}
}

func toProductOutputs(products []model.Product) []ProductOutput {
	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs
}
