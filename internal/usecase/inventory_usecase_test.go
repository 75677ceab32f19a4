package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/domain/stock"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInventoryUsecase_AddProduct(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return([]model.Product{}, nil)
	pStore.On("Save", mock.Anything, mock.MatchedBy(func(products []model.Product) bool {
		return len(products) == 1 &&
			products[0].ID == "A" &&
			products[0].Price.Equal(d("19999.99")) &&
			products[0].Stock == 4
	})).Return(nil)

	out, err := uc.AddProduct(ctx, usecase.AddProductInput{
		ID:    "A",
		Name:  "Widget",
		Price: "19999.99",
		Stock: "4",
	})
	assert.NoError(t, err)
	assert.Equal(t, "19999.99", out.Price)
	assert.Equal(t, int64(4), out.Stock)

	pStore.AssertExpectations(t)
}

func TestInventoryUsecase_AddProduct_Duplicate(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return(productA(10), nil)

	_, err := uc.AddProduct(ctx, usecase.AddProductInput{ID: "A", Name: "Other", Price: "1.00", Stock: "1"})

	rej, ok := stock.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, stock.KindDuplicateProduct, rej.Kind)
	pStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// 価格の検証は読み込みより前（境界で弾く）
func TestInventoryUsecase_AddProduct_InvalidPrice(t *testing.T) {
	ctx := context.Background()

	for _, price := range []string{"abc", "-1", ""} {
		pStore := new(ProductStoreMock)
		uc := usecase.NewInventoryUsecase(pStore)

		_, err := uc.AddProduct(ctx, usecase.AddProductInput{ID: "A", Name: "Widget", Price: price, Stock: "1"})

		rej, ok := stock.AsRejection(err)
		assert.True(t, ok, "price %q", price)
		assert.Equal(t, stock.KindInvalidPrice, rej.Kind)
		pStore.AssertNotCalled(t, "Load", mock.Anything)
	}
}

func TestInventoryUsecase_AddProduct_InvalidStock(t *testing.T) {
	ctx := context.Background()

	for _, st := range []string{"x", "-3", "1.5", ""} {
		pStore := new(ProductStoreMock)
		uc := usecase.NewInventoryUsecase(pStore)

		_, err := uc.AddProduct(ctx, usecase.AddProductInput{ID: "A", Name: "Widget", Price: "1.00", Stock: st})

		rej, ok := stock.AsRejection(err)
		assert.True(t, ok, "stock %q", st)
		assert.Equal(t, stock.KindInvalidStock, rej.Kind)
		pStore.AssertNotCalled(t, "Load", mock.Anything)
	}
}

func TestInventoryUsecase_UpdatePrice(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return(productA(10), nil)
	pStore.On("Save", mock.Anything, mock.MatchedBy(func(products []model.Product) bool {
		// 3.335は2桁に丸めて保存される
		return products[0].Price.Equal(d("3.34"))
	})).Return(nil)

	err := uc.UpdatePrice(ctx, "A", "3.335")
	assert.NoError(t, err)
	pStore.AssertExpectations(t)
}

func TestInventoryUsecase_UpdatePrice_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return([]model.Product{}, nil)

	err := uc.UpdatePrice(ctx, "nope", "1.00")

	rej, ok := stock.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, stock.KindUnknownProduct, rej.Kind)
	pStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInventoryUsecase_UpdateStock(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return(productA(10), nil)
	pStore.On("Save", mock.Anything, mock.MatchedBy(func(products []model.Product) bool {
		return products[0].Stock == 25
	})).Return(nil)

	err := uc.UpdateStock(ctx, "A", "25")
	assert.NoError(t, err)
	pStore.AssertExpectations(t)
}

// 商品削除は請求書に波及しない（在庫側の保存だけ）
func TestInventoryUsecase_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return(productA(10), nil)
	pStore.On("Save", mock.Anything, mock.MatchedBy(func(products []model.Product) bool {
		return len(products) == 0
	})).Return(nil)

	err := uc.DeleteProduct(ctx, "A")
	assert.NoError(t, err)
	pStore.AssertExpectations(t)
}

func TestInventoryUsecase_SearchProducts(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	inventory := []model.Product{
		{ID: "A", Name: "Blue Widget", Price: d("5.00"), Stock: 10},
		{ID: "B", Name: "Red Gadget", Price: d("2.00"), Stock: 3},
	}
	pStore.On("Load", mock.Anything).Return(inventory, nil)

	// "a"はID完全一致（A）と名前の部分一致（Gadget）の両方に当たる
	outs, err := uc.SearchProducts(ctx, "a")
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "A", outs[0].ID)
	assert.Equal(t, "B", outs[1].ID)

	// 名前の部分一致（大文字小文字無視）
	outs, err = uc.SearchProducts(ctx, "gadget")
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, "B", outs[0].ID)

	// 名前だけが当たるクエリ（IDとは一致しない）
	outs, err = uc.SearchProducts(ctx, "widget")
	assert.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Equal(t, "A", outs[0].ID)

	outs, err = uc.SearchProducts(ctx, "zzz")
	assert.NoError(t, err)
	assert.Len(t, outs, 0)
}

func TestInventoryUsecase_GetProduct_Unknown(t *testing.T) {
	ctx := context.Background()

	pStore := new(ProductStoreMock)
	uc := usecase.NewInventoryUsecase(pStore)

	pStore.On("Load", mock.Anything).Return([]model.Product{}, nil)

	_, err := uc.GetProduct(ctx, "nope")

	rej, ok := stock.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, stock.KindUnknownProduct, rej.Kind)
}
