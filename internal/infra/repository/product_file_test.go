package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductFileStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	s := NewProductFileStore(filepath.Join(t.TempDir(), "inventario.txt"))

	products, err := s.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 0)
}

func TestProductFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.txt")
	s := NewProductFileStore(path)
	ctx := context.Background()

	in := []model.Product{
		{ID: "A", Name: "Blue Widget", Price: d("5.00"), Stock: 10},
		{ID: "B", Name: "Red Gadget", Price: d("19999.99"), Stock: 0},
	}
	assert.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "A", out[0].ID)
	assert.Equal(t, "Blue Widget", out[0].Name)
	assert.True(t, out[0].Price.Equal(d("5.00")))
	assert.Equal(t, int64(10), out[0].Stock)
	assert.Equal(t, int64(0), out[1].Stock)
}

// 金額は2桁固定テキストで書かれる
func TestProductFileStore_SaveWritesTwoDecimalText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.txt")
	s := NewProductFileStore(path)

	err := s.Save(context.Background(), []model.Product{
		{ID: "A", Name: "Widget", Price: d("5"), Stock: 3},
	})
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "A|Widget|5.00|3\n", string(data))
}

// 壊れた行は読み飛ばす（致命エラーにしない）
func TestProductFileStore_SkipsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.txt")
	content := "A|Widget|5.00|10\n" +
		"broken line\n" +
		"B|Gadget|abc|3\n" +
		"C|Thing|2.00|-4\n" +
		"D|Last|1.50|2\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewProductFileStore(path)
	products, err := s.Load(context.Background())
	assert.NoError(t, err)

	assert.Len(t, products, 2)
	assert.Equal(t, "A", products[0].ID)
	assert.Equal(t, "D", products[1].ID)
}

func TestProductFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.txt")
	s := NewProductFileStore(path)
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, []model.Product{
		{ID: "A", Name: "Widget", Price: d("5.00"), Stock: 10},
		{ID: "B", Name: "Gadget", Price: d("2.00"), Stock: 1},
	}))
	assert.NoError(t, s.Save(ctx, []model.Product{
		{ID: "A", Name: "Widget", Price: d("5.00"), Stock: 7},
	}))

	products, err := s.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].Stock)
}
